package utils

import "time"

// IsCivilDate valida o formato YYYY-MM-DD usado como chave de snapshot
func IsCivilDate(dateStr string) bool {
	_, err := time.Parse("2006-01-02", dateStr)
	return err == nil
}
