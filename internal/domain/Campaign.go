package domain

import "time"

// Campaign representa uma campanha do dia de trabalho no dashboard.
// O subsistema de rollover trata a coleção como opaca: nenhum campo
// individual é inspecionado no caminho de snapshot/limpeza.
type Campaign struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Platform   string       `json:"platform,omitempty"`
	Investment float64      `json:"investment"`
	Revenue    float64      `json:"revenue"`
	Currency   CurrencyCode `json:"currency"`
	CreatedAt  time.Time    `json:"created_at,omitempty"`
}
