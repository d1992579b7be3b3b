package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/archiving"
	"github.com/vfg2006/campaign-dashboard-api/pkg/apiErrors"
)

// ListSnapshotDates retorna as datas com snapshot arquivado
func ListSnapshotDates(service archiving.SnapshotService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dates, err := service.ListDates()
		if err != nil {
			logrus.Error("Error listing snapshot dates:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar snapshots no banco de dados", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		response := map[string]any{
			"dates": dates,
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetSnapshotByDate retorna o snapshot arquivado sob a data civil da URL
func GetSnapshotByDate(service archiving.SnapshotService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		date := httprouter.ParamsFromContext(r.Context()).ByName("date")
		if date == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Data do snapshot é obrigatória", nil)
			return
		}

		snapshot, err := service.GetByDate(date)
		if err != nil {
			logrus.Error("Error fetching snapshot:", err)

			switch {
			case errors.Is(err, archiving.ErrInvalidDate):
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, esperado o formato YYYY-MM-DD", map[string]any{
					"date": date,
				})

			case errors.Is(err, archiving.ErrSnapshotNotFound):
				apiErrors.WriteError(w, apiErrors.ErrSnapshotNotFound, "Nenhum snapshot arquivado para a data", map[string]any{
					"date": date,
				})

			default:
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar snapshot no banco de dados", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(snapshot); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}
