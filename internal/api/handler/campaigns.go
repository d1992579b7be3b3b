package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/campaigning"
	"github.com/vfg2006/campaign-dashboard-api/pkg/apiErrors"
)

// ListCampaigns retorna a coleção de trabalho do dia, com os valores
// convertidos para a moeda de exibição do query param `currency`
func ListCampaigns(service campaigning.CampaignService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		display := domain.CurrencyCode(r.URL.Query().Get("currency"))

		result, err := service.ListCampaigns(display)
		if err != nil {
			logrus.Error("Error listing campaigns:", err)

			switch {
			case errors.Is(err, campaigning.ErrInvalidCurrency):
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Moeda de exibição inválida. Valores aceitos: BRL, USD", nil)

			case errors.Is(err, campaigning.ErrFetchCampaigns):
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar campanhas no banco de dados", nil)

			default:
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar campanhas", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(result); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// ReplaceCampaigns substitui a coleção de trabalho inteira pelo corpo
// da requisição
func ReplaceCampaigns(service campaigning.CampaignService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ReplaceCampaigns")

		var campaigns []domain.Campaign
		if err := json.NewDecoder(r.Body).Decode(&campaigns); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if err := service.ReplaceCampaigns(campaigns); err != nil {
			logrus.Error("Error replacing campaigns:", err)

			switch {
			case errors.Is(err, campaigning.ErrMissingName):
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Toda campanha precisa de um nome", nil)

			case errors.Is(err, campaigning.ErrSaveCampaigns):
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar campanhas no banco de dados", nil)

			default:
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao substituir campanhas", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")

		response := map[string]any{
			"message":   "Coleção de trabalho substituída com sucesso",
			"campaigns": len(campaigns),
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}
