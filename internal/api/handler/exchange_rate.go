package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/converting"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/exchanging"
	"github.com/vfg2006/campaign-dashboard-api/pkg/apiErrors"
)

// GetExchangeRate retorna a cotação USD→BRL corrente do cache.
// A resposta sempre carrega um número utilizável: fallback e staleness
// viram campos, nunca erro HTTP.
func GetExchangeRate(service exchanging.RateService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		quote := service.GetRate()

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(quote); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// ConvertRequest é o corpo do endpoint de conversão avulsa
type ConvertRequest struct {
	Amount float64             `json:"amount"`
	From   domain.CurrencyCode `json:"from"`
	To     domain.CurrencyCode `json:"to"`
}

// ConvertResponse carrega o valor convertido e a cotação usada
type ConvertResponse struct {
	Amount    float64             `json:"amount"`
	Currency  domain.CurrencyCode `json:"currency"`
	Formatted string              `json:"formatted"`
	Rate      domain.RateQuote    `json:"rate"`
}

// ConvertAmount converte um valor avulso entre BRL e USD usando a
// cotação corrente do cache
func ConvertAmount(service exchanging.RateService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ConvertAmount")

		var request ConvertRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if !request.From.Valid() || !request.To.Valid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Moedas inválidas. Valores aceitos: BRL, USD", map[string]any{
				"from": request.From,
				"to":   request.To,
			})
			return
		}

		quote := service.GetRate()

		converted := converting.ConvertMoney(
			domain.Money{Amount: request.Amount, Currency: request.From},
			request.To,
			quote.Rate,
		)

		response := ConvertResponse{
			Amount:    converted.Amount,
			Currency:  converted.Currency,
			Formatted: converting.FormatMoney(converted),
			Rate:      quote,
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(response); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}
