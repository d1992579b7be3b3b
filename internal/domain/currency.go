package domain

import "time"

// CurrencyCode identifica a moeda de um valor monetário do dashboard.
// Apenas BRL e USD são suportados.
type CurrencyCode string

const (
	CurrencyBRL CurrencyCode = "BRL"
	CurrencyUSD CurrencyCode = "USD"
)

// Valid informa se o código de moeda é um dos suportados
func (c CurrencyCode) Valid() bool {
	return c == CurrencyBRL || c == CurrencyUSD
}

// Money é um valor monetário etiquetado com exatamente uma moeda.
// Conversões nunca mutam a etiqueta do valor de origem; produzem um
// novo valor etiquetado.
type Money struct {
	Amount   float64      `json:"amount"`
	Currency CurrencyCode `json:"currency"`
}

// ExchangeRateRecord é o registro corrente da cotação USD→BRL.
// Rate é sempre > 0; registros com cotação inválida são rejeitados na
// borda e nunca chegam a ser armazenados.
type ExchangeRateRecord struct {
	Rate            float64   `json:"rate"`
	FetchedAt       time.Time `json:"fetched_at"`
	SourceTimestamp string    `json:"source_timestamp"`
}

// RateQuote é o resultado servido aos consumidores da cotação.
// Erros de busca viram campo, nunca exceção: a camada de exibição
// sempre precisa renderizar algum valor.
type RateQuote struct {
	Rate            float64   `json:"rate"`
	FetchedAt       time.Time `json:"fetched_at,omitempty"`
	SourceTimestamp string    `json:"source_timestamp,omitempty"`
	Fallback        bool      `json:"fallback"`
	Stale           bool      `json:"stale"`
	Error           string    `json:"error,omitempty"`
}
