// Package converting é a camada pura de conversão entre as moedas do
// dashboard. Todas as funções são totais: nunca retornam erro e nunca
// produzem NaN a partir de entradas inválidas.
package converting

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
)

// currencySymbols para formatação de exibição
var currencySymbols = map[domain.CurrencyCode]string{
	domain.CurrencyBRL: "R$",
	domain.CurrencyUSD: "$",
}

// Convert converte um valor da moeda de origem para a moeda alvo usando
// a cotação USD→BRL informada.
//
// Regras, nesta ordem:
//  1. mesma moeda: identidade, qualquer que seja a cotação;
//  2. cotação ausente ou inválida (<= 0, NaN, Inf): identidade, um
//     número visivelmente não convertido em vez de quebra ou NaN;
//  3. USD→BRL: multiplica pela cotação;
//  4. BRL→USD: divide pela cotação;
//  5. qualquer outro par: identidade (só o par BRL/USD é suportado).
func Convert(amount float64, from, to domain.CurrencyCode, rate float64) float64 {
	if from == to {
		return amount
	}

	if !validRate(rate) {
		return amount
	}

	switch {
	case from == domain.CurrencyUSD && to == domain.CurrencyBRL:
		return amount * rate
	case from == domain.CurrencyBRL && to == domain.CurrencyUSD:
		return amount / rate
	default:
		return amount
	}
}

// ConvertMoney converte um valor etiquetado para a moeda alvo,
// produzindo um novo valor etiquetado. O valor de origem não é mutado.
// Quando a conversão não se aplica (regras do Convert), a etiqueta
// resultante permanece a da origem, para que a exibição continue
// coerente com o número.
func ConvertMoney(value domain.Money, target domain.CurrencyCode, rate float64) domain.Money {
	if value.Currency == target {
		return value
	}

	if !validRate(rate) || !value.Currency.Valid() || !target.Valid() {
		return value
	}

	return domain.Money{
		Amount:   Convert(value.Amount, value.Currency, target, rate),
		Currency: target,
	}
}

// FormatMoney formata um valor etiquetado com duas casas decimais e o
// símbolo da moeda. Preocupação puramente de apresentação.
func FormatMoney(value domain.Money) string {
	symbol, ok := currencySymbols[value.Currency]
	if !ok {
		symbol = string(value.Currency)
	}

	return symbol + " " + decimal.NewFromFloat(value.Amount).StringFixed(2)
}

func validRate(rate float64) bool {
	return rate > 0 && !math.IsNaN(rate) && !math.IsInf(rate, 0)
}
