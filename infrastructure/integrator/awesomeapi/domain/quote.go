package domain

// USDBRLQuote é a cotação USD→BRL como devolvida pela AwesomeAPI.
// Entrada não confiável: Bid é um decimal codificado como string e pode
// vir vazio ou não numérico; a validação acontece no consumidor.
type USDBRLQuote struct {
	Code       string `json:"code"`
	Codein     string `json:"codein"`
	Name       string `json:"name"`
	Bid        string `json:"bid"`
	Ask        string `json:"ask"`
	Timestamp  string `json:"timestamp"`
	CreateDate string `json:"create_date"`
}
