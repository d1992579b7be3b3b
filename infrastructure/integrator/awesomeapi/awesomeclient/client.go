package awesomeclient

import (
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	awesomedomain "github.com/vfg2006/campaign-dashboard-api/infrastructure/integrator/awesomeapi/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/config"
	"github.com/vfg2006/campaign-dashboard-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const quotePath = "/json/last/USD-BRL"

type Client interface {
	GetUSDBRLQuote() (*awesomedomain.USDBRLQuote, error)
}

type AwesomeAPIClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(cfg *config.Config) Client {
	return &AwesomeAPIClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: cfg.ExchangeRate.ProviderURL,
	}
}

// GetUSDBRLQuote busca a última cotação USD→BRL no provedor.
// O corpo vem no formato {"USDBRL": {...}}.
func (c *AwesomeAPIClient) GetUSDBRLQuote() (*awesomedomain.USDBRLQuote, error) {
	url := fmt.Sprintf("%s%s", c.baseURL, quotePath)

	data, err := utils.MakeRequest(c.httpClient, url)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar cotação na AwesomeAPI")
	}

	response := map[string]awesomedomain.USDBRLQuote{}
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar resposta da AwesomeAPI")
	}

	quote, ok := response["USDBRL"]
	if !ok {
		return nil, errors.New("resposta da AwesomeAPI sem o par USDBRL")
	}

	return &quote, nil
}
