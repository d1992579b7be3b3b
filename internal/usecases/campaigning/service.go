// Package campaigning expõe a coleção de trabalho de campanhas para a
// API, com os valores monetários convertidos para a moeda de exibição
// escolhida pelo usuário.
package campaigning

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/converting"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/exchanging"
	"github.com/vfg2006/campaign-dashboard-api/pkg/utils"
)

var (
	ErrInvalidCurrency = errors.New("moeda de exibição inválida")
	ErrMissingName     = errors.New("campanha sem nome")
	ErrFetchCampaigns  = errors.New("erro ao consultar campanhas")
	ErrSaveCampaigns   = errors.New("erro ao salvar campanhas")
)

// CampaignView é uma campanha preparada para exibição: valores na moeda
// escolhida, strings formatadas e métricas derivadas
type CampaignView struct {
	ID                  string              `json:"id"`
	Name                string              `json:"name"`
	Platform            string              `json:"platform,omitempty"`
	Investment          float64             `json:"investment"`
	Revenue             float64             `json:"revenue"`
	Profit              float64             `json:"profit"`
	Currency            domain.CurrencyCode `json:"currency"`
	InvestmentFormatted string              `json:"investment_formatted"`
	RevenueFormatted    string              `json:"revenue_formatted"`
}

// ListResult agrega as campanhas convertidas e a cotação usada na
// conversão, para que a UI possa exibir a origem dos números
type ListResult struct {
	Campaigns []CampaignView      `json:"campaigns"`
	Currency  domain.CurrencyCode `json:"currency"`
	Rate      domain.RateQuote    `json:"rate"`
}

type CampaignService interface {
	ListCampaigns(display domain.CurrencyCode) (*ListResult, error)
	ReplaceCampaigns(campaigns []domain.Campaign) error
}

type Service struct {
	repository  repository.CampaignStore
	rateService exchanging.RateService
}

func NewService(repository repository.CampaignStore, rateService exchanging.RateService) CampaignService {
	return &Service{
		repository:  repository,
		rateService: rateService,
	}
}

// ListCampaigns retorna a coleção de trabalho com todos os valores
// convertidos para a moeda de exibição. A cotação é lida uma única vez
// por listagem, para que todas as linhas usem o mesmo número.
func (s *Service) ListCampaigns(display domain.CurrencyCode) (*ListResult, error) {
	if display == "" {
		display = domain.CurrencyBRL
	}

	if !display.Valid() {
		return nil, ErrInvalidCurrency
	}

	campaigns, err := s.repository.GetAll()
	if err != nil {
		logrus.WithError(err).Error("Erro ao consultar a coleção de trabalho")
		return nil, ErrFetchCampaigns
	}

	quote := s.rateService.GetRate()

	views := make([]CampaignView, 0, len(campaigns))
	for _, campaign := range campaigns {
		investment := converting.ConvertMoney(
			domain.Money{Amount: campaign.Investment, Currency: campaign.Currency},
			display,
			quote.Rate,
		)
		revenue := converting.ConvertMoney(
			domain.Money{Amount: campaign.Revenue, Currency: campaign.Currency},
			display,
			quote.Rate,
		)

		views = append(views, CampaignView{
			ID:                  campaign.ID,
			Name:                campaign.Name,
			Platform:            campaign.Platform,
			Investment:          investment.Amount,
			Revenue:             revenue.Amount,
			Profit:              utils.RoundWithTwoDecimalPlace(revenue.Amount - investment.Amount),
			Currency:            investment.Currency,
			InvestmentFormatted: converting.FormatMoney(investment),
			RevenueFormatted:    converting.FormatMoney(revenue),
		})
	}

	return &ListResult{
		Campaigns: views,
		Currency:  display,
		Rate:      quote,
	}, nil
}

// ReplaceCampaigns substitui a coleção de trabalho inteira pelo payload
// recebido. Campanhas sem nome são rejeitadas antes de qualquer escrita.
func (s *Service) ReplaceCampaigns(campaigns []domain.Campaign) error {
	for _, campaign := range campaigns {
		if campaign.Name == "" {
			return ErrMissingName
		}
	}

	if err := s.repository.ReplaceAll(campaigns); err != nil {
		logrus.WithError(err).Error("Erro ao substituir a coleção de trabalho")
		return ErrSaveCampaigns
	}

	logrus.WithField("campaigns", len(campaigns)).Info("Coleção de trabalho substituída")

	return nil
}
