package campaigning

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
)

// fixedRateService serve sempre a mesma cotação, sem rede
type fixedRateService struct {
	quote domain.RateQuote
}

func (f *fixedRateService) GetRate() domain.RateQuote   { return f.quote }
func (f *fixedRateService) Refresh()                    {}
func (f *fixedRateService) Start(context.Context) error { return nil }
func (f *fixedRateService) GetStatus() map[string]any   { return nil }

func TestListCampaigns(t *testing.T) {
	campaigns := []domain.Campaign{
		{ID: "CMP001", Name: "Campanha Loja A", Investment: 100, Revenue: 500, Currency: domain.CurrencyBRL},
		{ID: "CMP002", Name: "Campanha Loja B", Investment: 10, Revenue: 30, Currency: domain.CurrencyUSD},
	}

	t.Run("Exibição em BRL converte apenas as campanhas em USD", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStore := mocks.NewMockCampaignStore(ctrl)
		mockStore.EXPECT().GetAll().Return(campaigns, nil)

		service := NewService(mockStore, &fixedRateService{quote: domain.RateQuote{Rate: 5.0}})

		result, err := service.ListCampaigns(domain.CurrencyBRL)

		require.NoError(t, err)
		require.Len(t, result.Campaigns, 2)

		// Campanha já em BRL: identidade
		assert.Equal(t, 100.0, result.Campaigns[0].Investment)
		assert.Equal(t, domain.CurrencyBRL, result.Campaigns[0].Currency)
		assert.Equal(t, "R$ 100.00", result.Campaigns[0].InvestmentFormatted)

		// Campanha em USD: multiplicada pela cotação
		assert.Equal(t, 50.0, result.Campaigns[1].Investment)
		assert.Equal(t, 150.0, result.Campaigns[1].Revenue)
		assert.Equal(t, 100.0, result.Campaigns[1].Profit)
		assert.Equal(t, domain.CurrencyBRL, result.Campaigns[1].Currency)
	})

	t.Run("Exibição em USD divide os valores em BRL pela cotação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStore := mocks.NewMockCampaignStore(ctrl)
		mockStore.EXPECT().GetAll().Return(campaigns, nil)

		service := NewService(mockStore, &fixedRateService{quote: domain.RateQuote{Rate: 5.0}})

		result, err := service.ListCampaigns(domain.CurrencyUSD)

		require.NoError(t, err)
		assert.Equal(t, 20.0, result.Campaigns[0].Investment)
		assert.Equal(t, domain.CurrencyUSD, result.Campaigns[0].Currency)
		assert.Equal(t, 10.0, result.Campaigns[1].Investment)
	})

	t.Run("Moeda de exibição vazia assume BRL", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStore := mocks.NewMockCampaignStore(ctrl)
		mockStore.EXPECT().GetAll().Return(campaigns, nil)

		service := NewService(mockStore, &fixedRateService{quote: domain.RateQuote{Rate: 5.0}})

		result, err := service.ListCampaigns("")

		require.NoError(t, err)
		assert.Equal(t, domain.CurrencyBRL, result.Currency)
	})

	t.Run("Moeda de exibição desconhecida é rejeitada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStore := mocks.NewMockCampaignStore(ctrl)

		service := NewService(mockStore, &fixedRateService{quote: domain.RateQuote{Rate: 5.0}})

		_, err := service.ListCampaigns("EUR")

		assert.ErrorIs(t, err, ErrInvalidCurrency)
	})

	t.Run("Cotação em fallback ainda produz listagem completa", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStore := mocks.NewMockCampaignStore(ctrl)
		mockStore.EXPECT().GetAll().Return(campaigns, nil)

		service := NewService(mockStore, &fixedRateService{
			quote: domain.RateQuote{Rate: 5.0, Fallback: true, Error: "provedor fora do ar"},
		})

		result, err := service.ListCampaigns(domain.CurrencyBRL)

		require.NoError(t, err)
		assert.True(t, result.Rate.Fallback)
		assert.Len(t, result.Campaigns, 2)
	})

	t.Run("Erro do repositório vira erro de consulta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStore := mocks.NewMockCampaignStore(ctrl)
		mockStore.EXPECT().GetAll().Return(nil, errors.New("banco indisponível"))

		service := NewService(mockStore, &fixedRateService{quote: domain.RateQuote{Rate: 5.0}})

		_, err := service.ListCampaigns(domain.CurrencyBRL)

		assert.ErrorIs(t, err, ErrFetchCampaigns)
	})
}

func TestReplaceCampaigns(t *testing.T) {
	t.Run("Payload válido substitui a coleção", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		campaigns := []domain.Campaign{
			{Name: "Campanha Loja A", Investment: 100, Currency: domain.CurrencyBRL},
		}

		mockStore := mocks.NewMockCampaignStore(ctrl)
		mockStore.EXPECT().ReplaceAll(campaigns).Return(nil)

		service := NewService(mockStore, &fixedRateService{})

		assert.NoError(t, service.ReplaceCampaigns(campaigns))
	})

	t.Run("Campanha sem nome é rejeitada antes de qualquer escrita", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStore := mocks.NewMockCampaignStore(ctrl)

		service := NewService(mockStore, &fixedRateService{})

		err := service.ReplaceCampaigns([]domain.Campaign{{Investment: 10}})

		assert.ErrorIs(t, err, ErrMissingName)
	})
}
