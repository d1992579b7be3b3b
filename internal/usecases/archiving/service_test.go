package archiving

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestGetByDate(t *testing.T) {
	t.Run("Snapshot existente é retornado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		snapshot := &domain.Snapshot{
			Date: "2024-06-01",
			Campaigns: []domain.Campaign{
				{ID: "CMP001", Name: "Campanha Loja A", Currency: domain.CurrencyBRL},
			},
		}

		mockStore := mocks.NewMockSnapshotStore(ctrl)
		mockStore.EXPECT().GetByDate("2024-06-01").Return(snapshot, nil)

		service := NewService(mockStore)

		result, err := service.GetByDate("2024-06-01")

		require.NoError(t, err)
		assert.Equal(t, snapshot, result)
	})

	t.Run("Data fora do formato YYYY-MM-DD é rejeitada sem consulta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStore := mocks.NewMockSnapshotStore(ctrl)

		service := NewService(mockStore)

		_, err := service.GetByDate("01/06/2024")

		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("Data sem snapshot arquivado retorna não encontrado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStore := mocks.NewMockSnapshotStore(ctrl)
		mockStore.EXPECT().GetByDate("2024-06-03").Return(nil, nil)

		service := NewService(mockStore)

		_, err := service.GetByDate("2024-06-03")

		assert.ErrorIs(t, err, ErrSnapshotNotFound)
	})

	t.Run("Erro do repositório vira erro de consulta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStore := mocks.NewMockSnapshotStore(ctrl)
		mockStore.EXPECT().GetByDate("2024-06-01").Return(nil, errors.New("banco indisponível"))

		service := NewService(mockStore)

		_, err := service.GetByDate("2024-06-01")

		assert.ErrorIs(t, err, ErrFetchSnapshots)
	})
}

func TestListDates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockSnapshotStore(ctrl)
	mockStore.EXPECT().ListDates().Return([]string{"2024-06-02", "2024-06-01"}, nil)

	service := NewService(mockStore)

	dates, err := service.ListDates()

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-02", "2024-06-01"}, dates)
}
