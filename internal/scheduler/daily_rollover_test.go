package scheduler

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-dashboard-api/internal/clock"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
)

// fakeNotifier registra as notificações recebidas e pode simular falha
type fakeNotifier struct {
	calls []string
	err   error
}

func (f *fakeNotifier) NotifyRollover(date string, campaignCount int) error {
	f.calls = append(f.calls, date)
	return f.err
}

func testCampaigns() []domain.Campaign {
	return []domain.Campaign{
		{ID: "CMP001", Name: "Campanha Loja A", Investment: 150, Revenue: 900, Currency: domain.CurrencyBRL},
		{ID: "CMP002", Name: "Campanha Loja B", Investment: 80, Revenue: 120, Currency: domain.CurrencyUSD},
		{ID: "CMP003", Name: "Campanha Loja C", Investment: 45.5, Revenue: 0, Currency: domain.CurrencyBRL},
	}
}

func newTestService(
	campaignStore *mocks.MockCampaignStore,
	snapshotStore *mocks.MockSnapshotStore,
	notifier *fakeNotifier,
	now time.Time,
) *DailyRolloverService {
	return &DailyRolloverService{
		clock:         clock.NewWithNow(func() time.Time { return now }),
		campaignStore: campaignStore,
		snapshotStore: snapshotStore,
		notifier:      notifier,
	}
}

func TestHandleBoundary(t *testing.T) {
	// 12:00 UTC = 09:00 em Brasília, dia 2024-06-02
	now := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)

	t.Run("Coleção com 3 campanhas vira snapshot do dia anterior e é limpa", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		campaigns := testCampaigns()

		mockCampaignStore := mocks.NewMockCampaignStore(ctrl)
		mockSnapshotStore := mocks.NewMockSnapshotStore(ctrl)
		notifier := &fakeNotifier{}

		mockCampaignStore.EXPECT().GetAll().Return(campaigns, nil)
		mockSnapshotStore.EXPECT().Upsert(gomock.Any()).DoAndReturn(func(snapshot domain.Snapshot) error {
			assert.Equal(t, "2024-06-01", snapshot.Date)
			assert.Equal(t, campaigns, snapshot.Campaigns)
			return nil
		})
		mockCampaignStore.EXPECT().ReplaceAll(gomock.Nil()).Return(nil)

		service := newTestService(mockCampaignStore, mockSnapshotStore, notifier, now)

		err := service.HandleBoundary(domain.BoundarySignal{
			NewDate:      "2024-06-02",
			PreviousDate: "2024-06-01",
			Timezone:     clock.CanonicalTimezone,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"2024-06-01"}, notifier.calls)
		assert.Equal(t, "2024-06-01", service.lastRolloverDate)
	})

	t.Run("Sinal com fuso diferente do canônico não muta nenhum estado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// Nenhuma expectativa: qualquer chamada aos stores falha o teste
		mockCampaignStore := mocks.NewMockCampaignStore(ctrl)
		mockSnapshotStore := mocks.NewMockSnapshotStore(ctrl)
		notifier := &fakeNotifier{}

		service := newTestService(mockCampaignStore, mockSnapshotStore, notifier, now)

		err := service.HandleBoundary(domain.BoundarySignal{
			NewDate:      "2024-03-02",
			PreviousDate: "2024-03-01",
			Timezone:     "UTC",
		})

		assert.ErrorIs(t, err, ErrTimezoneMismatch)
		assert.Empty(t, notifier.calls)
	})

	t.Run("Coleção vazia não grava snapshot mas ainda limpa a coleção", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCampaignStore := mocks.NewMockCampaignStore(ctrl)
		mockSnapshotStore := mocks.NewMockSnapshotStore(ctrl)
		notifier := &fakeNotifier{}

		mockCampaignStore.EXPECT().GetAll().Return([]domain.Campaign{}, nil)
		mockCampaignStore.EXPECT().ReplaceAll(gomock.Nil()).Return(nil)

		service := newTestService(mockCampaignStore, mockSnapshotStore, notifier, now)

		err := service.HandleBoundary(domain.BoundarySignal{
			NewDate:      "2024-06-02",
			PreviousDate: "2024-06-01",
			Timezone:     clock.CanonicalTimezone,
		})

		require.NoError(t, err)
	})

	t.Run("Falha na gravação do snapshot preserva a coleção de trabalho", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCampaignStore := mocks.NewMockCampaignStore(ctrl)
		mockSnapshotStore := mocks.NewMockSnapshotStore(ctrl)
		notifier := &fakeNotifier{}

		mockCampaignStore.EXPECT().GetAll().Return(testCampaigns(), nil)
		mockSnapshotStore.EXPECT().Upsert(gomock.Any()).Return(errors.New("banco indisponível"))
		// Sem expectativa de ReplaceAll: a coleção não pode ser limpa

		service := newTestService(mockCampaignStore, mockSnapshotStore, notifier, now)

		err := service.HandleBoundary(domain.BoundarySignal{
			NewDate:      "2024-06-02",
			PreviousDate: "2024-06-01",
			Timezone:     clock.CanonicalTimezone,
		})

		assert.Error(t, err)
		assert.Empty(t, notifier.calls)
	})

	t.Run("Falha na notificação não afeta o caminho de dados", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCampaignStore := mocks.NewMockCampaignStore(ctrl)
		mockSnapshotStore := mocks.NewMockSnapshotStore(ctrl)
		notifier := &fakeNotifier{err: errors.New("sem permissão de notificação")}

		mockCampaignStore.EXPECT().GetAll().Return(testCampaigns(), nil)
		mockSnapshotStore.EXPECT().Upsert(gomock.Any()).Return(nil)
		mockCampaignStore.EXPECT().ReplaceAll(gomock.Nil()).Return(nil)

		service := newTestService(mockCampaignStore, mockSnapshotStore, notifier, now)

		err := service.HandleBoundary(domain.BoundarySignal{
			NewDate:      "2024-06-02",
			PreviousDate: "2024-06-01",
			Timezone:     clock.CanonicalTimezone,
		})

		require.NoError(t, err)
	})
}

func TestHandleBoundaryIdempotentUnderDuplicateSignals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	campaigns := testCampaigns()

	mockCampaignStore := mocks.NewMockCampaignStore(ctrl)
	mockSnapshotStore := mocks.NewMockSnapshotStore(ctrl)
	notifier := &fakeNotifier{}

	gomock.InOrder(
		// Primeiro disparo: coleção cheia, grava e limpa
		mockCampaignStore.EXPECT().GetAll().Return(campaigns, nil),
		mockSnapshotStore.EXPECT().Upsert(gomock.Any()).DoAndReturn(func(snapshot domain.Snapshot) error {
			assert.Equal(t, "2024-03-01", snapshot.Date)
			assert.Len(t, snapshot.Campaigns, 3)
			return nil
		}),
		mockCampaignStore.EXPECT().ReplaceAll(gomock.Nil()).Return(nil),
		// Segundo disparo do mesmo sinal: coleção já vazia, nenhuma
		// escrita de snapshot acontece
		mockCampaignStore.EXPECT().GetAll().Return([]domain.Campaign{}, nil),
		mockCampaignStore.EXPECT().ReplaceAll(gomock.Nil()).Return(nil),
	)

	service := newTestService(mockCampaignStore, mockSnapshotStore, notifier, now)

	signal := domain.BoundarySignal{
		NewDate:      "2024-03-02",
		PreviousDate: "2024-03-01",
		Timezone:     clock.CanonicalTimezone,
	}

	require.NoError(t, service.HandleBoundary(signal))
	require.NoError(t, service.HandleBoundary(signal))
}

func TestCheckBoundaryEmitsSignalOnDateAdvance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignStore := mocks.NewMockCampaignStore(ctrl)
	mockSnapshotStore := mocks.NewMockSnapshotStore(ctrl)
	notifier := &fakeNotifier{}

	// 23:59 em Brasília no dia 2024-06-01
	now := time.Date(2024, 6, 2, 2, 59, 0, 0, time.UTC)

	service := &DailyRolloverService{
		clock:         clock.NewWithNow(func() time.Time { return now }),
		campaignStore: mockCampaignStore,
		snapshotStore: mockSnapshotStore,
		notifier:      notifier,
	}

	// Primeira verificação apenas registra a data corrente
	service.checkBoundary()
	assert.Empty(t, notifier.calls)

	// Mesma data: nada acontece
	service.checkBoundary()
	assert.Empty(t, notifier.calls)

	mockCampaignStore.EXPECT().GetAll().Return(testCampaigns(), nil)
	mockSnapshotStore.EXPECT().Upsert(gomock.Any()).DoAndReturn(func(snapshot domain.Snapshot) error {
		assert.Equal(t, "2024-06-01", snapshot.Date)
		return nil
	})
	mockCampaignStore.EXPECT().ReplaceAll(gomock.Nil()).Return(nil)

	// Relógio cruza a meia-noite canônica
	now = time.Date(2024, 6, 2, 3, 0, 30, 0, time.UTC)
	service.checkBoundary()

	assert.Equal(t, []string{"2024-06-01"}, notifier.calls)
}

func TestManualSnapshot(t *testing.T) {
	now := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)

	t.Run("Coleção não vazia é gravada sob a data corrente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCampaignStore := mocks.NewMockCampaignStore(ctrl)
		mockSnapshotStore := mocks.NewMockSnapshotStore(ctrl)

		mockCampaignStore.EXPECT().GetAll().Return(testCampaigns(), nil)
		mockSnapshotStore.EXPECT().Upsert(gomock.Any()).DoAndReturn(func(snapshot domain.Snapshot) error {
			// Snapshot manual usa a data de hoje, não a de ontem
			assert.Equal(t, "2024-06-02", snapshot.Date)
			return nil
		})

		service := newTestService(mockCampaignStore, mockSnapshotStore, &fakeNotifier{}, now)

		wrote, err := service.ManualSnapshot()

		require.NoError(t, err)
		assert.True(t, wrote)
	})

	t.Run("Coleção vazia não gera escrita", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCampaignStore := mocks.NewMockCampaignStore(ctrl)
		mockSnapshotStore := mocks.NewMockSnapshotStore(ctrl)

		mockCampaignStore.EXPECT().GetAll().Return([]domain.Campaign{}, nil)

		service := newTestService(mockCampaignStore, mockSnapshotStore, &fakeNotifier{}, now)

		wrote, err := service.ManualSnapshot()

		require.NoError(t, err)
		assert.False(t, wrote)
	})
}

func TestManualReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)

	mockCampaignStore := mocks.NewMockCampaignStore(ctrl)
	mockSnapshotStore := mocks.NewMockSnapshotStore(ctrl)
	notifier := &fakeNotifier{}

	mockCampaignStore.EXPECT().GetAll().Return(testCampaigns(), nil)
	mockSnapshotStore.EXPECT().Upsert(gomock.Any()).DoAndReturn(func(snapshot domain.Snapshot) error {
		// Reset manual arquiva sob a data corrente, sem checagem de fuso
		assert.Equal(t, "2024-06-02", snapshot.Date)
		return nil
	})
	mockCampaignStore.EXPECT().ReplaceAll(gomock.Nil()).Return(nil)

	service := newTestService(mockCampaignStore, mockSnapshotStore, notifier, now)

	require.NoError(t, service.ManualReset())
	assert.Equal(t, []string{"2024-06-02"}, notifier.calls)
}
