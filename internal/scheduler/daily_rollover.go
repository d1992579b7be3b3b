// Package scheduler contém os serviços de agendamento do dashboard
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/campaign-dashboard-api/internal/clock"
	"github.com/vfg2006/campaign-dashboard-api/internal/config"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/notification"
)

// ErrTimezoneMismatch indica um sinal de fronteira calculado fora do
// fuso canônico. O sinal é rejeitado sem nenhuma mutação de estado:
// fronteiras computadas no fuso local do cliente não disparam rollover.
var ErrTimezoneMismatch = errors.New("sinal de fronteira fora do fuso canônico")

type DailyRolloverConfig struct {
	CheckIntervalSeconds int
	Enabled              bool
}

// DailyRolloverService garante que a coleção de trabalho seja
// persistida sob a chave do dia anterior antes de ser limpa, exatamente
// uma vez por fronteira de dia civil. Sinais duplicados para a mesma
// data são tolerados pela semântica de sobrescrita do SnapshotStore,
// não por supressão: a segunda passagem encontra a coleção vazia e não
// grava nada.
type DailyRolloverService struct {
	scheduler     *gocron.Scheduler
	clock         *clock.Clock
	campaignStore repository.CampaignStore
	snapshotStore repository.SnapshotStore
	notifier      notification.Notifier
	config        DailyRolloverConfig

	rolloverMutex    sync.Mutex
	lastSeenDate     string
	lastRolloverAt   time.Time
	lastRolloverDate string
}

func NewDailyRolloverService(
	campaignStore repository.CampaignStore,
	snapshotStore repository.SnapshotStore,
	notifier notification.Notifier,
	clk *clock.Clock,
	cfg *config.Config,
) *DailyRolloverService {
	rolloverConfig := DailyRolloverConfig{
		CheckIntervalSeconds: cfg.Rollover.CheckIntervalSeconds,
		Enabled:              cfg.Rollover.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"check_interval_seconds": rolloverConfig.CheckIntervalSeconds,
		"enabled":                rolloverConfig.Enabled,
		"timezone":               clk.Timezone(),
	}).Info("Configuração do agendador de rollover diário carregada")

	return &DailyRolloverService{
		scheduler:     scheduler,
		clock:         clk,
		campaignStore: campaignStore,
		snapshotStore: snapshotStore,
		notifier:      notifier,
		config:        rolloverConfig,
	}
}

// Start inicia a vigia da fronteira de dia
func (s *DailyRolloverService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Rollover diário desabilitado por configuração")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"check_interval_seconds": s.config.CheckIntervalSeconds,
		"ms_until_boundary":      s.clock.MillisecondsUntilNextBoundary(),
	}).Info("Iniciando vigia da fronteira de dia")

	_, err := s.scheduler.Every(s.config.CheckIntervalSeconds).Seconds().Do(func() {
		s.checkBoundary()
	})
	if err != nil {
		return errors.Wrap(err, "erro ao agendar vigia da fronteira de dia")
	}

	s.scheduler.StartAsync()

	// Parar a vigia quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando vigia da fronteira de dia")
		s.scheduler.Stop()
	}()

	return nil
}

// checkBoundary compara a data civil canônica com a última observada e
// emite o sinal tipado quando a data avança. Um sinal rejeitado ou que
// falhe não é reexecutado: a próxima fronteira natural é a próxima
// oportunidade.
func (s *DailyRolloverService) checkBoundary() {
	currentDate := s.clock.CurrentDate()

	s.rolloverMutex.Lock()
	previousDate := s.lastSeenDate
	s.lastSeenDate = currentDate
	s.rolloverMutex.Unlock()

	if previousDate == "" || previousDate == currentDate {
		return
	}

	signal := domain.BoundarySignal{
		NewDate:      currentDate,
		PreviousDate: previousDate,
		Timezone:     s.clock.Timezone(),
	}

	if err := s.HandleBoundary(signal); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"new_date":      signal.NewDate,
			"previous_date": signal.PreviousDate,
		}).Error("Erro ao processar fronteira de dia")
	}
}

// HandleBoundary processa um sinal de fronteira: valida o fuso,
// persiste o snapshot do dia anterior e limpa a coleção de trabalho
func (s *DailyRolloverService) HandleBoundary(signal domain.BoundarySignal) error {
	if signal.Timezone != clock.CanonicalTimezone {
		logrus.WithFields(logrus.Fields{
			"signal_timezone":    signal.Timezone,
			"canonical_timezone": clock.CanonicalTimezone,
			"new_date":           signal.NewDate,
			"previous_date":      signal.PreviousDate,
		}).Warn("Sinal de fronteira rejeitado: fuso diferente do canônico")

		return ErrTimezoneMismatch
	}

	logrus.WithFields(logrus.Fields{
		"new_date":      signal.NewDate,
		"previous_date": signal.PreviousDate,
	}).Info("Fronteira de dia detectada, iniciando rollover")

	return s.rollover(signal.PreviousDate)
}

// rollover grava o snapshot sob a chave informada (quando a coleção
// não está vazia) e só então limpa a coleção de trabalho. Se a escrita
// do snapshot falhar, a coleção é preservada: o rollover nunca perde
// dados.
func (s *DailyRolloverService) rollover(dateKey string) error {
	s.rolloverMutex.Lock()
	defer s.rolloverMutex.Unlock()

	campaigns, err := s.campaignStore.GetAll()
	if err != nil {
		return errors.Wrap(err, "erro ao ler a coleção de trabalho")
	}

	if len(campaigns) > 0 {
		snapshot := domain.Snapshot{
			Date:      dateKey,
			Campaigns: campaigns,
			CreatedAt: time.Now(),
		}

		if err := s.snapshotStore.Upsert(snapshot); err != nil {
			return errors.Wrapf(err, "erro ao gravar snapshot de %s", dateKey)
		}
	} else {
		logrus.WithField("date", dateKey).Info("Coleção de trabalho vazia, nenhum snapshot gravado")
	}

	if err := s.campaignStore.ReplaceAll(nil); err != nil {
		return errors.Wrap(err, "erro ao limpar a coleção de trabalho")
	}

	s.lastRolloverAt = time.Now()
	s.lastRolloverDate = dateKey

	// Notificação best-effort: falha de envio não afeta o caminho de
	// dados nem sobe como erro
	if err := s.notifier.NotifyRollover(dateKey, len(campaigns)); err != nil {
		logrus.WithError(err).Debug("Falha ao notificar rollover, ignorando")
	}

	return nil
}

// ManualSnapshot grava a coleção de trabalho corrente sob a data civil
// de hoje, sem limpar nada. Retorna se houve escrita.
func (s *DailyRolloverService) ManualSnapshot() (bool, error) {
	s.rolloverMutex.Lock()
	defer s.rolloverMutex.Unlock()

	campaigns, err := s.campaignStore.GetAll()
	if err != nil {
		return false, errors.Wrap(err, "erro ao ler a coleção de trabalho")
	}

	if len(campaigns) == 0 {
		return false, nil
	}

	currentDate := s.clock.CurrentDate()

	snapshot := domain.Snapshot{
		Date:      currentDate,
		Campaigns: campaigns,
		CreatedAt: time.Now(),
	}

	if err := s.snapshotStore.Upsert(snapshot); err != nil {
		return false, errors.Wrapf(err, "erro ao gravar snapshot manual de %s", currentDate)
	}

	logrus.WithFields(logrus.Fields{
		"date":      currentDate,
		"campaigns": len(campaigns),
	}).Info("Snapshot manual gravado")

	return true, nil
}

// ManualReset faz snapshot (se a coleção não estiver vazia) e limpa a
// coleção, sob a data civil de hoje. Bypass explícito para resets
// disparados por operador: não há verificação de fuso.
func (s *DailyRolloverService) ManualReset() error {
	logrus.Info("Iniciando reset manual da coleção de trabalho")
	return s.rollover(s.clock.CurrentDate())
}

// GetStatus retorna o status atual do agendador
func (s *DailyRolloverService) GetStatus() map[string]any {
	s.rolloverMutex.Lock()
	defer s.rolloverMutex.Unlock()

	return map[string]any{
		"enabled":                s.config.Enabled,
		"check_interval_seconds": s.config.CheckIntervalSeconds,
		"timezone":               s.clock.Timezone(),
		"current_date":           s.clock.CurrentDate(),
		"last_seen_date":         s.lastSeenDate,
		"last_rollover_at":       s.lastRolloverAt,
		"last_rollover_date":     s.lastRolloverDate,
		"ms_until_boundary":      s.clock.MillisecondsUntilNextBoundary(),
		"near_boundary":          s.clock.IsNearBoundary(),
	}
}
