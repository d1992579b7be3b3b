// Package exchanging mantém o cache da cotação USD→BRL servida para
// todo o dashboard: uma única cotação corrente, com staleness limitada
// por TTL, busca deduplicada e degradação para o último valor conhecido
// (ou para a constante de fallback) quando o provedor falha.
package exchanging

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/integrator/awesomeapi/awesomeclient"
	"github.com/vfg2006/campaign-dashboard-api/internal/config"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
)

// RateService serve a cotação corrente aos consumidores.
// GetRate nunca retorna erro como valor de retorno separado: falhas de
// busca viram campos do RateQuote, porque a exibição de moeda precisa
// sempre renderizar algo.
type RateService interface {
	GetRate() domain.RateQuote
	Refresh()
	Start(ctx context.Context) error
	GetStatus() map[string]any
}

type rateCacheConfig struct {
	TTL             time.Duration
	RefreshInterval time.Duration
	FallbackRate    float64
	RefreshEnabled  bool
}

type Service struct {
	provider  awesomeclient.Client
	scheduler *gocron.Scheduler
	config    rateCacheConfig

	mu            sync.Mutex
	current       *domain.ExchangeRateRecord
	lastErr       error
	fetchDone     chan struct{}
	lastRefreshAt time.Time

	now func() time.Time
}

func NewService(cfg *config.Config, provider awesomeclient.Client) *Service {
	cacheConfig := rateCacheConfig{
		TTL:             time.Duration(cfg.ExchangeRate.TTLSeconds) * time.Second,
		RefreshInterval: time.Duration(cfg.ExchangeRate.RefreshIntervalSeconds) * time.Second,
		FallbackRate:    cfg.ExchangeRate.FallbackRate,
		RefreshEnabled:  cfg.ExchangeRate.RefreshEnabled,
	}

	logrus.WithFields(logrus.Fields{
		"ttl":              cacheConfig.TTL,
		"refresh_interval": cacheConfig.RefreshInterval,
		"fallback_rate":    cacheConfig.FallbackRate,
		"refresh_enabled":  cacheConfig.RefreshEnabled,
	}).Info("Configuração do cache de cotação carregada")

	return &Service{
		provider:  provider,
		scheduler: gocron.NewScheduler(time.Local),
		config:    cacheConfig,
		now:       time.Now,
	}
}

// Start inicia o refresh periódico em background, para que o cache se
// recupere sozinho sem depender de requisições da UI
func (s *Service) Start(ctx context.Context) error {
	if !s.config.RefreshEnabled {
		logrus.Info("Refresh periódico de cotação desabilitado por configuração")
		return nil
	}

	logrus.WithField("interval", s.config.RefreshInterval).Info("Iniciando refresh periódico da cotação USD→BRL")

	_, err := s.scheduler.Every(s.config.RefreshInterval).Do(func() {
		s.Refresh()
	})
	if err != nil {
		return errors.Wrap(err, "erro ao agendar refresh de cotação")
	}

	s.scheduler.StartAsync()

	// Parar o agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando refresh periódico de cotação")
		s.scheduler.Stop()
	}()

	return nil
}

// GetRate serve a cotação corrente segundo a máquina de estados do
// cache: fresca → serve direto; vazia ou expirada → tenta uma busca
// (compartilhada entre chamadores concorrentes) e serve o que houver ao
// final, degradando para o valor antigo ou para o fallback constante.
func (s *Service) GetRate() domain.RateQuote {
	s.mu.Lock()

	if s.freshLocked() {
		quote := s.quoteLocked()
		s.mu.Unlock()
		return quote
	}

	done := s.startFetchLocked()
	s.mu.Unlock()

	<-done

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quoteLocked()
}

// Refresh força uma busca no provedor, independente do TTL.
// Invocações sobrepostas colapsam em uma única chamada de rede.
func (s *Service) Refresh() {
	s.mu.Lock()
	done := s.startFetchLocked()
	s.mu.Unlock()

	<-done
}

// GetStatus retorna o estado atual do cache para o painel de operação
func (s *Service) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]any{
		"refresh_enabled":  s.config.RefreshEnabled,
		"refresh_interval": s.config.RefreshInterval.String(),
		"ttl":              s.config.TTL.String(),
		"fallback_rate":    s.config.FallbackRate,
		"has_rate":         s.current != nil,
		"last_refresh_at":  s.lastRefreshAt,
	}

	if s.current != nil {
		status["rate"] = s.current.Rate
		status["fetched_at"] = s.current.FetchedAt
	}

	if s.lastErr != nil {
		status["last_error"] = s.lastErr.Error()
	}

	return status
}

// freshLocked informa se o registro corrente existe e está dentro do TTL
func (s *Service) freshLocked() bool {
	return s.current != nil && s.now().Sub(s.current.FetchedAt) < s.config.TTL
}

// quoteLocked monta o RateQuote servido ao consumidor a partir do
// estado corrente do cache
func (s *Service) quoteLocked() domain.RateQuote {
	if s.current == nil {
		// Nunca houve busca bem-sucedida: servir a constante de
		// fallback em vez de nenhum valor
		quote := domain.RateQuote{
			Rate:     s.config.FallbackRate,
			Fallback: true,
		}
		if s.lastErr != nil {
			quote.Error = s.lastErr.Error()
		}
		return quote
	}

	quote := domain.RateQuote{
		Rate:            s.current.Rate,
		FetchedAt:       s.current.FetchedAt,
		SourceTimestamp: s.current.SourceTimestamp,
		Stale:           s.now().Sub(s.current.FetchedAt) >= s.config.TTL,
	}
	if s.lastErr != nil {
		quote.Error = s.lastErr.Error()
	}

	return quote
}

// startFetchLocked dispara uma busca no provedor, reaproveitando a que
// estiver em voo. Deve ser chamado com o mutex adquirido; o canal
// retornado fecha quando a busca termina.
func (s *Service) startFetchLocked() chan struct{} {
	if s.fetchDone != nil {
		return s.fetchDone
	}

	done := make(chan struct{})
	s.fetchDone = done

	go func() {
		record, err := s.fetch()

		s.mu.Lock()
		if err != nil {
			// Manter o registro anterior: servir valor velho é melhor
			// do que não servir nada
			s.lastErr = err
			logrus.WithError(err).Warn("Falha ao atualizar cotação USD→BRL, mantendo valor anterior")
		} else {
			s.current = record
			s.lastErr = nil
			logrus.WithFields(logrus.Fields{
				"rate":             record.Rate,
				"source_timestamp": record.SourceTimestamp,
			}).Debug("Cotação USD→BRL atualizada")
		}
		s.lastRefreshAt = s.now()
		s.fetchDone = nil
		s.mu.Unlock()

		close(done)
	}()

	return done
}

// fetch busca e valida uma cotação no provedor. Entrada não confiável:
// bid não numérico ou não positivo é rejeitado aqui e nunca substitui o
// registro corrente.
func (s *Service) fetch() (*domain.ExchangeRateRecord, error) {
	quote, err := s.provider.GetUSDBRLQuote()
	if err != nil {
		return nil, err
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(quote.Bid), 64)
	if err != nil {
		return nil, errors.Wrapf(err, "cotação não numérica do provedor: %q", quote.Bid)
	}

	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, errors.Errorf("cotação inválida do provedor: %v", rate)
	}

	return &domain.ExchangeRateRecord{
		Rate:            rate,
		FetchedAt:       s.now(),
		SourceTimestamp: quote.Timestamp,
	}, nil
}
