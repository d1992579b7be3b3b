// Package notification é o canal best-effort de aviso de rollover.
// A ausência do canal é uma escolha de configuração (NoopNotifier), não
// um branch em runtime; falhas de envio nunca afetam o caminho de dados.
package notification

import (
	"bytes"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Notifier avisa o usuário que um rollover aconteceu.
// Implementações devem degradar silenciosamente: o chamador ignora o
// erro retornado, que existe apenas para log.
type Notifier interface {
	NotifyRollover(date string, campaignCount int) error
}

// NoopNotifier é a implementação padrão quando nenhum canal está
// configurado
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

func (*NoopNotifier) NotifyRollover(string, int) error {
	return nil
}

// LogNotifier registra o aviso no log da aplicação
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (*LogNotifier) NotifyRollover(date string, campaignCount int) error {
	logrus.WithFields(logrus.Fields{
		"date":      date,
		"campaigns": campaignCount,
	}).Info("Rollover diário concluído: campanhas do dia anterior arquivadas")

	return nil
}

// WebhookNotifier envia o aviso por POST para um webhook configurado
// (fire-and-forget)
type WebhookNotifier struct {
	httpClient *http.Client
	webhookURL string
}

func NewWebhookNotifier(cfg *config.Config) *WebhookNotifier {
	return &WebhookNotifier{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		webhookURL: cfg.Notification.WebhookURL,
	}
}

func (n *WebhookNotifier) NotifyRollover(date string, campaignCount int) error {
	payload, err := json.Marshal(map[string]any{
		"event":     "daily_rollover",
		"date":      date,
		"campaigns": campaignCount,
	})
	if err != nil {
		return err
	}

	resp, err := n.httpClient.Post(n.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return nil
}

// FromConfig escolhe a implementação a partir da configuração:
// webhook quando há URL, log quando apenas habilitado, noop caso
// contrário
func FromConfig(cfg *config.Config) Notifier {
	if !cfg.Rollover.NotifyEnabled {
		return NewNoopNotifier()
	}

	if cfg.Notification.WebhookURL != "" {
		return NewWebhookNotifier(cfg)
	}

	return NewLogNotifier()
}
