// Package clock é a fonte única de verdade sobre "que dia/hora civil é
// agora" no fuso canônico do produto, independente do fuso configurado
// no host.
package clock

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
)

// CanonicalTimezone é o identificador do fuso canônico do dashboard.
// Todas as fronteiras de dia são calculadas em horário de Brasília.
const CanonicalTimezone = "America/Sao_Paulo"

// brasiliaOffsetSeconds é o offset fixo usado quando o tzdata não está
// disponível no host (UTC-3, sem horário de verão no período vigente)
const brasiliaOffsetSeconds = -3 * 60 * 60

const displayLayout = "02/01/2006 15:04:05"

// boundaryWindow é a janela dos predicados de proximidade da meia-noite
const boundaryWindow = 5 * time.Minute

type Clock struct {
	location *time.Location
	now      func() time.Time
}

// New cria um Clock ancorado no fuso canônico
func New() *Clock {
	return NewWithNow(time.Now)
}

// NewWithNow cria um Clock com a função de "agora" injetada.
// Usado nos testes para congelar o instante avaliado.
func NewWithNow(now func() time.Time) *Clock {
	loc, err := time.LoadLocation(CanonicalTimezone)
	if err != nil {
		logrus.WithError(err).Warnf("Fuso %s indisponível no host, usando offset fixo UTC-3", CanonicalTimezone)
		loc = time.FixedZone("-03", brasiliaOffsetSeconds)
	}

	return &Clock{
		location: loc,
		now:      now,
	}
}

// Timezone retorna o identificador do fuso canônico
func (c *Clock) Timezone() string {
	return CanonicalTimezone
}

// CurrentDate formata "agora" no fuso canônico como data civil YYYY-MM-DD
func (c *Clock) CurrentDate() string {
	return c.now().In(c.location).Format(domain.CivilDateLayout)
}

// CurrentDateTime formata "agora" para exibição no dashboard
func (c *Clock) CurrentDateTime() string {
	return c.now().In(c.location).Format(displayLayout)
}

// ToCanonical reancora um instante arbitrário no fuso canônico para
// fins de comparação de relógio de parede
func (c *Clock) ToCanonical(t time.Time) time.Time {
	return t.In(c.location)
}

// IsNearBoundary informa se o relógio de parede canônico está nos
// últimos 5 minutos do dia (23:55–23:59)
func (c *Clock) IsNearBoundary() bool {
	now := c.now().In(c.location)
	return now.Hour() == 23 && now.Minute() >= 55
}

// IsJustAfterBoundary informa se o relógio de parede canônico está nos
// primeiros 5 minutos após a meia-noite (00:00–00:05)
func (c *Clock) IsJustAfterBoundary() bool {
	now := c.now().In(c.location)
	return now.Hour() == 0 && now.Minute() <= int(boundaryWindow.Minutes())
}

// MillisecondsUntilNextBoundary retorna quantos milissegundos faltam
// até a próxima meia-noite canônica. Usado por colaboradores que
// dirigem timers; este pacote não agenda nada.
func (c *Clock) MillisecondsUntilNextBoundary() int64 {
	now := c.now().In(c.location)
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.location).AddDate(0, 0, 1)

	ms := nextMidnight.Sub(now).Milliseconds()
	if ms < 0 {
		return 0
	}

	return ms
}
