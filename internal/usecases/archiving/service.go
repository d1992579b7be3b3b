// Package archiving expõe o histórico de snapshots diários para a API
package archiving

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/pkg/utils"
)

var (
	ErrInvalidDate      = errors.New("data civil inválida, esperado YYYY-MM-DD")
	ErrSnapshotNotFound = errors.New("snapshot não encontrado para a data")
	ErrFetchSnapshots   = errors.New("erro ao consultar snapshots")
)

type SnapshotService interface {
	ListDates() ([]string, error)
	GetByDate(date string) (*domain.Snapshot, error)
}

type Service struct {
	repository repository.SnapshotStore
}

func NewService(repository repository.SnapshotStore) SnapshotService {
	return &Service{
		repository: repository,
	}
}

// ListDates retorna as datas com snapshot arquivado, da mais recente
// para a mais antiga
func (s *Service) ListDates() ([]string, error) {
	dates, err := s.repository.ListDates()
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar datas de snapshot")
		return nil, ErrFetchSnapshots
	}

	return dates, nil
}

// GetByDate retorna o snapshot arquivado sob a data civil informada
func (s *Service) GetByDate(date string) (*domain.Snapshot, error) {
	if !utils.IsCivilDate(date) {
		return nil, ErrInvalidDate
	}

	snapshot, err := s.repository.GetByDate(date)
	if err != nil {
		logrus.WithError(err).WithField("date", date).Error("Erro ao consultar snapshot")
		return nil, ErrFetchSnapshots
	}

	if snapshot == nil {
		return nil, ErrSnapshotNotFound
	}

	return snapshot, nil
}
