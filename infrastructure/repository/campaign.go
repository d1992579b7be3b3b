package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/pkg/utils"
)

const workingCampaignTable = "working_campaigns"

// CampaignStore é a coleção de trabalho de campanhas do dia corrente.
// O scheduler de rollover só usa GetAll e ReplaceAll; nenhum campo
// individual de campanha é inspecionado por ele.
type CampaignStore interface {
	GetAll() ([]domain.Campaign, error)
	ReplaceAll(campaigns []domain.Campaign) error
}

type campaignStore struct {
	conn *postgres.Connection
}

func NewCampaignStore(conn *postgres.Connection) CampaignStore {
	return &campaignStore{
		conn: conn,
	}
}

func (r *campaignStore) GetAll() ([]domain.Campaign, error) {
	query, args, err := squirrel.
		Select("wc.id", "wc.name", "wc.platform", "wc.investment", "wc.revenue", "wc.currency", "wc.created_at").
		From(workingCampaignTable + " wc").
		OrderBy("wc.created_at ASC", "wc.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	campaigns := make([]domain.Campaign, 0)
	for rows.Next() {
		campaign, err := r.scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}
		campaigns = append(campaigns, *campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}

// ReplaceAll substitui a coleção de trabalho inteira de forma atômica.
// A limpeza de rollover é um ReplaceAll com coleção vazia.
func (r *campaignStore) ReplaceAll(campaigns []domain.Campaign) error {
	return r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM " + workingCampaignTable); err != nil {
			return fmt.Errorf("erro ao limpar a coleção de trabalho: %w", err)
		}

		if len(campaigns) == 0 {
			return nil
		}

		query := squirrel.StatementBuilder.
			Insert(workingCampaignTable).
			Columns("id", "name", "platform", "investment", "revenue", "currency", "created_at").
			PlaceholderFormat(squirrel.Dollar)

		for _, campaign := range campaigns {
			id := campaign.ID
			if id == "" {
				generated, err := utils.GenerateID()
				if err != nil {
					return fmt.Errorf("erro ao gerar id de campanha: %w", err)
				}
				id = generated
			}

			createdAt := campaign.CreatedAt
			if createdAt.IsZero() {
				createdAt = time.Now()
			}

			currency := campaign.Currency
			if !currency.Valid() {
				currency = domain.CurrencyBRL
			}

			query = query.Values(
				id,
				campaign.Name,
				campaign.Platform,
				campaign.Investment,
				campaign.Revenue,
				currency,
				createdAt,
			)
		}

		sqlQuery, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir query de inserção: %w", err)
		}

		if _, err := tx.Exec(sqlQuery, args...); err != nil {
			return fmt.Errorf("erro ao executar query de inserção: %w", err)
		}

		return nil
	})
}

func (r *campaignStore) scanCampaign(rows *sql.Rows) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}

	err := rows.Scan(
		&campaign.ID,
		&campaign.Name,
		&campaign.Platform,
		&campaign.Investment,
		&campaign.Revenue,
		&campaign.Currency,
		&campaign.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return campaign, nil
}
