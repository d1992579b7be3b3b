// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const snapshotTable = "campaign_snapshots"

// SnapshotStore é o armazenamento persistente de snapshots diários,
// chaveado pela data civil. Escritas repetidas para a mesma data
// sobrescrevem o registro anterior (last-write-wins), o que torna o
// caminho de rollover tolerante a sinais duplicados.
type SnapshotStore interface {
	GetByDate(date string) (*domain.Snapshot, error)
	ListDates() ([]string, error)
	Upsert(snapshot domain.Snapshot) error
}

type snapshotStore struct {
	conn *postgres.Connection
}

func NewSnapshotStore(conn *postgres.Connection) SnapshotStore {
	return &snapshotStore{
		conn: conn,
	}
}

func (r *snapshotStore) GetByDate(date string) (*domain.Snapshot, error) {
	query, args, err := squirrel.
		Select("cs.snapshot_date", "cs.campaigns", "cs.created_at").
		From(snapshotTable + " cs").
		Where(squirrel.Eq{"cs.snapshot_date": date}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	var payload []byte
	snapshot := &domain.Snapshot{}

	err = row.Scan(&snapshot.Date, &payload, &snapshot.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	if err := json.Unmarshal(payload, &snapshot.Campaigns); err != nil {
		return nil, fmt.Errorf("erro ao decodificar campanhas do snapshot: %w", err)
	}

	return snapshot, nil
}

func (r *snapshotStore) ListDates() ([]string, error) {
	query, args, err := squirrel.
		Select("cs.snapshot_date").
		From(snapshotTable + " cs").
		OrderBy("cs.snapshot_date DESC").
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

	dates := make([]string, 0)
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("erro ao escanear data de snapshot: %w", err)
		}
		dates = append(dates, date)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return dates, nil
}

func (r *snapshotStore) Upsert(snapshot domain.Snapshot) error {
	payload, err := json.Marshal(snapshot.Campaigns)
	if err != nil {
		return fmt.Errorf("erro ao codificar campanhas do snapshot: %w", err)
	}

	createdAt := snapshot.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args, err := squirrel.StatementBuilder.
		Insert(snapshotTable).
		Columns("snapshot_date", "campaigns", "created_at").
		Values(snapshot.Date, payload, createdAt).
		Suffix(`
			ON CONFLICT (snapshot_date) DO UPDATE SET
				campaigns = EXCLUDED.campaigns,
				created_at = EXCLUDED.created_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	return nil
}
