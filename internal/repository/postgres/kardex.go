package postgres

import (
	"context"
	"database/sql"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"
)

type kardexRepository struct {
	db *sql.DB
}

func NewKardexRepository(db *sql.DB) repository.KardexRepository {
	return &kardexRepository{db: db}
}

const kardexColumns = `id, type, quantity, tool_unit_id, loan_id, actor_rut, recorded_at`

func (r *kardexRepository) Create(ctx context.Context, e *domain.KardexEntry) error {
	query := `INSERT INTO kardex (type, quantity, tool_unit_id, loan_id, actor_rut, recorded_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}
	return r.db.QueryRowContext(ctx, query, e.Type, e.Quantity, e.ToolUnitID, e.LoanID, e.ActorRut, e.RecordedAt).Scan(&e.ID)
}

func (r *kardexRepository) List(ctx context.Context) ([]domain.KardexEntry, error) {
	query := `SELECT ` + kardexColumns + ` FROM kardex ORDER BY recorded_at DESC`
	return r.queryEntries(ctx, query)
}

func (r *kardexRepository) ListByTool(ctx context.Context, toolUnitID int64) ([]domain.KardexEntry, error) {
	query := `SELECT ` + kardexColumns + ` FROM kardex WHERE tool_unit_id = $1 ORDER BY recorded_at DESC`
	return r.queryEntries(ctx, query, toolUnitID)
}

func (r *kardexRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.KardexEntry, error) {
	query := `SELECT ` + kardexColumns + ` FROM kardex WHERE recorded_at BETWEEN $1 AND $2 ORDER BY recorded_at DESC`
	return r.queryEntries(ctx, query, start, end)
}

func (r *kardexRepository) ListByToolAndDateRange(ctx context.Context, toolUnitID int64, start, end time.Time) ([]domain.KardexEntry, error) {
	query := `SELECT ` + kardexColumns + ` FROM kardex WHERE tool_unit_id = $1 AND recorded_at BETWEEN $2 AND $3 ORDER BY recorded_at DESC`
	return r.queryEntries(ctx, query, toolUnitID, start, end)
}

func (r *kardexRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.KardexEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.KardexEntry
	for rows.Next() {
		var e domain.KardexEntry
		if err := rows.Scan(&e.ID, &e.Type, &e.Quantity, &e.ToolUnitID, &e.LoanID, &e.ActorRut, &e.RecordedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
