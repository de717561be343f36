package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"
)

type toolUnitRepository struct {
	db *sql.DB
}

func NewToolUnitRepository(db *sql.DB) repository.ToolUnitRepository {
	return &toolUnitRepository{db: db}
}

const toolUnitColumns = `id, name, category, replacement_value_cents, repair_value_cents, daily_rate_cents, daily_late_rate_cents, status, created_on`

func (r *toolUnitRepository) Create(ctx context.Context, u *domain.ToolUnit) error {
	query := `INSERT INTO tool_units (name, category, replacement_value_cents, repair_value_cents, daily_rate_cents, daily_late_rate_cents, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	u.CreatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query, u.Name, u.Category, u.ReplacementValueCents, u.RepairValueCents, u.DailyRateCents, u.DailyLateRateCents, u.Status, u.CreatedOn).Scan(&u.ID)
}

func (r *toolUnitRepository) GetByID(ctx context.Context, id int64) (*domain.ToolUnit, error) {
	u := &domain.ToolUnit{}
	query := `SELECT ` + toolUnitColumns + ` FROM tool_units WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Category, &u.ReplacementValueCents, &u.RepairValueCents, &u.DailyRateCents, &u.DailyLateRateCents, &u.Status, &u.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("tool unit %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *toolUnitRepository) Update(ctx context.Context, u *domain.ToolUnit) error {
	query := `UPDATE tool_units SET name=$1, category=$2, replacement_value_cents=$3, repair_value_cents=$4, daily_rate_cents=$5, daily_late_rate_cents=$6, status=$7 WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query, u.Name, u.Category, u.ReplacementValueCents, u.RepairValueCents, u.DailyRateCents, u.DailyLateRateCents, u.Status, u.ID)
	return err
}

// UpdateStatus is the atomic check-then-set for unit transitions: the status
// precondition and the write happen in one statement, so two concurrent
// acquisitions of the same unit cannot both succeed.
func (r *toolUnitRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.UnitStatus) (bool, error) {
	query := `UPDATE tool_units SET status=$1 WHERE id=$2 AND status=$3`
	res, err := r.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *toolUnitRepository) List(ctx context.Context) ([]domain.ToolUnit, error) {
	query := `SELECT ` + toolUnitColumns + ` FROM tool_units ORDER BY id`
	return r.queryUnits(ctx, query)
}

func (r *toolUnitRepository) ListByStatus(ctx context.Context, status domain.UnitStatus) ([]domain.ToolUnit, error) {
	query := `SELECT ` + toolUnitColumns + ` FROM tool_units WHERE status = $1 ORDER BY id`
	return r.queryUnits(ctx, query, status)
}

func (r *toolUnitRepository) ListByNameAndCategory(ctx context.Context, name, category string) ([]domain.ToolUnit, error) {
	query := `SELECT ` + toolUnitColumns + ` FROM tool_units WHERE name = $1 AND category = $2 ORDER BY id`
	return r.queryUnits(ctx, query, name, category)
}

func (r *toolUnitRepository) UpdatePricingByNameAndCategory(ctx context.Context, name, category string, p domain.UnitPricing) error {
	query := `UPDATE tool_units SET replacement_value_cents=$1, repair_value_cents=$2, daily_rate_cents=$3, daily_late_rate_cents=$4 WHERE name=$5 AND category=$6`
	_, err := r.db.ExecContext(ctx, query, p.ReplacementValueCents, p.RepairValueCents, p.DailyRateCents, p.DailyLateRateCents, name, category)
	return err
}

func (r *toolUnitRepository) StockSummary(ctx context.Context) ([]domain.StockSummary, error) {
	query := `SELECT name, category,
	            count(*) FILTER (WHERE status = 'AVAILABLE'),
	            count(*) FILTER (WHERE status = 'LOANED'),
	            count(*) FILTER (WHERE status = 'IN_REPAIR'),
	            count(*) FILTER (WHERE status = 'DECOMMISSIONED')
	          FROM tool_units GROUP BY name, category ORDER BY name, category`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.StockSummary
	for rows.Next() {
		var s domain.StockSummary
		if err := rows.Scan(&s.Name, &s.Category, &s.Available, &s.Loaned, &s.InRepair, &s.Decommissioned); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *toolUnitRepository) queryUnits(ctx context.Context, query string, args ...any) ([]domain.ToolUnit, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []domain.ToolUnit
	for rows.Next() {
		var u domain.ToolUnit
		if err := rows.Scan(&u.ID, &u.Name, &u.Category, &u.ReplacementValueCents, &u.RepairValueCents, &u.DailyRateCents, &u.DailyLateRateCents, &u.Status, &u.CreatedOn); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}
