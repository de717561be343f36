package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"
)

type loanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, client_id, tool_unit_id, start_date, scheduled_return_date, return_date, delivered, status, loan_price_cents, fine_cents, damage_price_cents, fine_total_cents, total_cents, fine_paid, created_on`

func (r *loanRepository) Create(ctx context.Context, l *domain.Loan) error {
	query := `INSERT INTO loans (client_id, tool_unit_id, start_date, scheduled_return_date, delivered, status, loan_price_cents, fine_cents, damage_price_cents, fine_total_cents, total_cents, fine_paid, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	l.CreatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query, l.ClientID, l.ToolUnitID, l.StartDate, l.ScheduledReturnDate, l.Delivered, l.Status, l.LoanPriceCents, l.FineCents, l.DamagePriceCents, l.FineTotalCents, l.TotalCents, l.FinePaid, l.CreatedOn).Scan(&l.ID)
}

func (r *loanRepository) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	l := &domain.Loan{}
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&l.ID, &l.ClientID, &l.ToolUnitID, &l.StartDate, &l.ScheduledReturnDate, &l.ReturnDate, &l.Delivered, &l.Status, &l.LoanPriceCents, &l.FineCents, &l.DamagePriceCents, &l.FineTotalCents, &l.TotalCents, &l.FinePaid, &l.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("loan %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *loanRepository) Update(ctx context.Context, l *domain.Loan) error {
	query := `UPDATE loans SET return_date=$1, delivered=$2, status=$3, loan_price_cents=$4, fine_cents=$5, damage_price_cents=$6, fine_total_cents=$7, total_cents=$8, fine_paid=$9 WHERE id=$10`
	_, err := r.db.ExecContext(ctx, query, l.ReturnDate, l.Delivered, l.Status, l.LoanPriceCents, l.FineCents, l.DamagePriceCents, l.FineTotalCents, l.TotalCents, l.FinePaid, l.ID)
	return err
}

// UpdateOpen writes only while the stored row is still undelivered, so a
// concurrent return and sweep of the same loan cannot clobber each other.
func (r *loanRepository) UpdateOpen(ctx context.Context, l *domain.Loan) (bool, error) {
	query := `UPDATE loans SET return_date=$1, delivered=$2, status=$3, loan_price_cents=$4, fine_cents=$5, damage_price_cents=$6, fine_total_cents=$7, total_cents=$8, fine_paid=$9 WHERE id=$10 AND delivered=false`
	res, err := r.db.ExecContext(ctx, query, l.ReturnDate, l.Delivered, l.Status, l.LoanPriceCents, l.FineCents, l.DamagePriceCents, l.FineTotalCents, l.TotalCents, l.FinePaid, l.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *loanRepository) UpdateFinePaid(ctx context.Context, id int64, paid bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE loans SET fine_paid=$1 WHERE id=$2`, paid, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError("loan %d not found", id)
	}
	return nil
}

func (r *loanRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM loans WHERE id = $1`, id)
	return err
}

func (r *loanRepository) List(ctx context.Context) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans ORDER BY id`
	return r.queryLoans(ctx, query)
}

func (r *loanRepository) ListActive(ctx context.Context) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE delivered = false ORDER BY created_on DESC`
	return r.queryLoans(ctx, query)
}

func (r *loanRepository) ListActiveByDateRange(ctx context.Context, start, end time.Time) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE delivered = false AND start_date BETWEEN $1 AND $2 ORDER BY created_on DESC`
	return r.queryLoans(ctx, query, start, end)
}

func (r *loanRepository) ListOverdue(ctx context.Context, today time.Time) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE status = 'OVERDUE' AND scheduled_return_date < $1 ORDER BY scheduled_return_date`
	return r.queryLoans(ctx, query, today)
}

func (r *loanRepository) ListOverdueByDateRange(ctx context.Context, today, start, end time.Time) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE status = 'OVERDUE' AND scheduled_return_date < $1 AND start_date BETWEEN $2 AND $3 ORDER BY scheduled_return_date`
	return r.queryLoans(ctx, query, today, start, end)
}

func (r *loanRepository) ListUnpaid(ctx context.Context) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE fine_paid = false ORDER BY created_on DESC`
	return r.queryLoans(ctx, query)
}

func (r *loanRepository) CountActiveByClient(ctx context.Context, clientID int64) (int64, error) {
	var count int64
	query := `SELECT count(*) FROM loans WHERE client_id = $1 AND delivered = false`
	err := r.db.QueryRowContext(ctx, query, clientID).Scan(&count)
	return count, err
}

func (r *loanRepository) CountActiveByClientAndToolName(ctx context.Context, clientID int64, toolName string) (int64, error) {
	var count int64
	query := `SELECT count(*) FROM loans l JOIN tool_units u ON u.id = l.tool_unit_id WHERE l.client_id = $1 AND l.delivered = false AND u.name = $2`
	err := r.db.QueryRowContext(ctx, query, clientID, toolName).Scan(&count)
	return count, err
}

func (r *loanRepository) CountUnpaidByClient(ctx context.Context, clientID int64) (int64, error) {
	var count int64
	query := `SELECT count(*) FROM loans WHERE client_id = $1 AND fine_paid = false`
	err := r.db.QueryRowContext(ctx, query, clientID).Scan(&count)
	return count, err
}

func (r *loanRepository) CountOverdueByClient(ctx context.Context, clientID int64, today time.Time) (int64, error) {
	var count int64
	query := `SELECT count(*) FROM loans WHERE client_id = $1 AND delivered = false AND scheduled_return_date < $2`
	err := r.db.QueryRowContext(ctx, query, clientID, today).Scan(&count)
	return count, err
}

func (r *loanRepository) TopToolsAllTime(ctx context.Context) ([]domain.ToolRanking, error) {
	query := `SELECT u.name, count(*) FROM loans l JOIN tool_units u ON u.id = l.tool_unit_id GROUP BY u.name ORDER BY count(*) DESC`
	return r.queryRankings(ctx, query)
}

func (r *loanRepository) TopToolsByDateRange(ctx context.Context, start, end time.Time) ([]domain.ToolRanking, error) {
	query := `SELECT u.name, count(*) FROM loans l JOIN tool_units u ON u.id = l.tool_unit_id WHERE l.start_date BETWEEN $1 AND $2 GROUP BY u.name ORDER BY count(*) DESC`
	return r.queryRankings(ctx, query, start, end)
}

func (r *loanRepository) queryLoans(ctx context.Context, query string, args ...any) ([]domain.Loan, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var l domain.Loan
		if err := rows.Scan(&l.ID, &l.ClientID, &l.ToolUnitID, &l.StartDate, &l.ScheduledReturnDate, &l.ReturnDate, &l.Delivered, &l.Status, &l.LoanPriceCents, &l.FineCents, &l.DamagePriceCents, &l.FineTotalCents, &l.TotalCents, &l.FinePaid, &l.CreatedOn); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

func (r *loanRepository) queryRankings(ctx context.Context, query string, args ...any) ([]domain.ToolRanking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rankings []domain.ToolRanking
	for rows.Next() {
		var rk domain.ToolRanking
		if err := rows.Scan(&rk.Name, &rk.LoanCount); err != nil {
			return nil, err
		}
		rankings = append(rankings, rk)
	}
	return rankings, rows.Err()
}
