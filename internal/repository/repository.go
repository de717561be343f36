package repository

import (
	"context"
	"time"

	"toolrent-backend/internal/domain"
)

type ToolUnitRepository interface {
	Create(ctx context.Context, unit *domain.ToolUnit) error
	GetByID(ctx context.Context, id int64) (*domain.ToolUnit, error)
	Update(ctx context.Context, unit *domain.ToolUnit) error
	// UpdateStatus transitions a unit from one status to another in a single
	// statement. It reports false when the unit was not in the expected
	// status, leaving the row untouched.
	UpdateStatus(ctx context.Context, id int64, from, to domain.UnitStatus) (bool, error)
	List(ctx context.Context) ([]domain.ToolUnit, error)
	ListByStatus(ctx context.Context, status domain.UnitStatus) ([]domain.ToolUnit, error)
	ListByNameAndCategory(ctx context.Context, name, category string) ([]domain.ToolUnit, error)
	UpdatePricingByNameAndCategory(ctx context.Context, name, category string, pricing domain.UnitPricing) error
	StockSummary(ctx context.Context) ([]domain.StockSummary, error)
}

type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id int64) (*domain.Loan, error)
	Update(ctx context.Context, loan *domain.Loan) error
	// UpdateOpen persists the loan only while it is still undelivered in the
	// store, reporting false otherwise. Both the return path and the overdue
	// sweep write through this guard so concurrent writers to one loan
	// serialize on the delivered flag.
	UpdateOpen(ctx context.Context, loan *domain.Loan) (bool, error)
	// UpdateFinePaid writes only the settlement flag, keeping fine settlement
	// out of the sweeper's write set.
	UpdateFinePaid(ctx context.Context, id int64, paid bool) error
	// Delete removes a loan row. Used only to roll back a creation whose
	// audit write failed.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Loan, error)
	ListActive(ctx context.Context) ([]domain.Loan, error)
	ListActiveByDateRange(ctx context.Context, start, end time.Time) ([]domain.Loan, error)
	ListOverdue(ctx context.Context, today time.Time) ([]domain.Loan, error)
	ListOverdueByDateRange(ctx context.Context, today, start, end time.Time) ([]domain.Loan, error)
	ListUnpaid(ctx context.Context) ([]domain.Loan, error)
	CountActiveByClient(ctx context.Context, clientID int64) (int64, error)
	CountActiveByClientAndToolName(ctx context.Context, clientID int64, toolName string) (int64, error)
	CountUnpaidByClient(ctx context.Context, clientID int64) (int64, error)
	CountOverdueByClient(ctx context.Context, clientID int64, today time.Time) (int64, error)
	TopToolsAllTime(ctx context.Context) ([]domain.ToolRanking, error)
	TopToolsByDateRange(ctx context.Context, start, end time.Time) ([]domain.ToolRanking, error)
}

type KardexRepository interface {
	Create(ctx context.Context, entry *domain.KardexEntry) error
	List(ctx context.Context) ([]domain.KardexEntry, error)
	ListByTool(ctx context.Context, toolUnitID int64) ([]domain.KardexEntry, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.KardexEntry, error)
	ListByToolAndDateRange(ctx context.Context, toolUnitID int64, start, end time.Time) ([]domain.KardexEntry, error)
}

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByRut(ctx context.Context, rut string) (*domain.Client, error)
	GetByUsername(ctx context.Context, username string) (*domain.Client, error)
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	GetByPhoneNumber(ctx context.Context, phone string) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	UpdateStatus(ctx context.Context, id int64, status domain.ClientStatus) error
}
