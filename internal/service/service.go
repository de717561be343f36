package service

import (
	"context"
	"time"

	"toolrent-backend/internal/domain"
)

// KardexService is the append-only movement ledger. It records one entry per
// state-changing operation and exposes read-only projections.
type KardexService interface {
	Record(ctx context.Context, entry *domain.KardexEntry) error
	ListAll(ctx context.Context) ([]domain.KardexEntry, error)
	ListByTool(ctx context.Context, toolUnitID int64) ([]domain.KardexEntry, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.KardexEntry, error)
	ListFiltered(ctx context.Context, toolUnitID int64, start, end time.Time) ([]domain.KardexEntry, error)
}

// InventoryService owns the tool-unit state machine.
type InventoryService interface {
	// RegisterUnits creates quantity independent units from the template and
	// returns the first one created.
	RegisterUnits(ctx context.Context, template *domain.ToolUnit, quantity int, actorRut string) (*domain.ToolUnit, error)
	// AcquireUnit transitions an AVAILABLE unit to LOANED. It emits no kardex
	// entry; the loan engine records the movement against the loan.
	AcquireUnit(ctx context.Context, unitID int64) (*domain.ToolUnit, error)
	// ReleaseUnit transitions a LOANED unit back to AVAILABLE.
	ReleaseUnit(ctx context.Context, unitID int64) error
	MarkInRepair(ctx context.Context, unitID int64, loanID *int64, actorRut string) error
	Decommission(ctx context.Context, unitID int64, actorRut string) error
	// UpdateUnit edits a unit and, when any monetary field changed, propagates
	// the new pricing to every unit sharing the same name and category.
	UpdateUnit(ctx context.Context, unitID int64, details *domain.ToolUnit, actorRut string) (*domain.ToolUnit, error)
	GetUnit(ctx context.Context, unitID int64) (*domain.ToolUnit, error)
	ListUnits(ctx context.Context) ([]domain.ToolUnit, error)
	ListAvailable(ctx context.Context) ([]domain.ToolUnit, error)
	// ListByModel returns every unit sharing a name and category.
	ListByModel(ctx context.Context, name, category string) ([]domain.ToolUnit, error)
	StockSummary(ctx context.Context) ([]domain.StockSummary, error)
}

// EligibilityService decides whether a client may take a new loan and manages
// the client's restriction status.
type EligibilityService interface {
	AssertCanBorrow(ctx context.Context, clientID int64) error
	AssertNoDuplicateTool(ctx context.Context, clientID int64, toolName string) error
	// Restrict sets the client RESTRICTED. It is idempotent: an already
	// restricted client is left untouched.
	Restrict(ctx context.Context, clientID int64) error
	UpdateStatus(ctx context.Context, clientID int64, finesCleared bool) error
}

// LoanService orchestrates the loan lifecycle: creation, return, fine
// settlement and the recurring overdue sweep.
type LoanService interface {
	CreateLoan(ctx context.Context, clientID, unitID int64, startDate, scheduledReturnDate time.Time, actorRut string) (*domain.Loan, error)
	ReturnLoan(ctx context.Context, loanID int64, damaged, irreparable bool, actorRut string) (*domain.Loan, error)
	UpdateFinePaid(ctx context.Context, loanID int64, finePaid bool) (*domain.Loan, error)
	// SweepOverdue reclassifies open loans past their scheduled return date,
	// restricts their clients and recomputes fines from zero. It returns the
	// number of loans marked overdue. Running it twice on the same day yields
	// the same result.
	SweepOverdue(ctx context.Context, today time.Time) (int, error)
	ListLoans(ctx context.Context) ([]domain.Loan, error)
	ListActiveLoans(ctx context.Context) ([]domain.Loan, error)
	ListActiveLoansByDate(ctx context.Context, start, end time.Time) ([]domain.Loan, error)
	ListOverdueLoans(ctx context.Context, today time.Time) ([]domain.Loan, error)
	ListOverdueLoansByDate(ctx context.Context, today, start, end time.Time) ([]domain.Loan, error)
	ListUnpaidLoans(ctx context.Context) ([]domain.Loan, error)
	TopRentedTools(ctx context.Context) ([]domain.ToolRanking, error)
	TopRentedToolsByDate(ctx context.Context, start, end time.Time) ([]domain.ToolRanking, error)
}

// ClientService handles client records and derived eligibility views.
type ClientService interface {
	Register(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Get(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Update(ctx context.Context, id int64, details *domain.Client) (*domain.Client, error)
	HasUnpaidFines(ctx context.Context, id int64) (bool, error)
	HasOverdueLoans(ctx context.Context, id int64) (bool, error)
}
