package service

import (
	"context"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/logger"
	"toolrent-backend/internal/repository"
)

type loanService struct {
	loanRepo    repository.LoanRepository
	inventory   InventoryService
	eligibility EligibilityService
	kardex      KardexService
	now         func() time.Time
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	inventory InventoryService,
	eligibility EligibilityService,
	kardex KardexService,
) LoanService {
	return &loanService{
		loanRepo:    loanRepo,
		inventory:   inventory,
		eligibility: eligibility,
		kardex:      kardex,
		now:         time.Now,
	}
}

func (s *loanService) CreateLoan(ctx context.Context, clientID, unitID int64, startDate, scheduledReturnDate time.Time, actorRut string) (*domain.Loan, error) {
	if clientID == 0 {
		return nil, domain.ValidationError("a client is required")
	}
	if unitID == 0 {
		return nil, domain.ValidationError("a tool unit is required")
	}

	if err := s.eligibility.AssertCanBorrow(ctx, clientID); err != nil {
		return nil, err
	}

	unit, err := s.inventory.AcquireUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	// Past this point the unit is LOANED; any failure must undo that.
	if startDate.IsZero() || scheduledReturnDate.IsZero() {
		s.releaseAcquired(ctx, unitID)
		return nil, domain.ValidationError("start and scheduled return dates are required")
	}
	if scheduledReturnDate.Before(startDate) {
		s.releaseAcquired(ctx, unitID)
		return nil, domain.ValidationError("scheduled return date cannot be before the start date")
	}

	if err := s.eligibility.AssertNoDuplicateTool(ctx, clientID, unit.Name); err != nil {
		s.releaseAcquired(ctx, unitID)
		return nil, err
	}

	days := daysBetween(startDate, scheduledReturnDate)
	if days < 1 {
		days = 1 // minimum one billable day
	}

	loan := &domain.Loan{
		ClientID:            clientID,
		ToolUnitID:          unitID,
		StartDate:           startDate,
		ScheduledReturnDate: scheduledReturnDate,
		Delivered:           false,
		Status:              domain.LoanStatusActive,
		LoanPriceCents:      days * unit.DailyRateCents,
		FinePaid:            true,
	}
	if err := s.loanRepo.Create(ctx, loan); err != nil {
		s.releaseAcquired(ctx, unitID)
		return nil, err
	}

	entry := &domain.KardexEntry{
		Type:       domain.MovementTypeLoan,
		Quantity:   1,
		ToolUnitID: unitID,
		LoanID:     &loan.ID,
		ActorRut:   actorRut,
	}
	if err := s.kardex.Record(ctx, entry); err != nil {
		// The loan must not exist without its movement record.
		if delErr := s.loanRepo.Delete(ctx, loan.ID); delErr != nil {
			logger.Error("Failed to delete loan after audit write failure", "loan_id", loan.ID, "error", delErr)
		}
		s.releaseAcquired(ctx, unitID)
		return nil, err
	}

	logger.Info("Created loan", "loan_id", loan.ID, "client_id", clientID, "tool_unit_id", unitID, "price_cents", loan.LoanPriceCents)
	return loan, nil
}

func (s *loanService) ReturnLoan(ctx context.Context, loanID int64, damaged, irreparable bool, actorRut string) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Delivered {
		return nil, domain.ConflictError("loan %d was already returned", loanID)
	}

	unit, err := s.inventory.GetUnit(ctx, loan.ToolUnitID)
	if err != nil {
		return nil, err
	}

	var damagePriceCents int64
	if damaged {
		if irreparable {
			damagePriceCents = unit.ReplacementValueCents
		} else {
			damagePriceCents = unit.RepairValueCents
		}
	}

	prior := *loan

	today := s.now()
	loan.ReturnDate = &today
	loan.Delivered = true
	loan.DamagePriceCents = damagePriceCents
	loan.FineTotalCents = loan.FineCents + damagePriceCents
	loan.TotalCents = loan.LoanPriceCents + damagePriceCents + loan.FineCents
	loan.Status = domain.LoanStatusReturned

	// Guarded write first: if another caller returned the loan in the
	// meantime, fail before touching the unit.
	ok, err := s.loanRepo.UpdateOpen(ctx, loan)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ConflictError("loan %d was already returned", loanID)
	}

	// The loan is committed as returned; every failure below rolls it back to
	// its previous open state.
	switch {
	case damaged && irreparable:
		err = s.inventory.Decommission(ctx, unit.ID, actorRut)
	case damaged:
		// The unit stays unavailable until the repair workflow completes.
		err = s.inventory.MarkInRepair(ctx, unit.ID, &loan.ID, actorRut)
	default:
		err = s.inventory.ReleaseUnit(ctx, unit.ID)
	}
	if err != nil {
		s.reopenLoan(ctx, &prior)
		return nil, err
	}

	entry := &domain.KardexEntry{
		Type:       domain.MovementTypeReturn,
		Quantity:   1,
		ToolUnitID: unit.ID,
		LoanID:     &loan.ID,
		ActorRut:   actorRut,
	}
	if err := s.kardex.Record(ctx, entry); err != nil {
		if !damaged {
			// The unit was already released; take it back so the reopened
			// loan keeps its hold.
			if _, aerr := s.inventory.AcquireUnit(ctx, unit.ID); aerr != nil {
				logger.Error("Failed to reacquire unit after audit write failure", "tool_unit_id", unit.ID, "error", aerr)
			}
		}
		s.reopenLoan(ctx, &prior)
		return nil, err
	}

	logger.Info("Returned loan", "loan_id", loan.ID, "damaged", damaged, "irreparable", irreparable, "total_cents", loan.TotalCents)
	return loan, nil
}

func (s *loanService) UpdateFinePaid(ctx context.Context, loanID int64, finePaid bool) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	// Only the flag column is written, so a sweep recomputing this loan's
	// fine in the meantime is never clobbered.
	if err := s.loanRepo.UpdateFinePaid(ctx, loanID, finePaid); err != nil {
		return nil, err
	}
	loan.FinePaid = finePaid
	if err := s.eligibility.UpdateStatus(ctx, loan.ClientID, finePaid); err != nil {
		return nil, err
	}
	return loan, nil
}

// SweepOverdue is re-entrant: the fine is recomputed from zero on every pass
// rather than accumulated, so redundant runs converge on the same value. A
// failure on one loan is logged and the sweep moves on.
func (s *loanService) SweepOverdue(ctx context.Context, today time.Time) (int, error) {
	loans, err := s.loanRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	swept := 0
	for i := range loans {
		loan := &loans[i]
		if loan.Delivered || !loan.ScheduledReturnDate.Before(today) {
			continue
		}

		if err := s.eligibility.Restrict(ctx, loan.ClientID); err != nil {
			logger.Error("Sweep failed to restrict client", "loan_id", loan.ID, "client_id", loan.ClientID, "error", err)
			continue
		}

		unit, err := s.inventory.GetUnit(ctx, loan.ToolUnitID)
		if err != nil {
			logger.Error("Sweep failed to load tool unit", "loan_id", loan.ID, "tool_unit_id", loan.ToolUnitID, "error", err)
			continue
		}

		daysLate := daysBetween(loan.ScheduledReturnDate, today)
		if daysLate < 0 {
			daysLate = 0
		}

		loan.Status = domain.LoanStatusOverdue
		loan.FineCents = daysLate * unit.DailyLateRateCents

		ok, err := s.loanRepo.UpdateOpen(ctx, loan)
		if err != nil {
			logger.Error("Sweep failed to persist loan", "loan_id", loan.ID, "error", err)
			continue
		}
		if !ok {
			// Returned between the listing and this write; nothing to do.
			continue
		}
		swept++
	}

	logger.Info("Overdue sweep completed", "marked_overdue", swept)
	return swept, nil
}

func (s *loanService) ListLoans(ctx context.Context) ([]domain.Loan, error) {
	return s.loanRepo.List(ctx)
}

func (s *loanService) ListActiveLoans(ctx context.Context) ([]domain.Loan, error) {
	return s.loanRepo.ListActive(ctx)
}

func (s *loanService) ListActiveLoansByDate(ctx context.Context, start, end time.Time) ([]domain.Loan, error) {
	return s.loanRepo.ListActiveByDateRange(ctx, start, end)
}

func (s *loanService) ListOverdueLoans(ctx context.Context, today time.Time) ([]domain.Loan, error) {
	return s.loanRepo.ListOverdue(ctx, today)
}

func (s *loanService) ListOverdueLoansByDate(ctx context.Context, today, start, end time.Time) ([]domain.Loan, error) {
	return s.loanRepo.ListOverdueByDateRange(ctx, today, start, end)
}

func (s *loanService) ListUnpaidLoans(ctx context.Context) ([]domain.Loan, error) {
	return s.loanRepo.ListUnpaid(ctx)
}

func (s *loanService) TopRentedTools(ctx context.Context) ([]domain.ToolRanking, error) {
	return s.loanRepo.TopToolsAllTime(ctx)
}

func (s *loanService) TopRentedToolsByDate(ctx context.Context, start, end time.Time) ([]domain.ToolRanking, error) {
	return s.loanRepo.TopToolsByDateRange(ctx, start, end)
}

// reopenLoan restores a loan's pre-return state after a downstream step of
// the return failed.
func (s *loanService) reopenLoan(ctx context.Context, prior *domain.Loan) {
	if err := s.loanRepo.Update(ctx, prior); err != nil {
		logger.Error("Failed to reopen loan after return failure", "loan_id", prior.ID, "error", err)
	}
}

// releaseAcquired undoes a unit acquisition when loan creation fails after the
// unit was already marked LOANED.
func (s *loanService) releaseAcquired(ctx context.Context, unitID int64) {
	if err := s.inventory.ReleaseUnit(ctx, unitID); err != nil {
		logger.Error("Failed to release unit after loan creation failure", "tool_unit_id", unitID, "error", err)
	}
}

func daysBetween(from, to time.Time) int64 {
	return int64(to.Sub(from).Hours() / 24)
}
