package jobs

import (
	"context"
	"time"

	"toolrent-backend/internal/logger"
)

// SweepOverdueLoans reclassifies open loans past their scheduled return date,
// restricts the affected clients and recomputes their fines. The sweep is
// idempotent, so it is also run once at process start for recovery.
func (jr *JobRunner) SweepOverdueLoans() {
	jr.runWithRecovery("SweepOverdueLoans", func() {
		ctx := context.Background()

		swept, err := jr.services.Loan.SweepOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to sweep overdue loans", "error", err)
			return
		}

		logger.Info("Marked loans as overdue", "count", swept)
	})
}
