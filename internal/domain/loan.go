package domain

import "time"

type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "ACTIVE"
	LoanStatusOverdue  LoanStatus = "OVERDUE"
	LoanStatusReturned LoanStatus = "RETURNED"
)

// Loan is one rental transaction against a single tool unit. The unit must be
// AVAILABLE at creation and stays LOANED until the loan is returned.
type Loan struct {
	ID                  int64      `json:"id"`
	ClientID            int64      `json:"client_id"`
	ToolUnitID          int64      `json:"tool_unit_id"`
	StartDate           time.Time  `json:"start_date"`
	ScheduledReturnDate time.Time  `json:"scheduled_return_date"`
	ReturnDate          *time.Time `json:"return_date,omitempty"`
	Delivered           bool       `json:"delivered"`
	Status              LoanStatus `json:"status"`
	LoanPriceCents      int64      `json:"loan_price_cents"`
	FineCents           int64      `json:"fine_cents"`
	DamagePriceCents    int64      `json:"damage_price_cents"`
	FineTotalCents      int64      `json:"fine_total_cents"`
	TotalCents          int64      `json:"total_cents"`
	FinePaid            bool       `json:"fine_paid"`
	CreatedOn           time.Time  `json:"created_on"`
}

// ToolRanking is one row of the top-rented report: a tool model and how many
// loans were issued against its units.
type ToolRanking struct {
	Name      string `json:"name"`
	LoanCount int64  `json:"loan_count"`
}
