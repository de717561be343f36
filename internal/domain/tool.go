package domain

import "time"

type UnitStatus string

const (
	UnitStatusAvailable      UnitStatus = "AVAILABLE"
	UnitStatusLoaned         UnitStatus = "LOANED"
	UnitStatusInRepair       UnitStatus = "IN_REPAIR"
	UnitStatusDecommissioned UnitStatus = "DECOMMISSIONED"
)

// ToolUnit is one physical instance of a tool model. Registering a model with
// quantity N creates N independent units, each individually loanable.
type ToolUnit struct {
	ID                    int64      `json:"id"`
	Name                  string     `json:"name"`
	Category              string     `json:"category"`
	ReplacementValueCents int64      `json:"replacement_value_cents"`
	RepairValueCents      int64      `json:"repair_value_cents"`
	DailyRateCents        int64      `json:"daily_rate_cents"`
	DailyLateRateCents    int64      `json:"daily_late_rate_cents"`
	Status                UnitStatus `json:"status"`
	CreatedOn             time.Time  `json:"created_on"`
}

// UnitPricing carries the monetary fields shared by every unit of a model.
type UnitPricing struct {
	ReplacementValueCents int64 `json:"replacement_value_cents"`
	RepairValueCents      int64 `json:"repair_value_cents"`
	DailyRateCents        int64 `json:"daily_rate_cents"`
	DailyLateRateCents    int64 `json:"daily_late_rate_cents"`
}

// Pricing returns the unit's monetary fields as a snapshot.
func (u *ToolUnit) Pricing() UnitPricing {
	return UnitPricing{
		ReplacementValueCents: u.ReplacementValueCents,
		RepairValueCents:      u.RepairValueCents,
		DailyRateCents:        u.DailyRateCents,
		DailyLateRateCents:    u.DailyLateRateCents,
	}
}

// StockSummary aggregates unit counts per model+category by status.
type StockSummary struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	Available      int32  `json:"available"`
	Loaned         int32  `json:"loaned"`
	InRepair       int32  `json:"in_repair"`
	Decommissioned int32  `json:"decommissioned"`
}
