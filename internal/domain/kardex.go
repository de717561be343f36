package domain

import "time"

type MovementType string

const (
	MovementTypeIntake       MovementType = "INTAKE"
	MovementTypeLoan         MovementType = "LOAN"
	MovementTypeReturn       MovementType = "RETURN"
	MovementTypeRepair       MovementType = "REPAIR"
	MovementTypeDecommission MovementType = "DECOMMISSION"
)

// KardexEntry is one immutable record in the movement ledger. Entries are
// written exactly once per state-changing operation and never updated.
type KardexEntry struct {
	ID         int64        `json:"id"`
	Type       MovementType `json:"type"`
	Quantity   int32        `json:"quantity"`
	ToolUnitID int64        `json:"tool_unit_id"`
	LoanID     *int64       `json:"loan_id,omitempty"`
	ActorRut   string       `json:"actor_rut"`
	RecordedAt time.Time    `json:"recorded_at"`
}
