package entities

import "time"

// SettlementStatus represents the lifecycle of a labor settlement.
type SettlementStatus string

const (
	SettlementStatusDraft    SettlementStatus = "draft"
	SettlementStatusApproved SettlementStatus = "approved"
	SettlementStatusPaid     SettlementStatus = "paid"
)

// RuleKind identifies the rule that produced a settlement line item. A
// settlement holds at most one line item per kind.
type RuleKind string

const (
	RuleMeasurementFee    RuleKind = "measurement_fee"
	RuleInstallationLabor RuleKind = "installation_labor"
	RuleMaterialReturn    RuleKind = "material_return"
)

// LineItem is one calculated entry of a settlement. Amount is in minor
// currency units.
type LineItem struct {
	Kind        RuleKind  `json:"kind"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Settlement is the labor-payment record owed for a montage.
//
// Storage model (DynamoDB):
//   - PK: montage_id (one settlement per montage)
//   - rule_kinds: string set mirroring Calculations, used as the idempotence guard
type Settlement struct {
	ID           string           `json:"id"`
	MontageID    string           `json:"montage_id"`
	InstallerID  string           `json:"installer_id,omitempty"`
	Status       SettlementStatus `json:"status"`
	TotalAmount  int64            `json:"total_amount"`
	Calculations []LineItem       `json:"calculations"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// HasRule reports whether a line item of the given kind is already present.
func (s Settlement) HasRule(kind RuleKind) bool {
	for _, c := range s.Calculations {
		if c.Kind == kind {
			return true
		}
	}
	return false
}
