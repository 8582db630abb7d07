package entities

import "time"

// ActionKind classifies audit log entries.
type ActionKind string

const (
	ActionStatusChange      ActionKind = "status_change"
	ActionStatusRollback    ActionKind = "status_rollback"
	ActionChecklistToggle   ActionKind = "checklist_toggle"
	ActionSettlementCreated ActionKind = "settlement_created"
	ActionSettlementLine    ActionKind = "settlement_line_added"
	ActionCommissionCreated ActionKind = "commission_created"
	ActionLeadConverted     ActionKind = "lead_converted"
	ActionOrderPaid         ActionKind = "order_paid"
	ActionSampleStatus      ActionKind = "sample_status_changed"
	ActionMontageCreated    ActionKind = "montage_created"
)

// AuditEntry is an immutable record of a meaningful action on a montage.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (montage_id-index): montage_id, sort key created_at
type AuditEntry struct {
	ID        string     `json:"id"`
	MontageID string     `json:"montage_id"`
	Action    ActionKind `json:"action"`
	Message   string     `json:"message"`
	ActorID   string     `json:"actor_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
