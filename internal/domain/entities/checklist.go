package entities

import "time"

// ChecklistTemplate describes a reusable checklist entry. When AssociatedStage
// is set, items created from it take part in stage completion.
type ChecklistTemplate struct {
	ID              string `json:"id" yaml:"id"`
	Label           string `json:"label" yaml:"label"`
	AllowAttachment bool   `json:"allow_attachment" yaml:"allowAttachment"`
	AssociatedStage Status `json:"associated_stage,omitempty" yaml:"associatedStage"`
}

// ChecklistItem is a per-montage checklist entry.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (montage_id-index): montage_id
type ChecklistItem struct {
	ID           string     `json:"id"`
	MontageID    string     `json:"montage_id"`
	TemplateID   string     `json:"template_id,omitempty"`
	Label        string     `json:"label"`
	Completed    bool       `json:"completed"`
	OrderIndex   int        `json:"order_index"`
	AttachmentID string     `json:"attachment_id,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CompletedBy  string     `json:"completed_by,omitempty"`
}

// AutomationRule binds a checklist item (by item id or template id) to an
// explicit target status, independent of stage grouping.
type AutomationRule struct {
	ChecklistItemID string `json:"checklist_item_id" yaml:"checklistItemId"`
	TargetStatus    Status `json:"target_status" yaml:"targetStatus"`
}
