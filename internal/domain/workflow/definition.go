package workflow

import (
	"fmt"
	"strings"

	"montage_service/internal/domain/entities"
)

// ProcessStep associates statuses with the documents required to enter them
// and the automation flag that controls checklist-driven advancing.
type ProcessStep struct {
	ID                string            `json:"id" yaml:"id"`
	RelatedStatuses   []entities.Status `json:"related_statuses" yaml:"relatedStatuses"`
	RequiredDocuments []string          `json:"required_documents,omitempty" yaml:"requiredDocuments"`
	AutomationFlagID  string            `json:"automation_flag_id,omitempty" yaml:"automationFlagId"`
}

// Product is a priced catalog entry used for service orders.
type Product struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Price    float64 `yaml:"price"`
	Currency string  `yaml:"currency"`
}

// NotificationTemplate is a message sent to the customer. Subject and Body are
// text/template sources rendered with the notification variables.
type NotificationTemplate struct {
	ID      string `yaml:"id"`
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

// Definition is the raw, decoded workflow configuration. Use New to validate
// it and obtain an immutable Config.
type Definition struct {
	Statuses                     []entities.StatusDefinition  `yaml:"statuses"`
	ProcessSteps                 []ProcessStep                `yaml:"processSteps"`
	ChecklistTemplates           []entities.ChecklistTemplate `yaml:"checklistTemplates"`
	AutomationRules              []entities.AutomationRule    `yaml:"automationRules"`
	Automation                   map[string]bool              `yaml:"automation"`
	ManualEntryStatus            entities.Status              `yaml:"manualEntryStatus"`
	SampleVerificationTemplateID string                       `yaml:"sampleVerificationTemplateId"`
	MeasurementService           Product                      `yaml:"measurementService"`
	StatusNotifications          map[entities.Status]string   `yaml:"statusNotifications"`
	NotificationTemplates        []NotificationTemplate       `yaml:"notificationTemplates"`
	MaxTransitionHops            int                          `yaml:"maxTransitionHops"`
}

const defaultMaxTransitionHops = 8

// Validate checks the definition for references to unknown statuses,
// duplicate ids and statuses claimed by more than one process step.
func (d Definition) Validate() error {
	if len(d.Statuses) == 0 {
		return fmt.Errorf("workflow: status catalog is empty")
	}
	seen := make(map[entities.Status]bool, len(d.Statuses))
	hasCompleted := false
	for i, s := range d.Statuses {
		if strings.TrimSpace(string(s.ID)) == "" {
			return fmt.Errorf("workflow: statuses[%d]: id is required", i)
		}
		if !entities.IsKnownStatus(s.ID) {
			return fmt.Errorf("workflow: statuses[%d]: unknown status %q", i, s.ID)
		}
		if seen[s.ID] {
			return fmt.Errorf("workflow: duplicate status %q", s.ID)
		}
		switch s.Phase {
		case entities.PhaseLead, entities.PhaseJob, entities.PhaseClosed:
		default:
			return fmt.Errorf("workflow: status %q: invalid phase %q", s.ID, s.Phase)
		}
		seen[s.ID] = true
		if s.ID == entities.StatusCompleted {
			hasCompleted = true
		}
	}
	if !hasCompleted {
		return fmt.Errorf("workflow: catalog must contain %q", entities.StatusCompleted)
	}

	claimed := make(map[entities.Status]string)
	stepIDs := make(map[string]bool, len(d.ProcessSteps))
	for _, step := range d.ProcessSteps {
		if step.ID == "" {
			return fmt.Errorf("workflow: process step without id")
		}
		if stepIDs[step.ID] {
			return fmt.Errorf("workflow: duplicate process step %q", step.ID)
		}
		stepIDs[step.ID] = true
		for _, rs := range step.RelatedStatuses {
			if !seen[rs] {
				return fmt.Errorf("workflow: process step %q: status %q not in catalog", step.ID, rs)
			}
			if other, ok := claimed[rs]; ok {
				return fmt.Errorf("workflow: status %q matched by process steps %q and %q", rs, other, step.ID)
			}
			claimed[rs] = step.ID
		}
	}

	tplIDs := make(map[string]bool, len(d.ChecklistTemplates))
	for _, t := range d.ChecklistTemplates {
		if t.ID == "" {
			return fmt.Errorf("workflow: checklist template without id")
		}
		if tplIDs[t.ID] {
			return fmt.Errorf("workflow: duplicate checklist template %q", t.ID)
		}
		tplIDs[t.ID] = true
		if t.AssociatedStage != "" && !seen[t.AssociatedStage] {
			return fmt.Errorf("workflow: checklist template %q: stage %q not in catalog", t.ID, t.AssociatedStage)
		}
	}

	for _, r := range d.AutomationRules {
		if r.ChecklistItemID == "" {
			return fmt.Errorf("workflow: automation rule without checklist item id")
		}
		if !seen[r.TargetStatus] {
			return fmt.Errorf("workflow: automation rule %q: status %q not in catalog", r.ChecklistItemID, r.TargetStatus)
		}
	}

	if d.ManualEntryStatus != "" && !seen[d.ManualEntryStatus] {
		return fmt.Errorf("workflow: manual entry status %q not in catalog", d.ManualEntryStatus)
	}

	tplNames := make(map[string]bool, len(d.NotificationTemplates))
	for _, nt := range d.NotificationTemplates {
		tplNames[nt.ID] = true
	}
	for st, id := range d.StatusNotifications {
		if !seen[st] {
			return fmt.Errorf("workflow: notification for unknown status %q", st)
		}
		if !tplNames[id] {
			return fmt.Errorf("workflow: status %q: notification template %q not defined", st, id)
		}
	}

	if d.MeasurementService.Price < 0 {
		return fmt.Errorf("workflow: measurement service price must not be negative")
	}
	if d.MaxTransitionHops < 0 {
		return fmt.Errorf("workflow: maxTransitionHops must not be negative")
	}
	return nil
}
