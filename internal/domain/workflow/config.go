package workflow

import (
	"montage_service/internal/domain/entities"
)

// Config is the validated, read-only workflow configuration: the status
// catalog, the process step map, checklist templates and automation settings.
// A Config is built once and shared; none of its methods mutate it.
type Config struct {
	def       Definition
	index     map[entities.Status]int
	steps     map[entities.Status]ProcessStep
	templates map[string]entities.ChecklistTemplate
	notifTpls map[string]NotificationTemplate
}

// New validates the definition and builds the lookup indexes.
func New(def Definition) (*Config, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if def.MaxTransitionHops == 0 {
		def.MaxTransitionHops = defaultMaxTransitionHops
	}
	if def.ManualEntryStatus == "" {
		def.ManualEntryStatus = entities.StatusNewLead
	}
	def.Automation = copyMap(def.Automation)
	def.StatusNotifications = copyMap(def.StatusNotifications)

	c := &Config{
		def:       def,
		index:     make(map[entities.Status]int, len(def.Statuses)),
		steps:     make(map[entities.Status]ProcessStep),
		templates: make(map[string]entities.ChecklistTemplate, len(def.ChecklistTemplates)),
		notifTpls: make(map[string]NotificationTemplate, len(def.NotificationTemplates)),
	}
	for i, s := range def.Statuses {
		c.index[s.ID] = i
	}
	for _, step := range def.ProcessSteps {
		for _, rs := range step.RelatedStatuses {
			c.steps[rs] = step
		}
	}
	for _, t := range def.ChecklistTemplates {
		c.templates[t.ID] = t
	}
	for _, nt := range def.NotificationTemplates {
		c.notifTpls[nt.ID] = nt
	}
	return c, nil
}

// Statuses returns a copy of the catalog in canonical order.
func (c *Config) Statuses() []entities.StatusDefinition {
	out := make([]entities.StatusDefinition, len(c.def.Statuses))
	copy(out, c.def.Statuses)
	return out
}

// Contains reports whether s is a member of both the configured catalog and
// the static set of known statuses.
func (c *Config) Contains(s entities.Status) bool {
	_, ok := c.index[s]
	return ok && entities.IsKnownStatus(s)
}

func (c *Config) StatusDef(s entities.Status) (entities.StatusDefinition, bool) {
	i, ok := c.index[s]
	if !ok {
		return entities.StatusDefinition{}, false
	}
	return c.def.Statuses[i], true
}

// Label returns the configured label, falling back to the raw id.
func (c *Config) Label(s entities.Status) string {
	if d, ok := c.StatusDef(s); ok && d.Label != "" {
		return d.Label
	}
	return string(s)
}

// Index returns the catalog position of s, or -1.
func (c *Config) Index(s entities.Status) int {
	if i, ok := c.index[s]; ok {
		return i
	}
	return -1
}

// InProgression reports whether s takes part in the ordered lead/job
// pipeline (closed statuses do not).
func (c *Config) InProgression(s entities.Status) bool {
	d, ok := c.StatusDef(s)
	return ok && d.Phase != entities.PhaseClosed
}

func (c *Config) IsLead(s entities.Status) bool {
	d, ok := c.StatusDef(s)
	return ok && d.Phase == entities.PhaseLead
}

// Next returns the status following s in catalog order, skipping closed
// statuses. It returns false for the last status and for closed statuses.
func (c *Config) Next(s entities.Status) (entities.Status, bool) {
	i, ok := c.index[s]
	if !ok || !c.InProgression(s) {
		return "", false
	}
	for _, d := range c.def.Statuses[i+1:] {
		if d.Phase != entities.PhaseClosed {
			return d.ID, true
		}
	}
	return "", false
}

// StepFor returns the process step whose related statuses include s.
func (c *Config) StepFor(s entities.Status) (ProcessStep, bool) {
	step, ok := c.steps[s]
	return step, ok
}

// RequiredDocuments returns the document types that gate entry into s.
func (c *Config) RequiredDocuments(s entities.Status) []string {
	step, ok := c.steps[s]
	if !ok {
		return nil
	}
	return step.RequiredDocuments
}

// AutomationEnabled reports whether completing the checklist of stage s may
// advance the montage automatically. Stages without a process step, or whose
// flag is not configured, are enabled.
func (c *Config) AutomationEnabled(s entities.Status) bool {
	step, ok := c.steps[s]
	if !ok || step.AutomationFlagID == "" {
		return true
	}
	enabled, ok := c.def.Automation[step.AutomationFlagID]
	if !ok {
		return true
	}
	return enabled
}

func (c *Config) ManualEntryStatus() entities.Status {
	return c.def.ManualEntryStatus
}

func (c *Config) Template(id string) (entities.ChecklistTemplate, bool) {
	t, ok := c.templates[id]
	return t, ok
}

// Templates returns the checklist templates in configuration order.
func (c *Config) Templates() []entities.ChecklistTemplate {
	out := make([]entities.ChecklistTemplate, len(c.def.ChecklistTemplates))
	copy(out, c.def.ChecklistTemplates)
	return out
}

// StageOf resolves the stage an item is bound to through its template.
func (c *Config) StageOf(item entities.ChecklistItem) (entities.Status, bool) {
	if item.TemplateID == "" {
		return "", false
	}
	t, ok := c.templates[item.TemplateID]
	if !ok || t.AssociatedStage == "" {
		return "", false
	}
	return t.AssociatedStage, true
}

// RulesFor returns the automation rules bound to the item id or its template id.
func (c *Config) RulesFor(item entities.ChecklistItem) []entities.AutomationRule {
	var out []entities.AutomationRule
	for _, r := range c.def.AutomationRules {
		if r.ChecklistItemID == item.ID || (item.TemplateID != "" && r.ChecklistItemID == item.TemplateID) {
			out = append(out, r)
		}
	}
	return out
}

func (c *Config) SampleVerificationTemplateID() string {
	return c.def.SampleVerificationTemplateID
}

func (c *Config) MeasurementService() Product {
	return c.def.MeasurementService
}

// NotificationFor returns the customer notification configured for entering s.
func (c *Config) NotificationFor(s entities.Status) (NotificationTemplate, bool) {
	id, ok := c.def.StatusNotifications[s]
	if !ok {
		return NotificationTemplate{}, false
	}
	t, ok := c.notifTpls[id]
	return t, ok
}

// NotificationTemplate returns the notification template with the given id.
func (c *Config) NotificationTemplate(id string) (NotificationTemplate, bool) {
	t, ok := c.notifTpls[id]
	return t, ok
}

func (c *Config) MaxTransitionHops() int {
	return c.def.MaxTransitionHops
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
