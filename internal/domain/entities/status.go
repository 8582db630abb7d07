package entities

// Status is a montage lifecycle stage. Valid values come from the configured
// status catalog; KnownStatuses is the static fallback set every catalog entry
// must belong to.
type Status string

const (
	StatusNewLead               Status = "new_lead"
	StatusLeadContacted         Status = "lead_contacted"
	StatusLeadAwaitingPayment   Status = "lead_awaiting_payment"
	StatusBeforeMeasurement     Status = "before_measurement"
	StatusMeasurementScheduled  Status = "measurement_scheduled"
	StatusMeasurementDone       Status = "measurement_done"
	StatusBeforeFirstPayment    Status = "before_first_payment"
	StatusBeforeInstallation    Status = "before_installation"
	StatusInstallationScheduled Status = "installation_scheduled"
	StatusBeforeFinalInvoice    Status = "before_final_invoice"
	StatusCompleted             Status = "completed"
	StatusCancelled             Status = "cancelled"
)

// KnownStatuses lists every status the service knows how to handle.
var KnownStatuses = []Status{
	StatusNewLead,
	StatusLeadContacted,
	StatusLeadAwaitingPayment,
	StatusBeforeMeasurement,
	StatusMeasurementScheduled,
	StatusMeasurementDone,
	StatusBeforeFirstPayment,
	StatusBeforeInstallation,
	StatusInstallationScheduled,
	StatusBeforeFinalInvoice,
	StatusCompleted,
	StatusCancelled,
}

func IsKnownStatus(s Status) bool {
	for _, k := range KnownStatuses {
		if k == s {
			return true
		}
	}
	return false
}

// Phase groups catalog statuses.
//
//   - lead: sales pipeline before conversion
//   - job: execution pipeline
//   - closed: off-pipeline end states (not part of next/previous ordering)
type Phase string

const (
	PhaseLead   Phase = "lead"
	PhaseJob    Phase = "job"
	PhaseClosed Phase = "closed"
)

// StatusDefinition is one entry of the status catalog.
type StatusDefinition struct {
	ID          Status `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description"`
	Phase       Phase  `json:"phase" yaml:"phase"`
}
