package entities

import "time"

type CalendarEventKind string

const (
	CalendarMeasurement  CalendarEventKind = "measurement"
	CalendarInstallation CalendarEventKind = "installation"
)

// CalendarEvent is the calendar entry kept in sync with a montage's
// scheduled dates. One event per montage and kind.
type CalendarEvent struct {
	ID        string            `json:"id"`
	MontageID string            `json:"montage_id"`
	Kind      CalendarEventKind `json:"kind"`
	Title     string            `json:"title"`
	StartsAt  time.Time         `json:"starts_at"`
	Assignee  string            `json:"assignee,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// CalendarEventID is the deterministic id of the event of kind k for a montage.
func CalendarEventID(montageID string, k CalendarEventKind) string {
	return montageID + "#" + string(k)
}
