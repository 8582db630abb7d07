package entities

import "time"

// SampleStatus tracks the material sample sent to the customer.
type SampleStatus string

const (
	SampleStatusNone      SampleStatus = "none"
	SampleStatusSent      SampleStatus = "sent"
	SampleStatusDelivered SampleStatus = "delivered"
)

// Montage is one installation engagement and the aggregate root of the
// lifecycle state machine.
//
// Ownership:
//   - Status and CompletedAt are written only by the transition use case.
//   - CompletedAt is set if and only if Status is StatusCompleted.
//
// Storage model (DynamoDB):
//   - PK: id
type Montage struct {
	ID                  string       `json:"id"`
	DisplayCode         string       `json:"display_code"`
	CustomerID          string       `json:"customer_id,omitempty"`
	Status              Status       `json:"status"`
	CompletedAt         *time.Time   `json:"completed_at,omitempty"`
	InstallerID         string       `json:"installer_id,omitempty"`
	MeasurerID          string       `json:"measurer_id,omitempty"`
	ArchitectID         string       `json:"architect_id,omitempty"`
	PartnerID           string       `json:"partner_id,omitempty"`
	FloorArea           float64      `json:"floor_area"`
	IsHousingVat        bool         `json:"is_housing_vat"`
	MaterialDetails     string       `json:"material_details,omitempty"`
	SampleStatus        SampleStatus `json:"sample_status"`
	MeasurementDate     *time.Time   `json:"measurement_date,omitempty"`
	InstallationDate    *time.Time   `json:"installation_date,omitempty"`
	OrderID             string       `json:"order_id,omitempty"`
	CustomerAccessToken string       `json:"-"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// HasPersonnel reports whether an installer or a measurer is assigned.
func (m Montage) HasPersonnel() bool {
	return m.InstallerID != "" || m.MeasurerID != ""
}
