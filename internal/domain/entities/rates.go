package entities

// UserRates holds the per-user financial rates configured for staff and
// referrers. Nil means "not configured".
//
//   - MeasurementRate: flat fee per measurement, in currency units.
//   - CommissionRate: commission per square metre, in currency units.
type UserRates struct {
	UserID          string   `json:"user_id"`
	MeasurementRate *float64 `json:"measurement_rate,omitempty"`
	CommissionRate  *float64 `json:"commission_rate,omitempty"`
}
