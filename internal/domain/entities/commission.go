package entities

import "time"

// BeneficiaryType identifies who receives a commission.
type BeneficiaryType string

const (
	BeneficiaryArchitect BeneficiaryType = "architect"
	BeneficiaryPartner   BeneficiaryType = "partner"
)

type CommissionStatus string

const (
	CommissionStatusPending CommissionStatus = "pending"
	CommissionStatusPaid    CommissionStatus = "paid"
)

// Commission is a referral payment owed to an architect or partner when a
// montage is completed.
//
// Storage model (DynamoDB):
//   - PK: id = "<montage_id>#<beneficiary_type>" (one per montage and type)
//
// Monetary representation:
//   - Amount is in minor currency units: round(Area * Rate * 100).
type Commission struct {
	ID              string           `json:"id"`
	MontageID       string           `json:"montage_id"`
	BeneficiaryType BeneficiaryType  `json:"beneficiary_type"`
	BeneficiaryID   string           `json:"beneficiary_id"`
	Amount          int64            `json:"amount"`
	Rate            float64          `json:"rate"`
	Area            float64          `json:"area"`
	Status          CommissionStatus `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
}

// CommissionID returns the storage key of the commission for a montage and
// beneficiary type.
func CommissionID(montageID string, t BeneficiaryType) string {
	return montageID + "#" + string(t)
}
