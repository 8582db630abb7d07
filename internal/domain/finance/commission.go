package finance

import (
	"time"

	"montage_service/internal/domain/entities"
)

// CommissionBeneficiaries is the order in which commissions are evaluated on
// completion. The types are independent; both may be created.
var CommissionBeneficiaries = []entities.BeneficiaryType{
	entities.BeneficiaryArchitect,
	entities.BeneficiaryPartner,
}

// BeneficiaryID returns the montage's assigned user for the beneficiary type.
func BeneficiaryID(m entities.Montage, t entities.BeneficiaryType) string {
	switch t {
	case entities.BeneficiaryArchitect:
		return m.ArchitectID
	case entities.BeneficiaryPartner:
		return m.PartnerID
	default:
		return ""
	}
}

type CommissionDecision struct {
	Create     bool
	Commission entities.Commission
	Reason     string
}

// ComputeCommission decides whether a commission of type t is owed for a
// completed montage. existing is the stored commission for the montage and
// type, if any.
func ComputeCommission(m entities.Montage, t entities.BeneficiaryType, rates entities.UserRates, existing *entities.Commission, now time.Time) CommissionDecision {
	beneficiary := BeneficiaryID(m, t)
	if beneficiary == "" {
		return CommissionDecision{Reason: "no " + string(t) + " assigned"}
	}
	if existing != nil && existing.ID != "" {
		return CommissionDecision{Reason: string(t) + " commission already exists"}
	}
	if rates.CommissionRate == nil {
		return CommissionDecision{Reason: string(t) + " has no commission rate"}
	}

	amount := CommissionAmount(m.FloorArea, *rates.CommissionRate)
	if amount <= 0 {
		return CommissionDecision{Reason: "commission amount is not positive"}
	}

	return CommissionDecision{
		Create: true,
		Commission: entities.Commission{
			ID:              entities.CommissionID(m.ID, t),
			MontageID:       m.ID,
			BeneficiaryType: t,
			BeneficiaryID:   beneficiary,
			Amount:          amount,
			Rate:            *rates.CommissionRate,
			Area:            m.FloorArea,
			Status:          entities.CommissionStatusPending,
			CreatedAt:       now,
		},
	}
}
