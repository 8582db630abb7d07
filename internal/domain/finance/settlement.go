package finance

import (
	"time"

	"montage_service/internal/domain/entities"
)

// SettlementAction is what the caller must persist for a settlement rule.
type SettlementAction int

const (
	SettlementNoop SettlementAction = iota
	SettlementAppend
	SettlementCreate
)

func (a SettlementAction) String() string {
	switch a {
	case SettlementAppend:
		return "append"
	case SettlementCreate:
		return "create"
	default:
		return "noop"
	}
}

// SettlementDecision is the outcome of a settlement rule. For SettlementCreate
// Settlement is the new draft (without ID); for SettlementAppend it is the
// existing settlement with Item appended.
type SettlementDecision struct {
	Action     SettlementAction
	Item       entities.LineItem
	Settlement entities.Settlement
	Reason     string
}

// PlanMeasurementFee applies the "measurement fee" rule for a montage that
// entered measurement_done. existing is the montage's settlement, if any.
func PlanMeasurementFee(m entities.Montage, rates entities.UserRates, existing *entities.Settlement, now time.Time) SettlementDecision {
	if m.MeasurerID == "" {
		return SettlementDecision{Reason: "no measurer assigned"}
	}
	if rates.MeasurementRate == nil || *rates.MeasurementRate == 0 {
		return SettlementDecision{Reason: "measurer has no measurement rate"}
	}
	amount := ToMinorUnits(*rates.MeasurementRate)
	if amount <= 0 {
		return SettlementDecision{Reason: "measurement rate is not positive"}
	}

	item := entities.LineItem{
		Kind:        entities.RuleMeasurementFee,
		Amount:      amount,
		Description: "Pomiar " + m.DisplayCode,
		UserID:      m.MeasurerID,
		CreatedAt:   now,
	}

	if existing != nil && existing.MontageID != "" {
		if existing.HasRule(entities.RuleMeasurementFee) {
			return SettlementDecision{Reason: "measurement fee already settled"}
		}
		if existing.Status != entities.SettlementStatusDraft {
			return SettlementDecision{Reason: "settlement is " + string(existing.Status)}
		}
		updated := *existing
		updated.Calculations = append(append([]entities.LineItem(nil), existing.Calculations...), item)
		updated.TotalAmount = existing.TotalAmount + amount
		updated.UpdatedAt = now
		return SettlementDecision{Action: SettlementAppend, Item: item, Settlement: updated}
	}

	return SettlementDecision{
		Action: SettlementCreate,
		Item:   item,
		Settlement: entities.Settlement{
			MontageID:    m.ID,
			InstallerID:  m.InstallerID,
			Status:       entities.SettlementStatusDraft,
			TotalAmount:  amount,
			Calculations: []entities.LineItem{item},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}
