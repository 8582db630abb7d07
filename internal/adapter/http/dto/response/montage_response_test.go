package response

import (
	"errors"
	"testing"
	"time"

	"montage_service/internal/domain/entities"
	"montage_service/internal/usecase"
)

func TestFromMontage(t *testing.T) {
	now := time.Now().UTC()
	m := entities.Montage{
		ID:                  "m-1",
		DisplayCode:         "M/2026/0001",
		Status:              entities.StatusCompleted,
		CompletedAt:         &now,
		FloorArea:           45,
		SampleStatus:        entities.SampleStatusDelivered,
		CustomerAccessToken: "secret",
		CreatedAt:           now,
	}

	res := FromMontage(m)
	if res.ID != "m-1" || res.DisplayCode != "M/2026/0001" || res.Status != "completed" {
		t.Fatalf("unexpected mapped fields: %+v", res)
	}
	if res.CompletedAt == nil || !res.CompletedAt.Equal(now) || res.SampleStatus != "delivered" {
		t.Fatalf("unexpected completion fields: %+v", res)
	}
}

func TestFromToggleResult(t *testing.T) {
	res := FromToggleResult(usecase.ToggleResult{
		Item:    entities.ChecklistItem{ID: "i-1", Label: "Umowa", Completed: true},
		Montage: entities.Montage{ID: "m-1", Status: entities.StatusBeforeMeasurement},
		Transitions: []usecase.TransitionOutcome{
			{Target: entities.StatusMeasurementScheduled, Applied: true},
			{Target: entities.StatusCompleted, Err: errors.New("missing document: handover_protocol")},
		},
	})

	if res.Item.ID != "i-1" || !res.Item.Completed || res.Montage.ID != "m-1" {
		t.Fatalf("unexpected toggle response: %+v", res)
	}
	if len(res.Transitions) != 2 {
		t.Fatalf("expected 2 transitions, got %d", len(res.Transitions))
	}
	if !res.Transitions[0].Applied || res.Transitions[0].Error != "" {
		t.Fatalf("unexpected first transition: %+v", res.Transitions[0])
	}
	if res.Transitions[1].Applied || res.Transitions[1].Error == "" {
		t.Fatalf("unexpected second transition: %+v", res.Transitions[1])
	}
}

func TestFromConversionResult(t *testing.T) {
	order := entities.Order{ID: "o-1", Amount: 19900, Status: entities.OrderStatusPending}
	res := FromConversionResult(usecase.ConversionResult{
		PaymentRequired: true,
		PaymentLink:     "https://pay",
		Montage:         entities.Montage{ID: "m-1", Status: entities.StatusLeadAwaitingPayment},
		Order:           &order,
	})
	if !res.PaymentRequired || res.PaymentLink != "https://pay" || res.Order == nil {
		t.Fatalf("unexpected conversion response: %+v", res)
	}
	if res.Order.AmountText != "199.00" || res.Order.Status != "pending" {
		t.Fatalf("unexpected order: %+v", res.Order)
	}

	free := FromConversionResult(usecase.ConversionResult{Montage: entities.Montage{ID: "m-2"}})
	if free.Order != nil || free.PaymentRequired {
		t.Fatalf("expected no order: %+v", free)
	}
}

func TestFromStatusCatalog(t *testing.T) {
	res := FromStatusCatalog([]entities.StatusDefinition{{ID: entities.StatusNewLead, Label: "Nowy lead", Phase: "lead"}})
	if len(res) != 1 || res[0].ID != "new_lead" || res[0].Label != "Nowy lead" || res[0].Phase != "lead" {
		t.Fatalf("unexpected catalog: %+v", res)
	}
}
