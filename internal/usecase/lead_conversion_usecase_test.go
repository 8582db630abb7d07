package usecase

import (
	"context"
	"errors"
	"testing"

	"montage_service/internal/domain/entities"
)

func TestLeadConversionUseCase_Validation(t *testing.T) {
	h := newHarness(t, entities.Montage{ID: "m-1", Status: entities.StatusBeforeMeasurement})

	if _, err := h.leads.AssignMeasurerAndAdvance(context.Background(), "m-1", " ", false); !errors.Is(err, ErrInvalidMeasurerID) {
		t.Fatalf("expected ErrInvalidMeasurerID, got %v", err)
	}
	if _, err := h.leads.AssignMeasurerAndAdvance(context.Background(), "missing", "u-1", false); !errors.Is(err, ErrMontageNotFound) {
		t.Fatalf("expected ErrMontageNotFound, got %v", err)
	}
	if _, err := h.leads.AssignMeasurerAndAdvance(context.Background(), "m-1", "u-1", false); !errors.Is(err, ErrNotALead) {
		t.Fatalf("expected ErrNotALead, got %v", err)
	}
}

func TestLeadConversionUseCase_WithoutPayment(t *testing.T) {
	h := newHarness(t, entities.Montage{ID: "m-1", Status: entities.StatusLeadContacted})

	res, err := h.leads.AssignMeasurerAndAdvance(context.Background(), "m-1", "u-1", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PaymentRequired || res.PaymentLink != "" || res.Order != nil {
		t.Fatalf("unexpected payment data %+v", res)
	}
	stored := h.montages.get("m-1")
	if stored.Status != entities.StatusBeforeMeasurement || stored.MeasurerID != "u-1" {
		t.Fatalf("unexpected montage %+v", stored)
	}
	if h.gateway.calls != 0 || h.orders.count() != 0 {
		t.Fatalf("expected no order activity")
	}
	actions := h.audit.actions()
	if len(actions) != 2 || actions[1] != entities.ActionLeadConverted {
		t.Fatalf("unexpected audit actions %v", actions)
	}
}

func TestLeadConversionUseCase_WithPayment(t *testing.T) {
	t.Run("no customer creates no order", func(t *testing.T) {
		h := newHarness(t, entities.Montage{ID: "m-1", Status: entities.StatusNewLead})
		_, err := h.leads.AssignMeasurerAndAdvance(context.Background(), "m-1", "u-1", true)
		if !errors.Is(err, ErrNoCustomerForPayment) {
			t.Fatalf("expected ErrNoCustomerForPayment, got %v", err)
		}
		if h.orders.count() != 0 || h.gateway.calls != 0 {
			t.Fatalf("expected no order and no gateway call")
		}
		if got := h.montages.get("m-1"); got.Status != entities.StatusNewLead || got.MeasurerID != "" {
			t.Fatalf("montage changed: %+v", got)
		}
	})

	t.Run("unknown customer creates no order", func(t *testing.T) {
		h := newHarness(t, entities.Montage{ID: "m-1", CustomerID: "c-404", Status: entities.StatusNewLead})
		_, err := h.leads.AssignMeasurerAndAdvance(context.Background(), "m-1", "u-1", true)
		if !errors.Is(err, ErrNoCustomerForPayment) {
			t.Fatalf("expected ErrNoCustomerForPayment, got %v", err)
		}
		if h.orders.count() != 0 {
			t.Fatalf("expected no order")
		}
	})

	t.Run("creates the order and waits for payment", func(t *testing.T) {
		h := newHarness(t, entities.Montage{ID: "m-1", DisplayCode: "M/2026/0003", CustomerID: "c-1", Status: entities.StatusNewLead})
		h.customers.m["c-1"] = entities.Customer{ID: "c-1", Name: "Anna Nowak", Email: "anna@example.com"}

		res, err := h.leads.AssignMeasurerAndAdvance(context.Background(), "m-1", "u-1", true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.PaymentRequired || res.PaymentLink != "https://pay.example/checkout/1" {
			t.Fatalf("unexpected result %+v", res)
		}
		if res.Order == nil || res.Order.Amount != 19900 || res.Order.ProductID != "measurement_service" || res.Order.Status != entities.OrderStatusPending {
			t.Fatalf("unexpected order %+v", res.Order)
		}
		stored := h.montages.get("m-1")
		if stored.Status != entities.StatusLeadAwaitingPayment || stored.OrderID != res.Order.ID || stored.MeasurerID != "u-1" {
			t.Fatalf("unexpected montage %+v", stored)
		}
		if stored.CustomerAccessToken != "token-m-1-c-1" {
			t.Fatalf("expected access token to be issued, got %q", stored.CustomerAccessToken)
		}

		again, err := h.leads.AssignMeasurerAndAdvance(context.Background(), "m-1", "u-1", true)
		if err != nil {
			t.Fatalf("unexpected error on retry: %v", err)
		}
		if again.Order == nil || again.Order.ID != res.Order.ID || h.orders.count() != 1 || h.gateway.calls != 1 {
			t.Fatalf("expected the pending order to be reused")
		}
	})

	t.Run("existing access token is kept", func(t *testing.T) {
		h := newHarness(t, entities.Montage{ID: "m-1", CustomerID: "c-1", Status: entities.StatusLeadContacted, CustomerAccessToken: "existing"})
		h.customers.m["c-1"] = entities.Customer{ID: "c-1", Name: "Anna Nowak"}
		if _, err := h.leads.AssignMeasurerAndAdvance(context.Background(), "m-1", "u-1", true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := h.montages.get("m-1").CustomerAccessToken; got != "existing" {
			t.Fatalf("expected token to be kept, got %q", got)
		}
	})

	t.Run("gateway failure creates no order", func(t *testing.T) {
		h := newHarness(t, entities.Montage{ID: "m-1", CustomerID: "c-1", Status: entities.StatusNewLead})
		h.customers.m["c-1"] = entities.Customer{ID: "c-1", Name: "Anna Nowak"}
		h.gateway.err = errors.New("gateway down")
		if _, err := h.leads.AssignMeasurerAndAdvance(context.Background(), "m-1", "u-1", true); err == nil {
			t.Fatalf("expected an error")
		}
		got := h.montages.get("m-1")
		if h.orders.count() != 0 || got.Status != entities.StatusNewLead || got.MeasurerID != "" {
			t.Fatalf("expected no order and an untouched montage, got %+v", got)
		}
	})
}

func TestOrderPaymentUseCase_ConfirmOrderPayment(t *testing.T) {
	h := newHarness(t, entities.Montage{ID: "m-1", CustomerID: "c-1", Status: entities.StatusNewLead})
	h.customers.m["c-1"] = entities.Customer{ID: "c-1", Name: "Anna Nowak"}
	res, err := h.leads.AssignMeasurerAndAdvance(context.Background(), "m-1", "u-1", true)
	if err != nil {
		t.Fatalf("conversion: %v", err)
	}

	if _, _, err := h.payments.ConfirmOrderPayment(context.Background(), "missing"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	if _, _, err := h.payments.ConfirmOrderPayment(context.Background(), res.Order.ID); !errors.Is(err, ErrPaymentNotApproved) {
		t.Fatalf("expected ErrPaymentNotApproved without a provider payment, got %v", err)
	}
	if o, _ := h.orders.GetByID(context.Background(), res.Order.ID); o.Status != entities.OrderStatusPending {
		t.Fatalf("unverified confirmation changed the order: %+v", o)
	}
	if got := h.montages.get("m-1").Status; got != entities.StatusLeadAwaitingPayment {
		t.Fatalf("unverified confirmation moved the montage to %s", got)
	}

	h.gateway.approved = map[string]string{res.Order.ID: "mp-123"}
	order, m, err := h.payments.ConfirmOrderPayment(context.Background(), res.Order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != entities.OrderStatusPaid || order.PaidAt == nil || order.ProviderPaymentID != "mp-123" {
		t.Fatalf("unexpected order %+v", order)
	}
	if m.Status != entities.StatusBeforeMeasurement {
		t.Fatalf("expected before_measurement, got %s", m.Status)
	}

	order, m, err = h.payments.ConfirmOrderPayment(context.Background(), res.Order.ID)
	if err != nil {
		t.Fatalf("unexpected error on repeat: %v", err)
	}
	if order.Status != entities.OrderStatusPaid || m.Status != entities.StatusBeforeMeasurement {
		t.Fatalf("expected repeat confirmation to be a no-op, got order=%+v status=%s", order, m.Status)
	}
	if h.gateway.lookups != 2 {
		t.Fatalf("expected paid orders to skip the provider lookup, got %d lookups", h.gateway.lookups)
	}
	paid := 0
	for _, a := range h.audit.actions() {
		if a == entities.ActionOrderPaid {
			paid++
		}
	}
	if paid != 1 {
		t.Fatalf("expected one order_paid audit entry, got %d", paid)
	}
}
