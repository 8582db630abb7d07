package payments

import (
	"context"
	"errors"
	"testing"

	"montage_service/internal/domain/entities"

	"github.com/mercadopago/sdk-go/pkg/payment"
)

func TestNewMercadoPagoGateway_MissingToken(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "")

	if _, err := NewMercadoPagoGateway("", "PLN"); !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
		t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
	}
}

func TestCreatePaymentLink_MockMode(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "true")

	g, err := NewMercadoPagoGateway("", "PLN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	link, err := g.CreatePaymentLink(context.Background(), entities.Order{ID: "o-1", Amount: 19900}, entities.Customer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link != mockCheckoutBaseURL+"o-1" {
		t.Fatalf("unexpected link: %s", link)
	}
}

func TestCreatePaymentLink_NotConfigured(t *testing.T) {
	var g *MercadoPagoGateway
	if _, err := g.CreatePaymentLink(context.Background(), entities.Order{ID: "o-1"}, entities.Customer{}); !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
		t.Fatalf("expected ErrMercadoPagoGatewayNotConfigured, got %v", err)
	}
}

func TestPreferenceRequest(t *testing.T) {
	g := &MercadoPagoGateway{currency: "PLN", notificationURL: "https://api.example.com/v1/orders/webhook"}
	req := g.preferenceRequest(entities.Order{
		ID:          "o-1",
		ProductID:   "measurement",
		Description: "Usługa pomiaru M/2026/0001",
		Amount:      19999,
	}, entities.Customer{Name: "Jan", Email: "jan@example.com"})

	if req.ExternalReference != "o-1" {
		t.Fatalf("unexpected external reference: %s", req.ExternalReference)
	}
	if len(req.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(req.Items))
	}
	it := req.Items[0]
	if it.UnitPrice != 199.99 || it.Quantity != 1 || it.CurrencyID != "PLN" || it.ID != "measurement" {
		t.Fatalf("unexpected item: %+v", it)
	}
	if req.Payer == nil || req.Payer.Email != "jan@example.com" {
		t.Fatalf("unexpected payer: %+v", req.Payer)
	}

	noPayer := g.preferenceRequest(entities.Order{ID: "o-2", Amount: 100}, entities.Customer{})
	if noPayer.Payer != nil {
		t.Fatalf("expected no payer when customer has no contact")
	}
}

type fakePaymentSearcher struct {
	resp *payment.SearchResponse
	err  error
	req  payment.SearchRequest
}

func (f *fakePaymentSearcher) Search(_ context.Context, req payment.SearchRequest) (*payment.SearchResponse, error) {
	f.req = req
	return f.resp, f.err
}

func TestFindApprovedPayment(t *testing.T) {
	t.Run("approved payment for the order", func(t *testing.T) {
		fake := &fakePaymentSearcher{resp: &payment.SearchResponse{Results: []payment.Response{
			{ID: 11, Status: "rejected", ExternalReference: "o-1"},
			{ID: 12, Status: "approved", ExternalReference: "o-1"},
		}}}
		g := &MercadoPagoGateway{payments: fake}
		id, ok, err := g.FindApprovedPayment(context.Background(), "o-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok || id != "12" {
			t.Fatalf("expected approved payment 12, got id=%q ok=%t", id, ok)
		}
		if fake.req.Filters["external_reference"] != "o-1" {
			t.Fatalf("unexpected search filters: %+v", fake.req.Filters)
		}
	})

	t.Run("pending or foreign payments do not count", func(t *testing.T) {
		fake := &fakePaymentSearcher{resp: &payment.SearchResponse{Results: []payment.Response{
			{ID: 21, Status: "pending", ExternalReference: "o-1"},
			{ID: 22, Status: "approved", ExternalReference: "o-2"},
		}}}
		g := &MercadoPagoGateway{payments: fake}
		_, ok, err := g.FindApprovedPayment(context.Background(), "o-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Fatalf("expected no approved payment")
		}
	})

	t.Run("search failure", func(t *testing.T) {
		g := &MercadoPagoGateway{payments: &fakePaymentSearcher{err: errors.New("timeout")}}
		if _, _, err := g.FindApprovedPayment(context.Background(), "o-1"); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("not configured", func(t *testing.T) {
		var g *MercadoPagoGateway
		if _, _, err := g.FindApprovedPayment(context.Background(), "o-1"); !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
			t.Fatalf("expected ErrMercadoPagoGatewayNotConfigured, got %v", err)
		}
	})

	t.Run("mock mode approves", func(t *testing.T) {
		t.Setenv("PAYMENT_GATEWAY_MOCK", "true")
		g, err := NewMercadoPagoGateway("", "PLN")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		id, ok, err := g.FindApprovedPayment(context.Background(), "o-1")
		if err != nil || !ok || id != "mock-o-1" {
			t.Fatalf("unexpected result id=%q ok=%t err=%v", id, ok, err)
		}
	})
}
