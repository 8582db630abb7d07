package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"montage_service/internal/domain/entities"
	"montage_service/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
var ErrEmptyCheckoutLink = errors.New("mercado pago returned no checkout link")

const (
	mockCheckoutBaseURL   = "https://mock.mercadopago.local/checkout/"
	paymentStatusApproved = "approved"
	paymentSearchLimit    = 30
)

// paymentSearcher is the part of payment.Client used to verify orders.
type paymentSearcher interface {
	Search(ctx context.Context, request payment.SearchRequest) (*payment.SearchResponse, error)
}

// MercadoPagoGateway creates checkout preferences for service orders. The
// order id travels as the external reference so the payment notification can
// be matched back to the order.
type MercadoPagoGateway struct {
	client          preference.Client
	payments        paymentSearcher
	currency        string
	notificationURL string
	mockMode        bool
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken, currency string) (*MercadoPagoGateway, error) {
	if isPaymentGatewayMockEnabled() {
		log.Printf("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{currency: currency, mockMode: true}, nil
	}

	if accessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		client:          preference.NewClient(cfg),
		payments:        payment.NewClient(cfg),
		currency:        currency,
		notificationURL: os.Getenv("MERCADOPAGO_NOTIFICATION_URL"),
	}, nil
}

func (g *MercadoPagoGateway) CreatePaymentLink(ctx context.Context, order entities.Order, payer entities.Customer) (string, error) {
	if g != nil && g.mockMode {
		link := mockCheckoutBaseURL + order.ID
		log.Printf("[payment][gateway] mock preference order_id=%s amount=%d link=%s", order.ID, order.Amount, link)
		return link, nil
	}

	if g == nil || g.client == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return "", ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] preference start order_id=%s amount=%d", order.ID, order.Amount)

	resp, err := g.client.Create(ctx, g.preferenceRequest(order, payer))
	if err != nil {
		log.Printf("[payment][gateway] sdk create failed order_id=%s err=%v", order.ID, err)
		return "", err
	}
	if resp == nil || resp.InitPoint == "" {
		return "", ErrEmptyCheckoutLink
	}
	log.Printf("[payment][gateway] preference created order_id=%s preference_id=%s", order.ID, resp.ID)
	return resp.InitPoint, nil
}

// FindApprovedPayment searches the provider for an approved payment carrying
// orderID as its external reference.
func (g *MercadoPagoGateway) FindApprovedPayment(ctx context.Context, orderID string) (string, bool, error) {
	if g != nil && g.mockMode {
		id := "mock-" + orderID
		log.Printf("[payment][gateway] mock payment lookup order_id=%s provider_payment_id=%s provider_status=approved", orderID, id)
		return id, true, nil
	}

	if g == nil || g.payments == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return "", false, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] payment lookup start order_id=%s", orderID)

	resp, err := g.payments.Search(ctx, payment.SearchRequest{
		Limit:   paymentSearchLimit,
		Filters: map[string]string{"external_reference": orderID},
	})
	if err != nil {
		log.Printf("[payment][gateway] sdk search failed order_id=%s err=%v", orderID, err)
		return "", false, err
	}
	if resp == nil {
		return "", false, nil
	}
	for _, p := range resp.Results {
		if p.ExternalReference == orderID && p.Status == paymentStatusApproved {
			log.Printf("[payment][gateway] approved payment found order_id=%s provider_payment_id=%d", orderID, p.ID)
			return fmt.Sprintf("%d", p.ID), true, nil
		}
	}
	log.Printf("[payment][gateway] no approved payment order_id=%s results=%d", orderID, len(resp.Results))
	return "", false, nil
}

func (g *MercadoPagoGateway) preferenceRequest(order entities.Order, payer entities.Customer) preference.Request {
	req := preference.Request{
		ExternalReference: order.ID,
		NotificationURL:   g.notificationURL,
		Items: []preference.ItemRequest{{
			ID:         order.ProductID,
			Title:      order.Description,
			Quantity:   1,
			UnitPrice:  majorUnits(order.Amount),
			CurrencyID: g.currency,
		}},
	}
	if payer.Email != "" || payer.Name != "" {
		req.Payer = &preference.PayerRequest{Name: payer.Name, Email: payer.Email}
	}
	return req
}

// majorUnits converts a minor-unit amount into the decimal price the provider
// expects.
func majorUnits(minor int64) float64 {
	return decimal.New(minor, -2).InexactFloat64()
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
