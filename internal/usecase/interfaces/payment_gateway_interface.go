package interfaces

import (
	"context"

	"montage_service/internal/domain/entities"
)

// IPaymentGateway abstracts external payment providers (e.g. Mercado Pago).
//
// The service uses it to obtain a checkout link for a service order. An order
// is only confirmed once the provider reports an approved payment for it.
type IPaymentGateway interface {
	CreatePaymentLink(ctx context.Context, order entities.Order, payer entities.Customer) (link string, err error)
	// FindApprovedPayment looks up an approved payment whose external
	// reference is orderID. approved is false when the provider has none.
	FindApprovedPayment(ctx context.Context, orderID string) (paymentID string, approved bool, err error)
}
