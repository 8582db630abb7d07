package entities

import "time"

// OrderStatus represents the payment state of a service order.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
)

// Order is the financial order created when a lead must pay for the
// measurement service before entering the execution pipeline.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Monetary representation:
//   - Amount is in minor currency units, taken from the configured product.
//
// PaymentLink is the provider checkout URL handed to the customer together
// with the montage access token. ProviderPaymentID is the approved provider
// payment that settled the order.
type Order struct {
	ID                string      `json:"id"`
	MontageID         string      `json:"montage_id"`
	CustomerID        string      `json:"customer_id"`
	ProductID         string      `json:"product_id"`
	Description       string      `json:"description"`
	Amount            int64       `json:"amount"`
	Status            OrderStatus `json:"status"`
	PaymentLink       string      `json:"payment_link,omitempty"`
	ProviderPaymentID string      `json:"provider_payment_id,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	PaidAt            *time.Time  `json:"paid_at,omitempty"`
}
