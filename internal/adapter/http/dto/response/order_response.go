package response

import (
	"time"

	"montage_service/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// OrderResponse exposes the amount both in minor units and as a decimal
// string for display.
type OrderResponse struct {
	ID                string     `json:"id"`
	MontageID         string     `json:"montage_id"`
	CustomerID        string     `json:"customer_id"`
	ProductID         string     `json:"product_id"`
	Description       string     `json:"description"`
	Amount            int64      `json:"amount"`
	AmountText        string     `json:"amount_text"`
	Status            string     `json:"status"`
	PaymentLink       string     `json:"payment_link,omitempty"`
	ProviderPaymentID string     `json:"provider_payment_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
}

func FromOrder(o entities.Order) OrderResponse {
	return OrderResponse{
		ID:                o.ID,
		MontageID:         o.MontageID,
		CustomerID:        o.CustomerID,
		ProductID:         o.ProductID,
		Description:       o.Description,
		Amount:            o.Amount,
		AmountText:        decimal.New(o.Amount, -2).StringFixed(2),
		Status:            string(o.Status),
		PaymentLink:       o.PaymentLink,
		ProviderPaymentID: o.ProviderPaymentID,
		CreatedAt:         o.CreatedAt,
		PaidAt:            o.PaidAt,
	}
}

type OrderPaymentResponse struct {
	Order   OrderResponse   `json:"order"`
	Montage MontageResponse `json:"montage"`
}

type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func FromCustomer(c entities.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}
