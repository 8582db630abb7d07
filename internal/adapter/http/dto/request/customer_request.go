package request

import (
	"strings"

	"montage_service/internal/usecase"
)

type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	TaxID string `json:"tax_id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (r CreateCustomerRequest) ToNewCustomer() usecase.NewCustomer {
	return usecase.NewCustomer{
		Name:  strings.TrimSpace(r.Name),
		TaxID: r.TaxID,
		Email: strings.TrimSpace(r.Email),
		Phone: strings.TrimSpace(r.Phone),
	}
}
