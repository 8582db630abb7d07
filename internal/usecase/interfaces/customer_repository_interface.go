package interfaces

import (
	"context"

	"montage_service/internal/domain/entities"
)

// ICustomerRepository abstracts persistence for customers. Create fails with
// ErrAlreadyExists when another customer holds the same tax id.

type ICustomerRepository interface {
	Create(ctx context.Context, c entities.Customer) (entities.Customer, error)
	GetByID(ctx context.Context, id string) (entities.Customer, error)
}
