package interfaces

import (
	"context"
	"time"

	"montage_service/internal/domain/entities"
)

// IOrderRepository abstracts persistence for service orders.
//
// MarkPaid only transitions a pending order and records the provider payment
// that settled it; for an order that is already paid it returns the stored
// order unchanged.

type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	MarkPaid(ctx context.Context, id, providerPaymentID string, at time.Time) (entities.Order, error)
}
