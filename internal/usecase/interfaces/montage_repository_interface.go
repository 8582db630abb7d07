package interfaces

import (
	"context"
	"time"

	"montage_service/internal/domain/entities"
)

// IMontageRepository abstracts DynamoDB persistence for Montage.
//
// Lookups return a zero Montage (empty ID) when the record does not exist.
// UpdateStatus is a compare-and-swap on the previous status and returns
// ErrStatusConflict when another writer changed it first.

type IMontageRepository interface {
	Create(ctx context.Context, m entities.Montage) (entities.Montage, error)
	GetByID(ctx context.Context, id string) (entities.Montage, error)
	UpdateStatus(ctx context.Context, id string, from, to entities.Status, completedAt *time.Time) (entities.Montage, error)
	AssignMeasurer(ctx context.Context, id, measurerID string) (entities.Montage, error)
	LinkOrder(ctx context.Context, id, orderID, accessToken string) (entities.Montage, error)
	UpdateSampleStatus(ctx context.Context, id string, status entities.SampleStatus) (entities.Montage, error)
	NextDisplaySequence(ctx context.Context, year int) (int64, error)
}
