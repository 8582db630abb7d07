package interfaces

import (
	"context"
	"time"

	"montage_service/internal/domain/entities"
)

// IChecklistRepository abstracts persistence for montage checklist items.

type IChecklistRepository interface {
	CreateBatch(ctx context.Context, items []entities.ChecklistItem) error
	GetByID(ctx context.Context, id string) (entities.ChecklistItem, error)
	ListByMontageID(ctx context.Context, montageID string) ([]entities.ChecklistItem, error)
	SetCompleted(ctx context.Context, id string, completed bool, actorID string, at time.Time) (entities.ChecklistItem, error)
}
