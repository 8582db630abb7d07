package interfaces

import (
	"context"

	"montage_service/internal/domain/entities"
)

// ISettlementRepository abstracts persistence for settlements.
//
// The storage enforces the idempotence rules:
//   - Create fails with ErrAlreadyExists when the montage already has a settlement.
//   - AppendLineItem only applies to an existing draft settlement that has no
//     line item of the same kind; otherwise it reports applied=false.

type ISettlementRepository interface {
	GetByMontageID(ctx context.Context, montageID string) (entities.Settlement, error)
	Create(ctx context.Context, s entities.Settlement) (entities.Settlement, error)
	AppendLineItem(ctx context.Context, montageID string, item entities.LineItem) (settlement entities.Settlement, applied bool, err error)
}
