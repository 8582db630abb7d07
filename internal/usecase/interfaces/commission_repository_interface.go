package interfaces

import (
	"context"

	"montage_service/internal/domain/entities"
)

// ICommissionRepository abstracts persistence for architect and partner
// commissions. Create fails with ErrAlreadyExists when a commission of the
// same type already exists for the montage.

type ICommissionRepository interface {
	Get(ctx context.Context, montageID string, t entities.BeneficiaryType) (entities.Commission, error)
	Create(ctx context.Context, c entities.Commission) (entities.Commission, error)
}
