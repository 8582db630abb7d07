package interfaces

import (
	"context"

	"montage_service/internal/domain/entities"
)

// IAuditLogRepository is the append-only audit log.

type IAuditLogRepository interface {
	Append(ctx context.Context, e entities.AuditEntry) error
	ListByMontageID(ctx context.Context, montageID string) ([]entities.AuditEntry, error)
}
