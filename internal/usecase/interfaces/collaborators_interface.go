package interfaces

import (
	"context"

	"montage_service/internal/domain/entities"
)

// IAttachmentFinder lists the documents stored for a montage.
type IAttachmentFinder interface {
	FindByMontage(ctx context.Context, montageID string) ([]entities.Attachment, error)
}

// IRateLookup returns the financial rates configured for a user. Unknown users
// yield a zero UserRates.
type IRateLookup interface {
	LookupRate(ctx context.Context, userID string) (entities.UserRates, error)
}

// ICalendarSync keeps calendar events in sync with scheduled montage dates.
type ICalendarSync interface {
	UpsertEvent(ctx context.Context, e entities.CalendarEvent) error
}

// Recipient identifies where a customer notification is delivered.
type Recipient struct {
	Name  string
	Email string
	Phone string
}

// INotifier delivers a configured notification template to a customer.
type INotifier interface {
	Send(ctx context.Context, templateID string, recipient Recipient, variables map[string]string) error
}

// IAccessTokenIssuer mints customer-facing access tokens for unauthenticated
// flows (e.g. paying for the measurement service).
type IAccessTokenIssuer interface {
	Issue(montageID, customerID string) (string, error)
}
