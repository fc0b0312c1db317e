package messaging

import (
	"context"

	"github.com/clubgate/backend/internal/domain/shared"
)

// MessageRepository defines persistence operations for the SMS log
type MessageRepository interface {
	shared.Repository[Message]
	FindByIdempotencyKey(ctx context.Context, key string) (*Message, error)
	FindByStatus(ctx context.Context, status MessageStatus, filter shared.Filter) ([]Message, error)
	// FindAwaitingDelivery returns sent messages with a provider message ID,
	// for the delivery-report poll
	FindAwaitingDelivery(ctx context.Context, limit int) ([]Message, error)
}
