package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys that were already handled, so a
// retried request does not repeat its side effect (a second SMS gateway
// call, for example)
type IdempotencyStore interface {
	// MarkProcessed records the key for the TTL. Returns false when the
	// key was already present, meaning the request is a duplicate.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether the key is currently recorded
	IsProcessed(ctx context.Context, key string) (bool, error)

	Close() error
}

// IdempotencyConfig controls duplicate detection for outbound sends
type IdempotencyConfig struct {
	// TTL is how long a key blocks repeats; after it passes, the same
	// key is accepted again
	TTL time.Duration

	// Enabled turns the check off entirely when false
	Enabled bool
}

// DefaultIdempotencyConfig blocks repeats for a day
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
