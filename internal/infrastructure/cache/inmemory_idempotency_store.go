package cache

import (
	"context"
	"sync"
	"time"

	"github.com/clubgate/backend/internal/domain/shared"
)

// sweepInterval is how often the background sweeper drops expired keys.
// Lookups already ignore expired keys, the sweeper only bounds memory.
const sweepInterval = 5 * time.Minute

// InMemoryIdempotencyStore keeps request keys in a map guarded by a
// RWMutex. Fine for a single instance and for tests; a multi-instance
// deployment needs the Redis store instead.
type InMemoryIdempotencyStore struct {
	mu        sync.RWMutex
	deadlines map[string]time.Time
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)

// NewInMemoryIdempotencyStore builds the store and starts its sweeper.
// Call Close to stop the sweeper.
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	s := &InMemoryIdempotencyStore{
		deadlines: make(map[string]time.Time),
		done:      make(chan struct{}),
	}

	s.wg.Add(1)
	go s.sweepLoop()

	return s
}

// MarkProcessed records the key for the given TTL. Returns false when the
// key is already present and still live, which signals a duplicate request.
func (s *InMemoryIdempotencyStore) MarkProcessed(ctx context.Context, requestKey string, ttl time.Duration) (bool, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if deadline, ok := s.deadlines[requestKey]; ok && now.Before(deadline) {
		return false, nil
	}

	s.deadlines[requestKey] = now.Add(ttl)
	return true, nil
}

// IsProcessed reports whether the key is present and has not expired
func (s *InMemoryIdempotencyStore) IsProcessed(ctx context.Context, requestKey string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deadline, ok := s.deadlines[requestKey]
	return ok && time.Now().Before(deadline), nil
}

// Close stops the sweeper. Safe to call more than once.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryIdempotencyStore) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep drops every key whose deadline has passed
func (s *InMemoryIdempotencyStore) sweep() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, deadline := range s.deadlines {
		if now.After(deadline) {
			delete(s.deadlines, key)
		}
	}
}

// Size reports how many keys are held, expired ones included until the
// next sweep
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.deadlines)
}
