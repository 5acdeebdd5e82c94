package stats

import (
	"context"
	"sync"
	"time"
)

// CollectorInterface supplies fresh snapshots.
type CollectorInterface interface {
	Collect(ctx context.Context) (*Snapshot, error)
}

var _ CollectorInterface = (*Repository)(nil)

const defaultTTL = 5 * time.Second

// Service serves dashboard snapshots from a short-lived cache. There is no
// background refresh; snapshots are recomputed on demand when the cached one
// has expired or a write invalidated it.
type Service struct {
	collector CollectorInterface
	ttl       time.Duration

	mu       sync.Mutex
	cached   *Snapshot
	cachedAt time.Time
}

func NewService(collector CollectorInterface) *Service {
	return &Service{
		collector: collector,
		ttl:       defaultTTL,
	}
}

// Snapshot returns the cached snapshot when it is still fresh, otherwise
// recomputes it. Concurrent callers during a recompute serialize on the lock;
// the TTL bounds how stale a missed invalidation can get.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && time.Since(s.cachedAt) < s.ttl {
		return s.cached, nil
	}

	snapshot, err := s.collector.Collect(ctx)
	if err != nil {
		return nil, err
	}

	s.cached = snapshot
	s.cachedAt = time.Now()
	return snapshot, nil
}

// Invalidate drops the cached snapshot. Called by the registries and the
// ledger after every write.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}
