package claimlock

import (
	"context"
	"sync"
	"time"

	"github.com/chibox/chibox-server/internal/domain"
)

// MemoryLocker is a single-process Locker for tests and local runs
type MemoryLocker struct {
	mu    sync.Mutex
	held  map[string]memoryEntry
	seq   uint64
	clock func() time.Time
}

type memoryEntry struct {
	id      uint64
	expires time.Time
}

// NewMemoryLocker creates an in-memory Locker
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		held:  make(map[string]memoryEntry),
		clock: time.Now,
	}
}

// Acquire claims key unless an unexpired claim exists
func (l *MemoryLocker) Acquire(_ context.Context, key string, ttl time.Duration) (Lease, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if e, ok := l.held[key]; ok && now.Before(e.expires) {
		return nil, domain.ErrClaimInProgress
	}
	l.seq++
	l.held[key] = memoryEntry{id: l.seq, expires: now.Add(ttl)}
	return &memoryLease{locker: l, key: key, id: l.seq}, nil
}

type memoryLease struct {
	locker *MemoryLocker
	key    string
	id     uint64
}

func (m *memoryLease) Release(context.Context) error {
	m.locker.mu.Lock()
	defer m.locker.mu.Unlock()

	if e, ok := m.locker.held[m.key]; ok && e.id == m.id {
		delete(m.locker.held, m.key)
	}
	return nil
}
