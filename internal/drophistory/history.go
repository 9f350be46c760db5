// Package drophistory remembers the most recent case drops per user so the
// selector can avoid repeating them.
package drophistory

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultLimit is how many drops are kept per user and case
	DefaultLimit = 10

	// DefaultTTL drops idle histories
	DefaultTTL = 7 * 24 * time.Hour

	KeyPrefix = "drops:"
)

// Store records and lists recent drops, newest first
type Store interface {
	Recent(ctx context.Context, userID, caseID string, n int) ([]string, error)
	Record(ctx context.Context, userID, caseID, itemID string) error
}

// Key is the Redis list holding one user's drops from one case
func Key(userID, caseID string) string {
	return KeyPrefix + userID + ":" + caseID
}

// RedisStore keeps each history in a capped list
type RedisStore struct {
	client redis.UniversalClient
	limit  int
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed history
func NewRedisStore(client redis.UniversalClient, limit int, ttl time.Duration) *RedisStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, limit: limit, ttl: ttl}
}

func (s *RedisStore) Recent(ctx context.Context, userID, caseID string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	return s.client.LRange(ctx, Key(userID, caseID), 0, int64(n-1)).Result()
}

func (s *RedisStore) Record(ctx context.Context, userID, caseID, itemID string) error {
	key := Key(userID, caseID)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, itemID)
	pipe.LTrim(ctx, key, 0, int64(s.limit-1))
	pipe.Expire(ctx, key, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// MemoryStore is an in-process history without expiry
type MemoryStore struct {
	mu    sync.Mutex
	limit int
	lists map[string][]string
}

// NewMemoryStore creates an empty history
func NewMemoryStore(limit int) *MemoryStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &MemoryStore{limit: limit, lists: make(map[string][]string)}
}

func (s *MemoryStore) Recent(_ context.Context, userID, caseID string, n int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.lists[Key(userID, caseID)]
	if n > len(list) {
		n = len(list)
	}
	if n <= 0 {
		return nil, nil
	}
	return append([]string(nil), list[:n]...), nil
}

func (s *MemoryStore) Record(_ context.Context, userID, caseID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := Key(userID, caseID)
	list := append([]string{itemID}, s.lists[key]...)
	if len(list) > s.limit {
		list = list[:s.limit]
	}
	s.lists[key] = list
	return nil
}
