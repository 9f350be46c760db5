package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Record is the server-side half of a session. Deleting it revokes the token.
type Record struct {
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	ClientIP  string    `json:"client_ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}

// Store persists session records
type Store interface {
	Save(ctx context.Context, rec Record, ttl time.Duration) error
	Exists(ctx context.Context, userID, sessionID string) (bool, error)
	Delete(ctx context.Context, userID, sessionID string) error
}

// Key is the Redis key of one session
func Key(userID, sessionID string) string {
	return KeyPrefix + userID + ":" + sessionID
}

// RedisStore keeps records as JSON strings with a TTL
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, rec Record, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, Key(rec.UserID, rec.SessionID), data, ttl).Err()
}

func (s *RedisStore) Exists(ctx context.Context, userID, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, Key(userID, sessionID)).Result()
	return n > 0, err
}

func (s *RedisStore) Delete(ctx context.Context, userID, sessionID string) error {
	return s.client.Del(ctx, Key(userID, sessionID)).Err()
}

// MemoryStore keeps records in a map with lazy expiry
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore creates an empty in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]time.Time), now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, rec Record, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[Key(rec.UserID, rec.SessionID)] = s.now().Add(ttl)
	return nil
}

func (s *MemoryStore) Exists(_ context.Context, userID, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := Key(userID, sessionID)
	expires, ok := s.records[key]
	if !ok {
		return false, nil
	}
	if !s.now().Before(expires) {
		delete(s.records, key)
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) Delete(_ context.Context, userID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, Key(userID, sessionID))
	return nil
}
