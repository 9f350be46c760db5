package event

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPublisher is a test double for Publisher
type mockPublisher struct {
	mu         sync.Mutex
	calls      []Event
	shouldFail func(attempt int) bool
}

func (m *mockPublisher) Publish(ctx context.Context, event Event) error {
	m.mu.Lock()
	m.calls = append(m.calls, event)
	callCount := len(m.calls)
	m.mu.Unlock()

	if m.shouldFail != nil && m.shouldFail(callCount) {
		return errors.New("mock publish error")
	}
	return nil
}

func (m *mockPublisher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	entries, err := ReadDeadLetters(f)
	require.NoError(t, err)
	return entries
}

func TestResilientPublisher_SuccessfulPublish(t *testing.T) {
	pub := &mockPublisher{}
	rp := NewResilientPublisher(pub, ResilientConfig{MaxRetries: 3, RetryDelay: 10 * time.Millisecond}, nil)

	require.NoError(t, rp.Publish(context.Background(), New(CaseOpened, "payload")))
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Equal(t, 1, pub.CallCount())
}

func TestResilientPublisher_RetryThenSucceed(t *testing.T) {
	pub := &mockPublisher{shouldFail: func(attempt int) bool { return attempt < 3 }}
	rp := NewResilientPublisher(pub, ResilientConfig{MaxRetries: 5, RetryDelay: 5 * time.Millisecond}, nil)

	// the caller never sees the failure
	require.NoError(t, rp.Publish(context.Background(), New(ItemSold, "payload")))

	assert.Eventually(t, func() bool { return pub.CallCount() == 3 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))
}

func TestResilientPublisher_ExhaustedGoesToDeadLetter(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	dlw, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	defer dlw.Close()

	pub := &mockPublisher{shouldFail: func(int) bool { return true }}
	rp := NewResilientPublisher(pub, ResilientConfig{MaxRetries: 2, RetryDelay: 5 * time.Millisecond}, dlw)

	require.NoError(t, rp.Publish(context.Background(), New(UpgradeCompleted, "payload")))

	assert.Eventually(t, func() bool { return pub.CallCount() == 3 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, UpgradeCompleted, entries[0].Event.Type)
	assert.Equal(t, 2, entries[0].Attempts)
	assert.Equal(t, "mock publish error", entries[0].LastError)
	assert.Equal(t, DeadLetterSchemaVersion, entries[0].SchemaVersion)
}

func TestResilientPublisher_ShutdownDeadLettersPending(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	dlw, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	defer dlw.Close()

	pub := &mockPublisher{shouldFail: func(int) bool { return true }}
	rp := NewResilientPublisher(pub, ResilientConfig{MaxRetries: 5, RetryDelay: time.Hour}, dlw)

	require.NoError(t, rp.Publish(context.Background(), New(MinigamePlayed, "payload")))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, MinigamePlayed, entries[0].Event.Type)
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 32*time.Second, CalculateRetryDelay(base, 5))
}
