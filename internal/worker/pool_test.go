package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(2, 10, time.Second)
	pool.Start()

	job := JobFunc{JobName: "count", Fn: func(ctx context.Context) error {
		atomic.AddInt32(&executed, 1)
		return nil
	}}
	assert.True(t, pool.Enqueue(job))
	assert.True(t, pool.Enqueue(JobFunc{JobName: "fail", Fn: func(context.Context) error { return errors.New("boom") }}))
	assert.True(t, pool.Enqueue(job))

	require.Eventually(t, func() bool { return atomic.LoadInt32(&executed) == 2 }, time.Second, 5*time.Millisecond)

	pool.Stop()
	pool.Stop()
	assert.False(t, pool.Enqueue(job), "stopped pool rejects jobs")
}

func TestPool_QueueFull(t *testing.T) {
	pool := NewPool(1, 1, time.Second)
	noop := JobFunc{JobName: "noop", Fn: func(context.Context) error { return nil }}

	assert.True(t, pool.Enqueue(noop))
	assert.False(t, pool.Enqueue(noop))

	pool.Start()
	pool.Stop()
}

func TestPool_JobTimeout(t *testing.T) {
	pool := NewPool(1, 1, 20*time.Millisecond)
	pool.Start()
	defer pool.Stop()

	got := make(chan error, 1)
	pool.Enqueue(JobFunc{JobName: "slow", Fn: func(ctx context.Context) error {
		<-ctx.Done()
		got <- ctx.Err()
		return ctx.Err()
	}})

	select {
	case err := <-got:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(time.Second):
		t.Fatal("job context never expired")
	}
}
