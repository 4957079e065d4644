package writeback

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestEnqueueRunsAfterDelay(t *testing.T) {
	q := New(20*time.Millisecond, zap.NewNop())
	defer q.Close()

	var ran atomic.Int32
	q.Enqueue("variant:v1:code", func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})

	assert.Equal(t, int32(0), ran.Load(), "write must not run before the delay")
	assert.Eventually(t, func() bool { return ran.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Zero(t, q.Len())
}

func TestEnqueueCoalescesSameKey(t *testing.T) {
	q := New(30*time.Millisecond, zap.NewNop())
	defer q.Close()

	var got atomic.Value
	var runs atomic.Int32
	for _, v := range []string{"5", "59", "590", "5900000000017"} {
		v := v
		q.Enqueue("variant:v1:code", func(ctx context.Context) error {
			got.Store(v)
			runs.Add(1)
			return nil
		})
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "5900000000017", got.Load(), "last write wins")
}

func TestEnqueueIndependentKeys(t *testing.T) {
	q := New(20*time.Millisecond, zap.NewNop())
	defer q.Close()

	var runs atomic.Int32
	q.Enqueue("variant:v1:code", func(ctx context.Context) error { runs.Add(1); return nil })
	q.Enqueue("variant:v1:price", func(ctx context.Context) error { runs.Add(1); return nil })
	q.Enqueue("variant:v2:code", func(ctx context.Context) error { runs.Add(1); return nil })

	assert.Eventually(t, func() bool { return runs.Load() == 3 }, time.Second, 5*time.Millisecond)
}

func TestFlushRunsPendingImmediately(t *testing.T) {
	q := New(time.Hour, zap.NewNop())

	var runs atomic.Int32
	q.Enqueue("a", func(ctx context.Context) error { runs.Add(1); return nil })
	q.Enqueue("b", func(ctx context.Context) error { runs.Add(1); return nil })

	q.Flush(context.Background())
	assert.Equal(t, int32(2), runs.Load())
	assert.Zero(t, q.Len())
}

func TestCloseRejectsFurtherEnqueues(t *testing.T) {
	q := New(time.Hour, zap.NewNop())
	q.Close()

	var runs atomic.Int32
	q.Enqueue("a", func(ctx context.Context) error { runs.Add(1); return nil })
	q.Flush(context.Background())
	assert.Zero(t, runs.Load())
}

func TestZeroDelayFallsBackToDefault(t *testing.T) {
	q := New(0, zap.NewNop())
	defer q.Close()
	assert.Equal(t, DefaultDelay, q.delay)
}

func TestStaleTimerDoesNotRunReplacementEarly(t *testing.T) {
	q := New(time.Hour, zap.NewNop())
	defer q.Close()

	var first, second atomic.Int32
	q.Enqueue("variant:v1:price", func(ctx context.Context) error {
		first.Add(1)
		return nil
	})
	stale := q.pending["variant:v1:price"].gen

	// A timer that expired for the first write but lost the lock to this
	// replacing Enqueue must not run the replacement before its own delay.
	q.Enqueue("variant:v1:price", func(ctx context.Context) error {
		second.Add(1)
		return nil
	})
	q.fire("variant:v1:price", stale)

	assert.Zero(t, first.Load())
	assert.Zero(t, second.Load())
	assert.Equal(t, 1, q.Len())

	q.Flush(context.Background())
	assert.Zero(t, first.Load())
	assert.Equal(t, int32(1), second.Load())
}
