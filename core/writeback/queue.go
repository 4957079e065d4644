package writeback

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultDelay is the debounce window applied when no delay is configured.
const DefaultDelay = 500 * time.Millisecond

// WriteFunc persists one coalesced edit.
type WriteFunc func(ctx context.Context) error

// Queue coalesces writes per key behind a fixed delay.
type Queue struct {
	delay  time.Duration
	logger *zap.Logger

	mu      sync.Mutex
	pending map[string]*pendingWrite
	gen     uint64
	closed  bool
}

type pendingWrite struct {
	timer *time.Timer
	fn    WriteFunc
	gen   uint64
}

// New creates a queue with the given debounce delay. A non-positive delay
// falls back to DefaultDelay.
func New(delay time.Duration, logger *zap.Logger) *Queue {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Queue{
		delay:   delay,
		logger:  logger,
		pending: make(map[string]*pendingWrite),
	}
}

// Enqueue schedules fn to run after the debounce delay. A later Enqueue with
// the same key replaces the pending write and restarts its timer; different
// keys are independent.
func (q *Queue) Enqueue(key string, fn WriteFunc) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	if p, ok := q.pending[key]; ok {
		p.timer.Stop()
	}

	q.gen++
	p := &pendingWrite{fn: fn, gen: q.gen}
	p.timer = time.AfterFunc(q.delay, func() {
		q.fire(key, p.gen)
	})
	q.pending[key] = p
}

// fire runs the pending write for key. The generation check keeps a timer
// that already fired, but lost the lock to a replacing Enqueue, from running
// the replacement before its own delay has elapsed.
func (q *Queue) fire(key string, gen uint64) {
	q.mu.Lock()
	p, ok := q.pending[key]
	if ok && p.gen != gen {
		ok = false
	}
	if ok {
		delete(q.pending, key)
	}
	q.mu.Unlock()

	if !ok {
		return
	}
	if err := p.fn(context.Background()); err != nil {
		q.logger.Error("Write-behind task failed", zap.String("key", key), zap.Error(err))
	}
}

// Flush runs every pending write immediately, in no particular order.
// Used on shutdown so debounced edits are not lost.
func (q *Queue) Flush(ctx context.Context) {
	q.mu.Lock()
	drained := q.pending
	q.pending = make(map[string]*pendingWrite)
	q.mu.Unlock()

	for key, p := range drained {
		p.timer.Stop()
		if err := p.fn(ctx); err != nil {
			q.logger.Error("Write-behind flush failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// Close flushes pending writes and rejects further enqueues.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.Flush(context.Background())
}

// Len returns the number of pending writes.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
