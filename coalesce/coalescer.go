package coalesce

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/coalesced/batchkv/codec"
	"github.com/coalesced/batchkv/observability"
	"github.com/coalesced/batchkv/store"
)

// Option configures a Coalescer after config-driven initialization.
// Applied by New after defaults are set.
type Option[V any] func(*Coalescer[V])

// WithTrigger overrides the config-created timer trigger.
func WithTrigger[V any](t Trigger) Option[V] {
	return func(c *Coalescer[V]) { c.trigger = t }
}

// WithObserver overrides the default SlogObserver.
func WithObserver[V any](o observability.Observer) Option[V] {
	return func(c *Coalescer[V]) { c.observer = o }
}

// WithContext sets the context batch submissions run under. Registrations
// themselves never block; the context only governs the store round trip.
func WithContext[V any](ctx context.Context) Option[V] {
	return func(c *Coalescer[V]) { c.ctx = ctx }
}

// Coalescer batches set/get/delete operations for a pipelined store
// connection. All methods are safe for concurrent use; registrations never
// block on the network.
type Coalescer[V any] struct {
	conn     store.Conn
	codec    codec.Codec[V]
	trigger  Trigger
	observer observability.Observer
	ctx      context.Context
	expire   time.Duration

	// table and armed are observed and mutated as one unit.
	mu    sync.Mutex
	table pendingTable[V]
	armed bool
}

// New creates a Coalescer over the given store connection and codec. A nil
// cfg uses DefaultConfig. The connection's lifecycle belongs to the caller;
// the coalescer never closes it.
func New[V any](cfg *Config, conn store.Conn, cod codec.Codec[V], opts ...Option[V]) (*Coalescer[V], error) {
	if conn == nil {
		return nil, ErrNilConn
	}
	if cod == nil {
		return nil, ErrNilCodec
	}
	if cfg == nil {
		defaults := DefaultConfig()
		cfg = &defaults
	}

	c := &Coalescer[V]{
		conn:     conn,
		codec:    cod,
		trigger:  NewTimerTrigger(cfg.FlushDelay()),
		observer: observability.NewSlogObserver(slog.Default()),
		ctx:      context.Background(),
		expire:   cfg.Expire(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Set registers a write of value under key. done fires exactly once after
// the batch carrying the write completes. A second set for a key already
// pending forces an immediate flush of the whole batch first, so the earlier
// callback is never dropped.
func (c *Coalescer[V]) Set(key string, value V, done SetFunc) {
	if done == nil {
		done = func(error) {}
	}

	c.mu.Lock()
	// Re-check after every forced flush: the lock is released around the
	// store round trip, so another goroutine may have taken the slot again.
	for c.table.hasSet(key) {
		c.forceFlushLocked("set", key)
	}
	c.table.sets.Set(key, setOp[V]{value: value, done: done})
	c.armLocked()
	c.mu.Unlock()
}

// Get registers a read of key. done fires exactly once; an absent key
// yields a nil value and no error. A pending set or delete for the same key
// does not conflict with a get.
func (c *Coalescer[V]) Get(key string, done GetFunc[V]) {
	if done == nil {
		done = func(*V, error) {}
	}

	c.mu.Lock()
	for c.table.hasGet(key) {
		c.forceFlushLocked("get", key)
	}
	c.table.gets.Set(key, getOp[V]{done: done})
	c.armLocked()
	c.mu.Unlock()
}

// Delete registers a deletion of key. done fires exactly once; deleting a
// missing key is not an error.
func (c *Coalescer[V]) Delete(key string, done DelFunc) {
	if done == nil {
		done = func(error) {}
	}

	c.mu.Lock()
	for c.table.hasDel(key) {
		c.forceFlushLocked("delete", key)
	}
	c.table.dels.Set(key, delOp{done: done})
	c.armLocked()
	c.mu.Unlock()
}

// SetWait registers a write and blocks until its callback fires or ctx ends.
func (c *Coalescer[V]) SetWait(ctx context.Context, key string, value V) error {
	done := make(chan error, 1)
	c.Set(key, value, func(err error) { done <- err })

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetWait registers a read and blocks until its callback fires or ctx ends.
// A nil value with a nil error means the key was absent.
func (c *Coalescer[V]) GetWait(ctx context.Context, key string) (*V, error) {
	type outcome struct {
		value *V
		err   error
	}
	done := make(chan outcome, 1)
	c.Get(key, func(value *V, err error) { done <- outcome{value, err} })

	select {
	case out := <-done:
		return out.value, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// DeleteWait registers a deletion and blocks until its callback fires or ctx
// ends.
func (c *Coalescer[V]) DeleteWait(ctx context.Context, key string) error {
	done := make(chan error, 1)
	c.Delete(key, func(err error) { done <- err })

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// armLocked defers one flush for the current window. Only the first
// registration after a flush schedules anything; the armed flag is cleared
// when the table drains.
func (c *Coalescer[V]) armLocked() {
	if c.armed {
		return
	}
	c.armed = true
	c.trigger.Defer(c.flush)
}

func (c *Coalescer[V]) drainLocked() pendingTable[V] {
	c.armed = false
	return c.table.drain()
}

// flush is the deferred trigger target: it drains whatever accumulated in
// the window and submits it as one batch. A window already emptied by a
// forced flush submits nothing.
func (c *Coalescer[V]) flush() {
	c.mu.Lock()
	drained := c.drainLocked()
	c.mu.Unlock()

	c.execute(drained, false)
}

// forceFlushLocked runs the conflict rule: the entire pending batch is
// flushed synchronously before the caller inserts the colliding operation.
// The lock is released around the store round trip so callbacks may
// register new operations; the caller re-acquires it transparently.
func (c *Coalescer[V]) forceFlushLocked(kind, key string) {
	drained := c.drainLocked()
	c.mu.Unlock()

	c.observer.OnEvent(c.ctx, observability.NewEvent(
		EventConflict,
		observability.LevelVerbose,
		"coalesce.register",
		map[string]any{"key": key, "kind": kind},
	))
	c.execute(drained, true)

	c.mu.Lock()
}
