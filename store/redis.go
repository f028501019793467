package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisConn struct {
	client *redis.Client
}

// NewRedis creates a Conn backed by a Redis server. Batches map to Redis
// pipelines: one round trip per Submit, one reply per command.
func NewRedis(cfg *Config) Conn {
	return &redisConn{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (c *redisConn) NewBatch() Batch {
	return &redisBatch{pipe: c.client.Pipeline()}
}

func (c *redisConn) Close() error {
	return c.client.Close()
}

type redisBatch struct {
	pipe    redis.Pipeliner
	pending []func()
}

func (b *redisBatch) Write(key string, value []byte, expire time.Duration) *Cmd {
	cmd := &Cmd{}
	rc := b.pipe.Set(context.Background(), key, value, expire)
	b.pending = append(b.pending, func() {
		cmd.Resolve(nil, false, rc.Err())
	})
	return cmd
}

func (b *redisBatch) Delete(key string) *Cmd {
	cmd := &Cmd{}
	rc := b.pipe.Del(context.Background(), key)
	b.pending = append(b.pending, func() {
		cmd.Resolve(nil, false, rc.Err())
	})
	return cmd
}

func (b *redisBatch) Read(key string) *Cmd {
	cmd := &Cmd{}
	rc := b.pipe.Get(context.Background(), key)
	b.pending = append(b.pending, func() {
		val, err := rc.Bytes()
		if errors.Is(err, redis.Nil) {
			cmd.Resolve(nil, false, nil)
			return
		}
		if err != nil {
			cmd.Resolve(nil, false, err)
			return
		}
		cmd.Resolve(val, true, nil)
	})
	return cmd
}

func (b *redisBatch) Submit(ctx context.Context) error {
	_, execErr := b.pipe.Exec(ctx)

	// Per-command replies are populated even when Exec reports the first
	// command failure, so resolve them all before classifying execErr.
	for _, resolve := range b.pending {
		resolve()
	}

	if execErr == nil || errors.Is(execErr, redis.Nil) {
		return nil
	}
	if isTransportErr(ctx, execErr) {
		return fmt.Errorf("%w: %v", ErrTransport, execErr)
	}
	// Command-level failure: already delivered on its own Cmd.
	return nil
}

func isTransportErr(ctx context.Context, err error) bool {
	var netErr net.Error
	return ctx.Err() != nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, redis.ErrClosed) ||
		errors.Is(err, io.EOF) ||
		errors.As(err, &netErr)
}
