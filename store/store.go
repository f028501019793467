// Package store defines the pipelined connection capability consumed by the
// coalescing engine, along with Redis-backed and in-memory implementations.
// A connection hands out batches; commands appended to a batch travel to the
// store in one network exchange and each command resolves individually.
package store

import (
	"context"
	"time"
)

// Conn is a connection to a key-value store that supports pipelined batches.
type Conn interface {
	// NewBatch opens an empty batch. Commands appended to it are buffered
	// until Submit.
	NewBatch() Batch
	// Close releases the underlying connection.
	Close() error
}

// Batch accumulates commands for one pipelined exchange. Append methods
// return a Cmd that resolves after Submit; reading a Cmd before Submit
// returns zero values. A batch is single-use and not safe for concurrent use.
type Batch interface {
	// Write appends a write of value under key. A positive expire attaches
	// that lifetime to the entry; zero writes without expiration.
	Write(key string, value []byte, expire time.Duration) *Cmd
	// Delete appends a deletion of key. Deleting a missing key is not an
	// error.
	Delete(key string) *Cmd
	// Read appends a read of key. An absent key resolves as not-found with
	// no error.
	Read(key string) *Cmd
	// Submit sends every appended command to the store as one exchange and
	// resolves their Cmds in append order. The returned error is
	// transport-level only — individual command failures are reported on
	// their own Cmd and never fail the submission.
	Submit(ctx context.Context) error
}

// Cmd is the completion record for a single command in a batch.
type Cmd struct {
	val   []byte
	found bool
	err   error
}

// Err returns the command-level error, or nil if the command succeeded.
func (c *Cmd) Err() error {
	return c.err
}

// Value returns the payload produced by a read and whether the key was
// present. Writes and deletes always report no value.
func (c *Cmd) Value() ([]byte, bool) {
	return c.val, c.found
}

// Resolve records the command's outcome. Conn implementations call it once
// per command during Submit.
func (c *Cmd) Resolve(val []byte, found bool, err error) {
	c.val = val
	c.found = found
	c.err = err
}
