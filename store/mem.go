package store

import (
	"context"
	"slices"
	"sync"
	"time"
)

type memEntry struct {
	val      []byte
	expireAt time.Time // zero = no expiration
}

type memConn struct {
	entries map[string]memEntry
	mu      sync.Mutex
	now     func() time.Time
}

// NewMem creates an in-memory Conn. It honors per-write expiration and is
// safe for concurrent use; batches still apply as a single locked step so a
// submission is observed atomically.
func NewMem() Conn {
	return &memConn{
		entries: make(map[string]memEntry),
		now:     time.Now,
	}
}

func (c *memConn) NewBatch() Batch {
	return &memBatch{conn: c}
}

func (c *memConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memEntry)
	return nil
}

type memCommand struct {
	kind   byte // 'w', 'd', 'r'
	key    string
	val    []byte
	expire time.Duration
	cmd    *Cmd
}

type memBatch struct {
	conn     *memConn
	commands []memCommand
}

func (b *memBatch) Write(key string, value []byte, expire time.Duration) *Cmd {
	cmd := &Cmd{}
	b.commands = append(b.commands, memCommand{
		kind:   'w',
		key:    key,
		val:    slices.Clone(value),
		expire: expire,
		cmd:    cmd,
	})
	return cmd
}

func (b *memBatch) Delete(key string) *Cmd {
	cmd := &Cmd{}
	b.commands = append(b.commands, memCommand{kind: 'd', key: key, cmd: cmd})
	return cmd
}

func (b *memBatch) Read(key string) *Cmd {
	cmd := &Cmd{}
	b.commands = append(b.commands, memCommand{kind: 'r', key: key, cmd: cmd})
	return cmd
}

func (b *memBatch) Submit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.conn.mu.Lock()
	defer b.conn.mu.Unlock()

	now := b.conn.now()
	for _, mc := range b.commands {
		switch mc.kind {
		case 'w':
			e := memEntry{val: mc.val}
			if mc.expire > 0 {
				e.expireAt = now.Add(mc.expire)
			}
			b.conn.entries[mc.key] = e
			mc.cmd.Resolve(nil, false, nil)
		case 'd':
			delete(b.conn.entries, mc.key)
			mc.cmd.Resolve(nil, false, nil)
		case 'r':
			e, ok := b.conn.entries[mc.key]
			if ok && !e.expireAt.IsZero() && now.After(e.expireAt) {
				delete(b.conn.entries, mc.key)
				ok = false
			}
			if !ok {
				mc.cmd.Resolve(nil, false, nil)
				continue
			}
			mc.cmd.Resolve(slices.Clone(e.val), true, nil)
		}
	}

	return nil
}
