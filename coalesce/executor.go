package coalesce

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/coalesced/batchkv/observability"
	"github.com/coalesced/batchkv/store"
)

// ackWire binds a pending write or delete to its in-batch command.
type ackWire struct {
	done func(err error)
	cmd  *store.Cmd
}

// readWire binds a pending get to its in-batch command.
type readWire[V any] struct {
	done GetFunc[V]
	cmd  *store.Cmd
}

// execute submits one drained table as a single pipelined batch and
// distributes each command's result to the callback that registered it.
//
// Commands are appended kind-grouped: all writes, then all deletes, then all
// reads. Relative order across kinds within one batch is a documented
// property of the layer, not registration order.
func (c *Coalescer[V]) execute(drained pendingTable[V], forced bool) {
	if drained.len() == 0 {
		return
	}

	batch := c.conn.NewBatch()

	var writes []ackWire
	drained.sets.Scan(func(key string, op setOp[V]) bool {
		payload, err := c.codec.Encode(op.value)
		if err != nil {
			op.done(fmt.Errorf("%w: %v", ErrEncode, err))
			return true
		}
		writes = append(writes, ackWire{
			done: op.done,
			cmd:  batch.Write(key, payload, c.expire),
		})
		return true
	})

	var deletes []ackWire
	drained.dels.Scan(func(key string, op delOp) bool {
		deletes = append(deletes, ackWire{done: op.done, cmd: batch.Delete(key)})
		return true
	})

	var reads []readWire[V]
	drained.gets.Scan(func(key string, op getOp[V]) bool {
		reads = append(reads, readWire[V]{done: op.done, cmd: batch.Read(key)})
		return true
	})

	if len(writes)+len(deletes)+len(reads) == 0 {
		return
	}

	batchID := uuid.Must(uuid.NewV7()).String()
	c.observer.OnEvent(c.ctx, observability.NewEvent(
		EventFlush,
		observability.LevelVerbose,
		"coalesce.execute",
		map[string]any{
			"batch_id": batchID,
			"writes":   len(writes),
			"deletes":  len(deletes),
			"reads":    len(reads),
			"forced":   forced,
		},
	))

	if err := batch.Submit(c.ctx); err != nil {
		// Wholesale submission failure: every outstanding callback in the
		// batch receives the same transport error.
		c.observer.OnEvent(c.ctx, observability.NewEvent(
			EventFlushError,
			observability.LevelError,
			"coalesce.execute",
			map[string]any{"batch_id": batchID, "error": err.Error()},
		))
		for _, w := range writes {
			w.done(err)
		}
		for _, d := range deletes {
			d.done(err)
		}
		for _, r := range reads {
			r.done(nil, err)
		}
		return
	}

	for _, w := range writes {
		w.done(w.cmd.Err())
	}
	for _, d := range deletes {
		d.done(d.cmd.Err())
	}
	for _, r := range reads {
		payload, found := r.cmd.Value()
		if !found {
			// A missing key is a successful nil result carrying whatever
			// error the store reported for the slot, not a synthesized
			// not-found error.
			r.done(nil, r.cmd.Err())
			continue
		}
		value, err := c.codec.Decode(payload)
		if err != nil {
			r.done(nil, fmt.Errorf("%w: %v", ErrDecode, err))
			continue
		}
		r.done(&value, nil)
	}
}
