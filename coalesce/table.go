package coalesce

import "github.com/tidwall/btree"

// pendingTable holds every operation registered since the last flush: one
// ordered mapping per operation kind, each with at most one entry per key.
// A set and a get for the same key may coexist; only same-kind collisions
// are conflicts, detected by the register path before insertion.
//
// Ordered maps make batch construction deterministic: commands are appended
// in key order within each kind.
type pendingTable[V any] struct {
	sets btree.Map[string, setOp[V]]
	gets btree.Map[string, getOp[V]]
	dels btree.Map[string, delOp]
}

func (t *pendingTable[V]) hasSet(key string) bool {
	_, ok := t.sets.Get(key)
	return ok
}

func (t *pendingTable[V]) hasGet(key string) bool {
	_, ok := t.gets.Get(key)
	return ok
}

func (t *pendingTable[V]) hasDel(key string) bool {
	_, ok := t.dels.Get(key)
	return ok
}

func (t *pendingTable[V]) len() int {
	return t.sets.Len() + t.gets.Len() + t.dels.Len()
}

// drain hands the table's contents to exactly one flush and leaves the
// receiver empty. Nothing can be read back after a drain.
func (t *pendingTable[V]) drain() pendingTable[V] {
	drained := *t
	*t = pendingTable[V]{}
	return drained
}
