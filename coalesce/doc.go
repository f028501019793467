// Package coalesce implements a write-behind coalescing layer in front of a
// pipelined key-value store connection.
//
// Callers register independent set/get/delete operations; instead of one
// network round trip per operation, the Coalescer accumulates everything
// registered within one flush window and submits it as a single pipelined
// batch, then fans each command's result back to the callback that registered
// it. Per-operation semantics are preserved: every callback fires exactly
// once with its own success, value, or error.
//
// The layer holds no data beyond the in-flight window. Durability and
// consistency are entirely the store's.
package coalesce
