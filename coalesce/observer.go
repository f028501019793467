package coalesce

import "github.com/coalesced/batchkv/observability"

// Coalescer event types emitted around batch flushes.
const (
	EventFlush      observability.EventType = "coalesce.flush"
	EventFlushError observability.EventType = "coalesce.flush.error"
	EventConflict   observability.EventType = "coalesce.conflict"
)
