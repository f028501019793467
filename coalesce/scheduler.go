package coalesce

import "time"

// Trigger defers a flush until the current coalescing window closes. The
// engine arms at most one trigger at a time: the first operation registered
// after a flush defers one call to flush, and later registrations in the
// same window ride along without scheduling anything.
//
// The only requirement on an implementation is that flush runs after the
// work already in progress when Defer was called, so registrations issued
// back-to-back land in one batch.
type Trigger interface {
	Defer(flush func())
}

// TriggerFunc adapts a function to the Trigger interface. Useful for hosts
// with their own scheduling primitive and for tests that fire flushes by
// hand.
type TriggerFunc func(flush func())

func (f TriggerFunc) Defer(flush func()) {
	f(flush)
}

type timerTrigger struct {
	delay time.Duration
}

// NewTimerTrigger returns a Trigger that fires the flush after the given
// delay. A delay of zero hands the flush to a fresh goroutine immediately,
// which still coalesces registrations issued before the scheduler runs it.
func NewTimerTrigger(delay time.Duration) Trigger {
	return timerTrigger{delay: delay}
}

func (t timerTrigger) Defer(flush func()) {
	if t.delay <= 0 {
		go flush()
		return
	}
	time.AfterFunc(t.delay, flush)
}
