package coalesce_test

import (
	"testing"
	"time"

	"github.com/coalesced/batchkv/coalesce"
)

func TestTimerTrigger_FiresOnce(t *testing.T) {
	trigger := coalesce.NewTimerTrigger(time.Millisecond)

	fired := make(chan struct{}, 2)
	trigger.Defer(func() { fired <- struct{}{} })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("deferred flush never fired")
	}

	select {
	case <-fired:
		t.Fatal("deferred flush fired twice")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestTimerTrigger_ZeroDelay(t *testing.T) {
	trigger := coalesce.NewTimerTrigger(0)

	fired := make(chan struct{}, 1)
	trigger.Defer(func() { fired <- struct{}{} })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("zero-delay flush never fired")
	}
}

func TestTriggerFunc_Adapts(t *testing.T) {
	var captured func()
	trigger := coalesce.TriggerFunc(func(flush func()) { captured = flush })

	ran := false
	trigger.Defer(func() { ran = true })

	if captured == nil {
		t.Fatal("TriggerFunc did not receive the flush")
	}
	captured()
	if !ran {
		t.Error("captured flush did not run")
	}
}
