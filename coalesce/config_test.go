package coalesce_test

import (
	"testing"
	"time"

	"github.com/coalesced/batchkv/coalesce"
)

func TestDefaultConfig(t *testing.T) {
	cfg := coalesce.DefaultConfig()

	if cfg.ExpireSeconds != 0 {
		t.Errorf("got ExpireSeconds %d, want 0", cfg.ExpireSeconds)
	}
	if cfg.FlushDelayMS != 1 {
		t.Errorf("got FlushDelayMS %d, want 1", cfg.FlushDelayMS)
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := coalesce.DefaultConfig()

	cfg.Merge(&coalesce.Config{ExpireSeconds: 60, FlushDelayMS: 5})

	if cfg.ExpireSeconds != 60 {
		t.Errorf("got ExpireSeconds %d, want 60", cfg.ExpireSeconds)
	}
	if cfg.FlushDelayMS != 5 {
		t.Errorf("got FlushDelayMS %d, want 5", cfg.FlushDelayMS)
	}

	cfg.Merge(&coalesce.Config{})

	if cfg.ExpireSeconds != 60 {
		t.Errorf("zero-value merge clobbered ExpireSeconds: got %d", cfg.ExpireSeconds)
	}
}

func TestConfig_Durations(t *testing.T) {
	cfg := coalesce.Config{ExpireSeconds: 30, FlushDelayMS: 2}

	if got := cfg.Expire(); got != 30*time.Second {
		t.Errorf("Expire() = %v, want 30s", got)
	}
	if got := cfg.FlushDelay(); got != 2*time.Millisecond {
		t.Errorf("FlushDelay() = %v, want 2ms", got)
	}

	zero := coalesce.Config{}
	if got := zero.Expire(); got != 0 {
		t.Errorf("zero Expire() = %v, want 0", got)
	}
	if got := zero.FlushDelay(); got != 0 {
		t.Errorf("zero FlushDelay() = %v, want 0", got)
	}
}
