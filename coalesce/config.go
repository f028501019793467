package coalesce

import "time"

const defaultFlushDelayMS = 1

// Config holds coalescer initialization parameters.
type Config struct {
	// ExpireSeconds attaches a lifetime to every write when positive.
	// Zero writes without expiration.
	ExpireSeconds int `json:"expire_seconds,omitempty"`
	// FlushDelayMS is the coalescing window in milliseconds for the default
	// timer trigger. Operations registered within one window share a batch.
	FlushDelayMS int `json:"flush_delay_ms,omitempty"`
}

// DefaultConfig returns a Config with no expiration and a one-millisecond
// coalescing window.
func DefaultConfig() Config {
	return Config{FlushDelayMS: defaultFlushDelayMS}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.ExpireSeconds > 0 {
		c.ExpireSeconds = source.ExpireSeconds
	}
	if source.FlushDelayMS > 0 {
		c.FlushDelayMS = source.FlushDelayMS
	}
}

// Expire returns the configured write expiration as a duration.
func (c *Config) Expire() time.Duration {
	if c.ExpireSeconds <= 0 {
		return 0
	}
	return time.Duration(c.ExpireSeconds) * time.Second
}

// FlushDelay returns the coalescing window as a duration.
func (c *Config) FlushDelay() time.Duration {
	if c.FlushDelayMS <= 0 {
		return 0
	}
	return time.Duration(c.FlushDelayMS) * time.Millisecond
}
