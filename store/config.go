package store

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds store connection initialization parameters.
type Config struct {
	Backend  string `json:"backend,omitempty"`  // "memory" or "redis".
	Addr     string `json:"addr,omitempty"`     // Redis host:port.
	Password string `json:"password,omitempty"` // Redis AUTH password, if any.
	DB       int    `json:"db,omitempty"`       // Redis logical database.
}

// DefaultConfig returns the default store configuration: a process-local
// in-memory store.
func DefaultConfig() Config {
	return Config{Backend: BackendMemory}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Backend != "" {
		c.Backend = source.Backend
	}
	if source.Addr != "" {
		c.Addr = source.Addr
	}
	if source.Password != "" {
		c.Password = source.Password
	}
	if source.DB != 0 {
		c.DB = source.DB
	}
}

// Open creates a Conn from configuration.
func Open(cfg *Config) (Conn, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMem(), nil
	case BackendRedis:
		return NewRedis(cfg), nil
	default:
		return nil, ErrUnknownBackend
	}
}
