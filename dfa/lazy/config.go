package lazy

// Config configures the behavior of the lazy DFA engine.
//
// The configuration trades memory for speed: a larger cache is cleared less
// often and recomputes fewer states.
type Config struct {
	// CacheStates is the maximum number of DFA states a Cache holds,
	// including the dead state. When the limit is reached the cache is
	// cleared and the search continues from the current state.
	//
	// Default: 1,000 states
	CacheStates int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CacheStates: 1_000,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	// The dead state, the state being left and the state being entered
	// must fit at the same time.
	if c.CacheStates < 3 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "CacheStates must be >= 3",
		}
	}
	return nil
}

// WithCacheStates returns a new config with the specified cache capacity
func (c Config) WithCacheStates(n int) Config {
	c.CacheStates = n
	return c
}
