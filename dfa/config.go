package dfa

// Config configures eager DFA construction.
type Config struct {
	// MaxStates is the maximum number of DFA states, including the dead
	// state. Subset construction can be exponential in the NFA size; when the
	// limit would be exceeded Build returns ErrStateLimitExceeded.
	//
	// Default: 10,000 states
	MaxStates int

	// Minimize merges equivalent states after construction.
	//
	// Default: false
	Minimize bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates: 10_000,
		Minimize:  false,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	// The dead and start states always exist.
	if c.MaxStates < 2 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxStates must be >= 2",
		}
	}
	return nil
}

// WithMaxStates returns a new config with the specified max states
func (c Config) WithMaxStates(maxStates int) Config {
	c.MaxStates = maxStates
	return c
}

// WithMinimize returns a new config with minimization enabled/disabled
func (c Config) WithMinimize(enabled bool) Config {
	c.Minimize = enabled
	return c
}
