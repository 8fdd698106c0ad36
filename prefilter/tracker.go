package prefilter

// TrackerConfig configures when a Tracker gives up on its prefilter.
type TrackerConfig struct {
	// WarmupCandidates is the number of candidates to see before judging.
	// Default: 128.
	WarmupCandidates int

	// CheckInterval is the number of candidates between checks after
	// warmup. Default: 64.
	CheckInterval int

	// MinSkip is the minimum average number of bytes skipped per candidate.
	// Below it the prefilter costs more than it saves. Default: 4.
	MinSkip float64
}

// DefaultTrackerConfig returns the default tracker configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		WarmupCandidates: 128,
		CheckInterval:    64,
		MinSkip:          4,
	}
}

// Tracker wraps a Prefilter for the duration of one search and measures how
// many bytes it lets the search skip. If the prefilter proposes candidates
// nearly everywhere it is retired, after which every position is a
// candidate.
//
// A Tracker is not safe for concurrent use.
type Tracker struct {
	inner      Prefilter
	config     TrackerConfig
	candidates uint64
	skipped    uint64
	active     bool
}

// NewTracker returns a Tracker over inner with the default configuration.
func NewTracker(inner Prefilter) *Tracker {
	return NewTrackerWithConfig(inner, DefaultTrackerConfig())
}

// NewTrackerWithConfig returns a Tracker over inner.
func NewTrackerWithConfig(inner Prefilter, config TrackerConfig) *Tracker {
	return &Tracker{inner: inner, config: config, active: true}
}

// Find returns the next candidate at or after start. Once the tracker is
// retired it returns start itself.
func (t *Tracker) Find(haystack []byte, start int) int {
	if !t.active {
		return start
	}
	pos := t.inner.Find(haystack, start)
	if pos < 0 {
		t.skipped += uint64(len(haystack) - start)
		return -1
	}
	t.candidates++
	t.skipped += uint64(pos - start)
	t.check()
	return pos
}

func (t *Tracker) check() {
	if t.candidates < uint64(t.config.WarmupCandidates) {
		return
	}
	if t.config.CheckInterval > 0 && t.candidates%uint64(t.config.CheckInterval) != 0 {
		return
	}
	if float64(t.skipped)/float64(t.candidates) < t.config.MinSkip {
		t.active = false
	}
}

// IsActive reports whether the prefilter is still in use.
func (t *Tracker) IsActive() bool {
	return t.active
}

// Stats returns the candidates proposed and bytes skipped so far.
func (t *Tracker) Stats() (candidates, skipped uint64) {
	return t.candidates, t.skipped
}

// Reset clears the counters and reactivates the prefilter.
func (t *Tracker) Reset() {
	t.candidates = 0
	t.skipped = 0
	t.active = true
}

// Inner returns the wrapped prefilter.
func (t *Tracker) Inner() Prefilter {
	return t.inner
}
