package meta

// Match is the byte span [Start, End) of one match in a haystack.
type Match struct {
	start    int
	end      int
	haystack []byte
}

// NewMatch returns the match [start, end) of haystack. The haystack is
// referenced, not copied.
func NewMatch(start, end int, haystack []byte) *Match {
	return &Match{start: start, end: end, haystack: haystack}
}

// Start returns the inclusive start offset.
func (m *Match) Start() int {
	return m.start
}

// End returns the exclusive end offset.
func (m *Match) End() int {
	return m.end
}

// Bytes returns the matched bytes as a view into the haystack, or nil if
// the span does not fit it.
func (m *Match) Bytes() []byte {
	if m.start < 0 || m.end > len(m.haystack) || m.start > m.end {
		return nil
	}
	return m.haystack[m.start:m.end]
}
