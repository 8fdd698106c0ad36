// Package sparse provides a sparse set of small unsigned integers.
//
// A sparse set supports O(1) insertion, membership testing and clearing
// while keeping its members in a dense slice in insertion order. The NFA
// simulation uses it to track which states are already in the current
// generation, and the DFA builders use it to collect subset-construction
// labels.
package sparse

// SparseSet is a set of uint32 values below a fixed capacity.
// The sparse array maps values to indices in the dense array; an entry is
// valid only if the dense array points back at it, so neither array needs
// clearing.
type SparseSet struct {
	sparse []uint32 // value -> index in dense
	dense  []uint32 // members in insertion order
}

// NewSparseSet creates a set that can hold values in [0, capacity).
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Capacity returns the exclusive upper bound on storable values.
func (s *SparseSet) Capacity() int {
	return len(s.sparse)
}

// Insert adds value to the set and reports whether it was newly added.
// Panics if value >= capacity.
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *SparseSet) Contains(value uint32) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Clear removes all elements in O(1).
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of elements.
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// IsEmpty reports whether the set has no elements.
func (s *SparseSet) IsEmpty() bool {
	return len(s.dense) == 0
}

// Values returns the members in insertion order.
// The returned slice is valid until the next mutation.
func (s *SparseSet) Values() []uint32 {
	return s.dense
}
