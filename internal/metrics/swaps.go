package metrics

import "github.com/san-kum/sortviz/internal/trace"

// Swaps counts the Steps whose snapshot differs from the one before,
// i.e. the writes an algorithm made rather than the highlights it showed.
type Swaps struct {
	name  string
	last  trace.Sequence
	count int
	seen  bool
}

func NewSwaps() *Swaps {
	return &Swaps{
		name: "swaps",
	}
}

func (s *Swaps) Name() string {
	return s.name
}

func (s *Swaps) Observe(step trace.Step) {
	values := step.Values()
	if s.seen && !equal(values, s.last) {
		s.count++
	}
	s.last, s.seen = values, true
}

// Prime sets the snapshot the first observed Step is compared against.
func (s *Swaps) Prime(initial trace.Sequence) {
	s.last, s.seen = initial.Clone(), true
}

func (s *Swaps) Value() float64 {
	return float64(s.count)
}

func (s *Swaps) Reset() {
	s.last = nil
	s.count = 0
	s.seen = false
}

func equal(a, b trace.Sequence) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
