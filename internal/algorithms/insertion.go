package algorithms

import "github.com/san-kum/sortviz/internal/trace"

// Insertion grows a sorted prefix by moving each element left past every
// larger predecessor. Time complexity: O(n²).
type Insertion struct{}

func NewInsertion() *Insertion { return &Insertion{} }

func (s *Insertion) Name() string { return "insertion" }

func (s *Insertion) Sort(input trace.Sequence, yield trace.Yield) trace.Sequence {
	a := input.Clone()
	t := newTracer(yield)

	for i := 1; i < len(a); i++ {
		// The element being inserted always sits at j+1, so each shift is a
		// swap and every snapshot stays a permutation of the input.
		j := i - 1
		for j >= 0 && a[j] > a[j+1] {
			if !t.emit(a, j, j+1) {
				return a
			}
			a[j], a[j+1] = a[j+1], a[j]
			if !t.emit(a) {
				return a
			}
			j--
		}
		if !t.emit(a, i, j+1) {
			return a
		}
	}
	return a
}
