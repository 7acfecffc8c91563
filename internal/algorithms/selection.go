package algorithms

import "github.com/san-kum/sortviz/internal/trace"

// Selection repeatedly swaps the minimum of the unsorted suffix into place.
// Time complexity: O(n²).
type Selection struct{}

func NewSelection() *Selection { return &Selection{} }

func (s *Selection) Name() string { return "selection" }

func (s *Selection) Sort(input trace.Sequence, yield trace.Yield) trace.Sequence {
	a := input.Clone()
	t := newTracer(yield)
	n := len(a)

	for i := 0; i < n; i++ {
		minIndex := i
		for j := i + 1; j < n; j++ {
			if a[j] < a[minIndex] {
				minIndex = j
			}
		}
		if minIndex == i {
			continue
		}

		if !t.emit(a, i, minIndex) {
			return a
		}
		a[i], a[minIndex] = a[minIndex], a[i]
		if !t.emit(a, i, minIndex) || !t.emit(a) {
			return a
		}
	}
	return a
}
