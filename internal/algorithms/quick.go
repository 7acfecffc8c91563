package algorithms

import "github.com/san-kum/sortviz/internal/trace"

// Quick partitions around the last element of each range (Lomuto) and
// recurses on both sides, all in one working array.
// Time complexity: O(n log n) average, O(n²) worst case.
type Quick struct{}

func NewQuick() *Quick { return &Quick{} }

func (q *Quick) Name() string { return "quick" }

func (q *Quick) Sort(input trace.Sequence, yield trace.Yield) trace.Sequence {
	a := input.Clone()
	quickSort(a, 0, len(a)-1, newTracer(yield))
	return a
}

func quickSort(a trace.Sequence, lo, hi int, t *tracer) bool {
	if lo >= hi {
		return true
	}
	p, ok := partition(a, lo, hi, t)
	if !ok {
		return false
	}
	return quickSort(a, lo, p-1, t) && quickSort(a, p+1, hi, t)
}

// partition returns the final index of the pivot a[hi]. A Step follows every
// swap, including swaps of an element with itself.
func partition(a trace.Sequence, lo, hi int, t *tracer) (int, bool) {
	pivot := a[hi]
	i := lo - 1
	for j := lo; j < hi; j++ {
		if a[j] > pivot {
			continue
		}
		i++
		a[i], a[j] = a[j], a[i]
		if !t.emit(a, i, j) {
			return i, false
		}
	}
	a[i+1], a[hi] = a[hi], a[i+1]
	return i + 1, t.emit(a, i+1, hi)
}
