package algorithms

import (
	"slices"

	"github.com/san-kum/sortviz/internal/trace"
)

// Merge splits the range at its midpoint, sorts both halves and merges them.
// Ties take the left head first, so the sort is stable.
// Time complexity: O(n log n).
type Merge struct{}

func NewMerge() *Merge { return &Merge{} }

func (m *Merge) Name() string { return "merge" }

func (m *Merge) Sort(input trace.Sequence, yield trace.Yield) trace.Sequence {
	a := input.Clone()
	mergeSort(a, 0, len(a), newTracer(yield))
	return a
}

func mergeSort(a trace.Sequence, lo, hi int, t *tracer) bool {
	if hi-lo <= 1 {
		return true
	}
	mid := lo + (hi-lo)/2
	if !mergeSort(a, lo, mid, t) || !mergeSort(a, mid, hi, t) {
		return false
	}

	left := slices.Clone(a[lo:mid])
	right := slices.Clone(a[mid:hi])
	less := func(x, y int) bool { return x < y }
	return mergeInto(a[lo:hi], left, right, less, func(k int) bool {
		return t.emit(a, lo+k)
	})
}

// mergeInto merges the sorted runs left and right into seg. After every
// element taken from a head, seg holds merged ++ left[li:] ++ right[ri:] and
// placed is called with the index of that element. The right head is taken
// only when strictly less than the left one.
func mergeInto[T any](seg, left, right []T, less func(x, y T) bool, placed func(k int) bool) bool {
	li, ri, k := 0, 0, 0
	for li < len(left) && ri < len(right) {
		if less(right[ri], left[li]) {
			seg[k] = right[ri]
			ri++
		} else {
			seg[k] = left[li]
			li++
		}
		k++
		n := copy(seg[k:], left[li:])
		copy(seg[k+n:], right[ri:])
		if !placed(k - 1) {
			return false
		}
	}
	return true
}
