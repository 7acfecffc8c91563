package algorithms

import "github.com/san-kum/sortviz/internal/trace"

// Heap builds a max-heap bottom-up, then repeatedly moves the root behind the
// shrinking heap. Time complexity: O(n log n).
type Heap struct{}

func NewHeap() *Heap { return &Heap{} }

func (h *Heap) Name() string { return "heap" }

func (h *Heap) Sort(input trace.Sequence, yield trace.Yield) trace.Sequence {
	a := input.Clone()
	t := newTracer(yield)

	if !buildMaxHeap(a, t) {
		return a
	}
	for end := len(a) - 1; end > 0; end-- {
		a[0], a[end] = a[end], a[0]
		if !t.emit(a, 0, end) || !heapify(a, end, 0, t) {
			return a
		}
	}
	return a
}

func buildMaxHeap(a trace.Sequence, t *tracer) bool {
	for i := len(a)/2 - 1; i >= 0; i-- {
		if !heapify(a, len(a), i, t) {
			return false
		}
	}
	return true
}

// heapify sifts a[i] down within the heap a[:n].
func heapify(a trace.Sequence, n, i int, t *tracer) bool {
	for {
		largest := i
		left, right := 2*i+1, 2*i+2
		if left < n && a[left] > a[largest] {
			largest = left
		}
		if right < n && a[right] > a[largest] {
			largest = right
		}
		if largest == i {
			return true
		}
		a[i], a[largest] = a[largest], a[i]
		if !t.emit(a, i, largest) {
			return false
		}
		i = largest
	}
}
