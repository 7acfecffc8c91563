package algorithms

import "github.com/san-kum/sortviz/internal/trace"

// Bubble swaps adjacent out-of-order pairs, stopping after a pass without swaps.
// Time complexity: O(n²).
type Bubble struct{}

func NewBubble() *Bubble { return &Bubble{} }

func (b *Bubble) Name() string { return "bubble" }

func (b *Bubble) Sort(input trace.Sequence, yield trace.Yield) trace.Sequence {
	a := input.Clone()
	t := newTracer(yield)
	n := len(a)

	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			if a[j] <= a[j+1] {
				continue
			}
			if !t.emit(a, j, j+1) {
				return a
			}
			a[j], a[j+1] = a[j+1], a[j]
			swapped = true
			if !t.emit(a, j, j+1) || !t.emit(a) {
				return a
			}
		}
		if !swapped {
			break
		}
	}
	return a
}
