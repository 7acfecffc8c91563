package algorithms

import (
	"fmt"

	"github.com/san-kum/sortviz/internal/trace"
)

// Names lists the supported algorithm ids in menu order.
var Names = []string{"selection", "bubble", "insertion", "merge", "quick", "heap"}

var Info = map[string]string{
	"selection": "O(n²) minimum selection",
	"bubble":    "O(n²) adjacent swaps",
	"insertion": "O(n²) sorted prefix",
	"merge":     "O(n log n) stable merging",
	"quick":     "O(n log n) lomuto partition",
	"heap":      "O(n log n) binary max-heap",
}

type Registry struct {
	algorithms map[string]func() trace.Algorithm
}

func NewRegistry() *Registry {
	r := &Registry{
		algorithms: make(map[string]func() trace.Algorithm),
	}

	r.algorithms["selection"] = func() trace.Algorithm { return NewSelection() }
	r.algorithms["bubble"] = func() trace.Algorithm { return NewBubble() }
	r.algorithms["insertion"] = func() trace.Algorithm { return NewInsertion() }
	r.algorithms["merge"] = func() trace.Algorithm { return NewMerge() }
	r.algorithms["quick"] = func() trace.Algorithm { return NewQuick() }
	r.algorithms["heap"] = func() trace.Algorithm { return NewHeap() }

	return r
}

func (r *Registry) Get(name string) (trace.Algorithm, error) {
	fn, ok := r.algorithms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", trace.ErrInvalidAlgorithm, name)
	}
	return fn(), nil
}

func (r *Registry) Has(name string) bool {
	_, ok := r.algorithms[name]
	return ok
}

// List returns the registered ids in menu order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.algorithms))
	for _, name := range Names {
		if r.Has(name) {
			names = append(names, name)
		}
	}
	return names
}
