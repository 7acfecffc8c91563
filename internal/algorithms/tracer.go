package algorithms

import "github.com/san-kum/sortviz/internal/trace"

// tracer forwards snapshots to a Yield until the consumer asks to stop.
// Once stopped it never calls the Yield again.
type tracer struct {
	yield   trace.Yield
	stopped bool
}

func newTracer(yield trace.Yield) *tracer {
	if yield == nil {
		yield = func(trace.Step) bool { return true }
	}
	return &tracer{yield: yield}
}

// emit reports whether the algorithm may keep going.
func (t *tracer) emit(values trace.Sequence, highlights ...int) bool {
	if t.stopped {
		return false
	}
	if !t.yield(trace.NewStep(values, highlights...)) {
		t.stopped = true
	}
	return !t.stopped
}
