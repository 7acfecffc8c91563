package algorithms

import (
	"testing"

	"github.com/san-kum/sortviz/internal/trace"
)

func TestSelection_Steps(t *testing.T) {
	steps, _ := trace.Trace(NewSelection(), trace.Sequence{2, 1})
	expectSteps(t, steps, []trace.Step{
		trace.NewStep(trace.Sequence{2, 1}, 0, 1),
		trace.NewStep(trace.Sequence{1, 2}, 0, 1),
		trace.NewStep(trace.Sequence{1, 2}),
	})
}

func TestSelection_SkipsElementsInPlace(t *testing.T) {
	steps, _ := trace.Trace(NewSelection(), trace.Sequence{1, 2, 3, 4})
	if len(steps) != 0 {
		t.Errorf("sorted input produced %d steps", len(steps))
	}

	// only index 0 needs a swap: 3 steps
	steps, _ = trace.Trace(NewSelection(), trace.Sequence{4, 2, 3, 1})
	if len(steps) != 3 {
		t.Errorf("expected 3 steps, got %d", len(steps))
	}
}

func TestBubble_Steps(t *testing.T) {
	steps, out := trace.Trace(NewBubble(), trace.Sequence{3, 1, 2})
	expectSteps(t, steps, []trace.Step{
		trace.NewStep(trace.Sequence{3, 1, 2}, 0, 1),
		trace.NewStep(trace.Sequence{1, 3, 2}, 0, 1),
		trace.NewStep(trace.Sequence{1, 3, 2}),
		trace.NewStep(trace.Sequence{1, 3, 2}, 1, 2),
		trace.NewStep(trace.Sequence{1, 2, 3}, 1, 2),
		trace.NewStep(trace.Sequence{1, 2, 3}),
	})
	if !out.IsSorted() {
		t.Errorf("unexpected result %v", out)
	}
}

func TestBubble_EarlyExit(t *testing.T) {
	steps, _ := trace.Trace(NewBubble(), trace.Ascending(50))
	if len(steps) != 0 {
		t.Errorf("sorted input produced %d steps", len(steps))
	}
}

func TestInsertion_Steps(t *testing.T) {
	steps, _ := trace.Trace(NewInsertion(), trace.Sequence{2, 1})
	expectSteps(t, steps, []trace.Step{
		trace.NewStep(trace.Sequence{2, 1}, 0, 1),
		trace.NewStep(trace.Sequence{1, 2}),
		trace.NewStep(trace.Sequence{1, 2}, 1, 0),
	})
}

func TestInsertion_PlacementOnly(t *testing.T) {
	steps, _ := trace.Trace(NewInsertion(), trace.Sequence{1, 2, 3})
	expectSteps(t, steps, []trace.Step{
		trace.NewStep(trace.Sequence{1, 2, 3}, 1),
		trace.NewStep(trace.Sequence{1, 2, 3}, 2),
	})
}
