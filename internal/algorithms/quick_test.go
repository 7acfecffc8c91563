package algorithms

import (
	"testing"

	"github.com/san-kum/sortviz/internal/trace"
)

func TestPartition_LastElementPivot(t *testing.T) {
	a := trace.Sequence{4, 2, 7, 1, 3}
	p, ok := partition(a, 0, len(a)-1, newTracer(nil))
	if !ok {
		t.Fatal("partition stopped")
	}
	if p != 2 || a[p] != 3 {
		t.Fatalf("pivot at %d (%v), want index 2 value 3", p, a)
	}

	left := trace.Sequence(a[:p])
	right := trace.Sequence(a[p+1:])
	if !left.IsPermutationOf(trace.Sequence{2, 1}) {
		t.Errorf("left partition %v, want {2,1}", left)
	}
	if !right.IsPermutationOf(trace.Sequence{4, 7}) {
		t.Errorf("right partition %v, want {4,7}", right)
	}
}

func TestQuick_FirstPartitionSteps(t *testing.T) {
	steps, out := trace.Trace(NewQuick(), trace.Sequence{4, 2, 7, 1, 3})
	if len(steps) < 3 {
		t.Fatalf("expected at least 3 steps, got %d", len(steps))
	}
	expectSteps(t, steps[:3], []trace.Step{
		trace.NewStep(trace.Sequence{2, 4, 7, 1, 3}, 0, 1),
		trace.NewStep(trace.Sequence{2, 1, 7, 4, 3}, 1, 3),
		trace.NewStep(trace.Sequence{2, 1, 3, 4, 7}, 2, 4),
	})
	if out.String() != "[1 2 3 4 7]" {
		t.Errorf("unexpected result %v", out)
	}
}

func TestQuick_EmitsSelfSwaps(t *testing.T) {
	steps, _ := trace.Trace(NewQuick(), trace.Sequence{1, 2, 3})
	if len(steps) == 0 {
		t.Fatal("expected steps")
	}
	first := steps[0]
	if hl := first.Highlights(); len(hl) != 1 || hl[0] != 0 {
		t.Errorf("first step %v, want a self swap at 0", first)
	}
}
