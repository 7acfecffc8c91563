package trace

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// MaxHighlights is the largest number of indices a Step may highlight.
const MaxHighlights = 2

type Sequence []int

func (s Sequence) Clone() Sequence {
	c := make(Sequence, len(s))
	copy(c, s)
	return c
}

// IsSorted reports whether s is in non-decreasing order.
func (s Sequence) IsSorted() bool {
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return false
		}
	}
	return true
}

// IsPermutationOf reports whether s and other hold the same multiset of values.
func (s Sequence) IsPermutationOf(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	counts := make(map[int]int, len(s))
	for _, v := range s {
		counts[v]++
	}
	for _, v := range other {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}
	return true
}

// Inversions counts the pairs i<j with s[i] > s[j].
func (s Sequence) Inversions() int {
	n := 0
	for i := range s {
		for j := i + 1; j < len(s); j++ {
			if s[i] > s[j] {
				n++
			}
		}
	}
	return n
}

// Max returns the largest value, or 0 for an empty sequence.
func (s Sequence) Max() int {
	if len(s) == 0 {
		return 0
	}
	return slices.Max(s)
}

func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Ascending returns 1..n.
func Ascending(n int) Sequence {
	s := make(Sequence, n)
	for i := range s {
		s[i] = i + 1
	}
	return s
}

// Step is an immutable snapshot of the working sequence and the indices
// currently being compared or swapped.
type Step struct {
	values     Sequence
	highlights []int
}

// NewStep snapshots values. Duplicate highlights collapse into one and only
// the first MaxHighlights distinct indices are kept.
func NewStep(values Sequence, highlights ...int) Step {
	var hl []int
	for _, h := range highlights {
		if len(hl) == MaxHighlights {
			break
		}
		if !slices.Contains(hl, h) {
			hl = append(hl, h)
		}
	}
	return Step{values: values.Clone(), highlights: hl}
}

// Values returns a copy of the snapshot.
func (s Step) Values() Sequence { return s.values.Clone() }

// Highlights returns a copy of the highlighted indices.
func (s Step) Highlights() []int { return slices.Clone(s.highlights) }

func (s Step) Len() int { return len(s.values) }

// At returns the value at index i of the snapshot.
func (s Step) At(i int) int { return s.values[i] }

// Active reports whether index i is highlighted.
func (s Step) Active(i int) bool { return slices.Contains(s.highlights, i) }

func (s Step) String() string {
	hl := make([]string, len(s.highlights))
	for i, h := range s.highlights {
		hl[i] = fmt.Sprint(h)
	}
	return fmt.Sprintf("%v {%s}", s.values, strings.Join(hl, ","))
}

// Yield receives every Step an algorithm produces. Returning false asks the
// algorithm to stop.
type Yield func(Step) bool

// Algorithm is a sorting procedure instrumented to report its progress.
type Algorithm interface {
	Name() string
	// Sort sorts a copy of input, passing each Step to yield, and returns the
	// sorted copy. The input slice is never modified.
	Sort(input Sequence, yield Yield) Sequence
}

// Steps adapts alg into a lazy, single-use sequence of Steps over input.
func Steps(alg Algorithm, input Sequence) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		alg.Sort(input, Yield(yield))
	}
}

// Trace runs alg to completion and returns every Step along with the result.
func Trace(alg Algorithm, input Sequence) ([]Step, Sequence) {
	var steps []Step
	out := alg.Sort(input, func(s Step) bool {
		steps = append(steps, s)
		return true
	})
	return steps, out
}

// Event is a Step as delivered to observers.
type Event struct {
	// Session is the id of the emitting session; empty for randomize.
	Session   string
	Algorithm string
	// Index is the 0-based position of the Step within its session.
	Index int
	Step  Step
	// Final marks the terminal publication of a completed session.
	Final bool
}

// Observer receives every published Event in order.
type Observer interface {
	OnStep(ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev Event)

func (f ObserverFunc) OnStep(ev Event) { f(ev) }

type Metric interface {
	Name() string
	Observe(step Step)
	Value() float64
	Reset()
}
