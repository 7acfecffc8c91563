package metrics

import "github.com/san-kum/sortviz/internal/trace"

// Inversions tracks how far the latest snapshot is from sorted.
type Inversions struct {
	name    string
	current int
}

func NewInversions() *Inversions {
	return &Inversions{
		name: "inversions",
	}
}

func (m *Inversions) Name() string {
	return m.name
}

func (m *Inversions) Observe(step trace.Step) {
	m.current = step.Values().Inversions()
}

func (m *Inversions) Value() float64 {
	return float64(m.current)
}

func (m *Inversions) Reset() {
	m.current = 0
}

// Sortedness returns 1 for a sorted sequence and 0 for a reversed one.
func Sortedness(s trace.Sequence) float64 {
	n := len(s)
	if n < 2 {
		return 1.0
	}
	worst := n * (n - 1) / 2
	return 1.0 - float64(s.Inversions())/float64(worst)
}

// Defaults returns the metrics every session reports.
func Defaults() []trace.Metric {
	return []trace.Metric{
		NewStepCount(),
		NewSwaps(),
		NewInversions(),
	}
}
