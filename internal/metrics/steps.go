package metrics

import "github.com/san-kum/sortviz/internal/trace"

type StepCount struct {
	name  string
	count int
}

func NewStepCount() *StepCount {
	return &StepCount{
		name: "steps",
	}
}

func (s *StepCount) Name() string {
	return s.name
}

func (s *StepCount) Observe(step trace.Step) {
	s.count++
}

func (s *StepCount) Value() float64 {
	return float64(s.count)
}

func (s *StepCount) Reset() {
	s.count = 0
}
