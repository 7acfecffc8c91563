package session

import (
	"fmt"
	"time"

	"github.com/san-kum/sortviz/internal/trace"
)

// Policy decides what a run request does while another session is active.
type Policy int

const (
	// PolicyReject refuses the request with trace.ErrSessionActive.
	PolicyReject Policy = iota
	// PolicySupersede cancels the active session and starts the new one.
	PolicySupersede
)

func (p Policy) String() string {
	switch p {
	case PolicyReject:
		return "reject"
	case PolicySupersede:
		return "supersede"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "reject":
		return PolicyReject, nil
	case "supersede":
		return PolicySupersede, nil
	}
	return PolicyReject, fmt.Errorf("unknown policy %q (want reject or supersede)", s)
}

type Config struct {
	// Delay is the pause after each published Step.
	Delay time.Duration
	// Delays overrides Delay per algorithm id.
	Delays map[string]time.Duration
	Policy Policy
	// Record keeps every Step in the Result.
	Record bool
	// Seed drives the randomizer; 0 picks a time-based seed.
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		Delay:  500 * time.Millisecond,
		Policy: PolicyReject,
	}
}

// StepDelay returns the pacing used for algorithm.
func (c Config) StepDelay(algorithm string) time.Duration {
	if d, ok := c.Delays[algorithm]; ok {
		return d
	}
	return c.Delay
}

type Result struct {
	ID        string
	Algorithm string
	Initial   trace.Sequence
	Final     trace.Sequence
	StepCount int
	Steps     []trace.Step
	Delay     time.Duration
	Started   time.Time
	Elapsed   time.Duration
	Metrics   map[string]float64
}
