package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/trace"
)

const (
	DefaultAlgorithm = "bubble"
	DefaultDelayMs   = 500
	DefaultSize      = 10
	DefaultBarScale  = 1
	DefaultTheme     = "chalkboard"

	MaxDelayMs = 5000
	MaxSize    = 200
)

type Config struct {
	Algorithm string         `yaml:"algorithm"`
	DelayMs   int            `yaml:"delay_ms"`
	Delays    map[string]int `yaml:"delays,omitempty"`
	Initial   []int          `yaml:"initial,omitempty"`
	Size      int            `yaml:"size"`
	BarScale  int            `yaml:"bar_scale"`
	Seed      int64          `yaml:"seed"`
	Policy    string         `yaml:"policy"`
	Theme     string         `yaml:"theme"`
	Record    bool           `yaml:"record"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: DefaultAlgorithm,
		DelayMs:   DefaultDelayMs,
		Size:      DefaultSize,
		BarScale:  DefaultBarScale,
		Policy:    session.PolicyReject.String(),
		Theme:     DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	reg := algorithms.NewRegistry()
	if !reg.Has(c.Algorithm) {
		return fmt.Errorf("algorithm %q: %w", c.Algorithm, trace.ErrInvalidAlgorithm)
	}
	if err := checkDelay("delay_ms", c.DelayMs); err != nil {
		return err
	}
	for name, ms := range c.Delays {
		if !reg.Has(name) {
			return fmt.Errorf("delays: algorithm %q: %w", name, trace.ErrInvalidAlgorithm)
		}
		if err := checkDelay("delays."+name, ms); err != nil {
			return err
		}
	}
	if len(c.Initial) == 0 && (c.Size < 0 || c.Size > MaxSize) {
		return fmt.Errorf("size %d out of range [0, %d]", c.Size, MaxSize)
	}
	if len(c.Initial) > MaxSize {
		return fmt.Errorf("initial sequence has %d values, max %d", len(c.Initial), MaxSize)
	}
	if c.BarScale < 0 {
		return fmt.Errorf("bar_scale must not be negative, got %d", c.BarScale)
	}
	if _, err := session.ParsePolicy(c.Policy); err != nil {
		return err
	}
	return nil
}

func checkDelay(field string, ms int) error {
	if ms < 0 || ms > MaxDelayMs {
		return fmt.Errorf("%s %d out of range [0, %d]", field, ms, MaxDelayMs)
	}
	return nil
}

// InitialSequence returns the explicit initial values, or 1..Size.
func (c *Config) InitialSequence() trace.Sequence {
	if len(c.Initial) > 0 {
		return trace.Sequence(c.Initial).Clone()
	}
	return trace.Ascending(c.Size)
}

func (c *Config) StepDelay(algorithm string) time.Duration {
	if ms, ok := c.Delays[algorithm]; ok {
		return time.Duration(ms) * time.Millisecond
	}
	return time.Duration(c.DelayMs) * time.Millisecond
}

// Session converts the pacing and policy fields for a session.Controller.
// Policy is assumed valid; an unknown value falls back to reject.
func (c *Config) Session() session.Config {
	policy, _ := session.ParsePolicy(c.Policy)
	delays := make(map[string]time.Duration, len(c.Delays))
	for name := range c.Delays {
		delays[name] = c.StepDelay(name)
	}
	return session.Config{
		Delay:  time.Duration(c.DelayMs) * time.Millisecond,
		Delays: delays,
		Policy: policy,
		Record: c.Record,
		Seed:   c.Seed,
	}
}

func (c *Config) Clone() *Config {
	out := *c
	if c.Delays != nil {
		out.Delays = make(map[string]int, len(c.Delays))
		for k, v := range c.Delays {
			out.Delays[k] = v
		}
	}
	out.Initial = append([]int(nil), c.Initial...)
	return &out
}
