package automation

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/shuffle"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/trace"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of sorting runs
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Runs        []ScenarioRun `yaml:"runs"`
}

// ScenarioRun is a single run in a scenario. Initial wins over Size.
type ScenarioRun struct {
	Algorithm string `yaml:"algorithm"`
	Size      int    `yaml:"size"`
	Initial   []int  `yaml:"initial"`
	Seed      int64  `yaml:"seed"`
	Shuffle   bool   `yaml:"shuffle"`
	DelayMs   int    `yaml:"delay_ms"`
	SaveAs    string `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if len(s.Runs) == 0 {
		return fmt.Errorf("no runs")
	}
	reg := algorithms.NewRegistry()
	for i, run := range s.Runs {
		if !reg.Has(run.Algorithm) {
			return fmt.Errorf("run %d: algorithm %q: %w", i+1, run.Algorithm, trace.ErrInvalidAlgorithm)
		}
		if len(run.Initial) == 0 && (run.Size < 0 || run.Size > config.MaxSize) {
			return fmt.Errorf("run %d: size %d out of range [0, %d]", i+1, run.Size, config.MaxSize)
		}
		if run.DelayMs < 0 || run.DelayMs > config.MaxDelayMs {
			return fmt.Errorf("run %d: delay_ms %d out of range [0, %d]", i+1, run.DelayMs, config.MaxDelayMs)
		}
	}
	return nil
}

// Input builds the run's starting sequence.
func (r ScenarioRun) Input() trace.Sequence {
	seq := trace.Ascending(r.Size)
	if len(r.Initial) > 0 {
		seq = trace.Sequence(r.Initial).Clone()
	}
	if r.Shuffle {
		seq = shuffle.New(r.Seed).Shuffle(seq)
	}
	return seq
}

// Runner plays scenarios through one Controller.
type Runner struct {
	ctrl   *session.Controller
	store  *storage.Store
	logger zerolog.Logger
}

// NewRunner saves runs marked save_as into store; store may be nil.
func NewRunner(ctrl *session.Controller, store *storage.Store, logger zerolog.Logger) *Runner {
	return &Runner{ctrl: ctrl, store: store, logger: logger}
}

// Run executes all runs in order and stops at the first failure.
func (r *Runner) Run(ctx context.Context, scenario *Scenario) ([]*session.Result, error) {
	results := make([]*session.Result, 0, len(scenario.Runs))

	for i, run := range scenario.Runs {
		cfg := session.DefaultConfig()
		cfg.Delay = time.Duration(run.DelayMs) * time.Millisecond
		cfg.Record = run.SaveAs != "" && r.store != nil
		cfg.Seed = run.Seed
		r.ctrl.SetConfig(cfg)

		input := run.Input()
		r.logger.Info().
			Str("scenario", scenario.Name).
			Int("run", i+1).
			Int("of", len(scenario.Runs)).
			Str("algorithm", run.Algorithm).
			Str("input", input.String()).
			Msg("scenario run")

		res, err := r.ctrl.Run(ctx, input, run.Algorithm)
		if err != nil {
			return results, fmt.Errorf("run %d: %w", i+1, err)
		}
		results = append(results, res)

		if cfg.Record {
			id, err := r.store.Save(res, storage.Meta{Seed: run.Seed, Name: run.SaveAs})
			if err != nil {
				return results, fmt.Errorf("run %d save: %w", i+1, err)
			}
			r.logger.Info().Str("run_id", id).Str("name", run.SaveAs).Msg("run saved")
		}
	}

	return results, nil
}

// RunScenario executes a scenario on a fresh Controller.
func RunScenario(ctx context.Context, scenario *Scenario, registry *algorithms.Registry, store *storage.Store, logger zerolog.Logger) ([]*session.Result, error) {
	ctrl := session.New(nil, registry, session.DefaultConfig())
	ctrl.SetLogger(logger)
	return NewRunner(ctrl, store, logger).Run(ctx, scenario)
}
