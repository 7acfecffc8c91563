package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/shuffle"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/trace"
	"github.com/san-kum/sortviz/internal/tui"
	"github.com/san-kum/sortviz/internal/viz"
	"github.com/spf13/cobra"
)

// resolveConfig layers defaults, --preset, --config and explicitly set flags,
// in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Lookup("delay") != nil && flags.Changed("delay") {
		cfg.DelayMs = delayMs
		cfg.Delays = nil
	}
	if flags.Lookup("seed") != nil && flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Lookup("size") != nil && flags.Changed("size") {
		cfg.Size = size
		cfg.Initial = nil
	}
	if flags.Lookup("policy") != nil && flags.Changed("policy") {
		cfg.Policy = policy
	}
	if save {
		cfg.Record = true
	}
	if len(args) > 0 {
		cfg.Algorithm = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// initConfig writes the resolved configuration as yaml, by default to
// sortviz.yaml.
func initConfig(cmd *cobra.Command, args []string) error {
	path := "sortviz.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func initialSequence(cfg *config.Config) trace.Sequence {
	seq := cfg.InitialSequence()
	if doShuffle {
		seq = shuffle.New(cfg.Seed).Shuffle(seq)
	}
	return seq
}

func newController(cfg *config.Config, initial trace.Sequence, logger zerolog.Logger) *session.Controller {
	ctrl := session.New(initial, algorithms.NewRegistry(), cfg.Session())
	ctrl.SetLogger(logger)
	for _, m := range metrics.Defaults() {
		ctrl.AddMetric(m)
	}
	return ctrl
}

func saveResult(res *session.Result, cfg *config.Config, logger zerolog.Logger) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	id, err := st.Save(res, storage.Meta{Seed: cfg.Seed, Preset: preset})
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}
	logger.Info().Str("run_id", id).Str("dir", dataDir).Msg("run saved")
	return id, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}

	logger, closeLog, err := newFileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	ctrl := newController(cfg, cfg.InitialSequence(), logger)

	opts := viz.Options{
		ConfigPath: configFile,
		Logger:     logger,
		AltScreen:  true,
	}
	if cfg.Record {
		opts.OnResult = func(res *session.Result) {
			if _, err := saveResult(res, cfg, logger); err != nil {
				logger.Error().Err(err).Msg("save failed")
			}
		}
	}
	return viz.Run(ctrl, cfg, opts)
}

func runSort(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	input := initialSequence(cfg)
	ctrl := newController(cfg, input, logger)

	renderer := tui.NewLiveRenderer(os.Stdout, frameRate)
	renderer.SetClear(!noClear)
	ctrl.AddObserver(renderer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderer.Start()
	res, err := ctrl.Run(ctx, input, cfg.Algorithm)
	renderer.Stop()
	if err != nil {
		return err
	}

	fmt.Printf("\nalgorithm: %s\n", res.Algorithm)
	fmt.Printf("initial:   %s\n", res.Initial)
	fmt.Printf("final:     %s\n", res.Final)
	fmt.Printf("steps:     %d\n", res.StepCount)
	fmt.Printf("elapsed:   %v\n", res.Elapsed)
	printMetrics(res.Metrics)

	if cfg.Record {
		id, err := saveResult(res, cfg, logger)
		if err != nil {
			return err
		}
		fmt.Printf("run id:    %s\n", id)
	}
	return nil
}

func printMetrics(values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.0f\n", name, values[name])
	}
}

func traceSort(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	alg, err := algorithms.NewRegistry().Get(cfg.Algorithm)
	if err != nil {
		return err
	}

	input := initialSequence(cfg)
	fmt.Printf("%s %s\n", alg.Name(), input)

	i := 0
	for step := range trace.Steps(alg, input) {
		fmt.Printf("%4d  %s\n", i, step)
		i++
	}
	fmt.Printf("%d steps\n", i)
	return nil
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION")
	for _, name := range algorithms.NewRegistry().List() {
		fmt.Fprintf(w, "%s\t%s\n", name, algorithms.Info[name])
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tALGORITHM\tDELAY\tINPUT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		delay := fmt.Sprintf("%dms", p.DelayMs)
		if len(p.Delays) > 0 {
			delay += " (per algorithm)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, p.Algorithm, delay, p.InitialSequence())
	}
	return w.Flush()
}
