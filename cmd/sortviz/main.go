package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string

	delayMs   int
	seed      int64
	size      int
	policy    string
	doShuffle bool
	save      bool
	frameRate int
	noClear   bool

	outFile  string
	stepIdx  int
	svgScale float64
	chart    bool

	force bool

	benchSizes []int
	benchRuns  int
	benchSeed  int64
	only       []string
)

// main registers the sortviz commands and runs the interactive UI when no
// subcommand is given. It exits with status 1 when a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "sortviz",
		Short:         "sorting algorithm visualizer",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sortviz", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.Flags().BoolVar(&save, "save", false, "record completed runs to the data directory")

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "sort with a live terminal rendering",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSort,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", false, "record the run to the data directory")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "max frames per second (0 draws every step)")
	runCmd.Flags().BoolVar(&noClear, "no-clear", false, "append frames instead of redrawing")

	traceCmd := &cobra.Command{
		Use:   "trace [algorithm]",
		Short: "print every step without pacing",
		Args:  cobra.MaximumNArgs(1),
		RunE:  traceSort,
	}
	addRunFlags(traceCmd)

	algorithmsCmd := &cobra.Command{
		Use:   "algorithms",
		Short: "list supported algorithms",
		Args:  cobra.NoArgs,
		RunE:  listAlgorithms,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot inversions per step of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and steps as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a recorded step as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&stepIdx, "step", -1, "step index (default last)")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 10, "pixels per value unit")
	exportSVGCmd.Flags().BoolVar(&chart, "chart", false, "plot inversions per step instead of bars")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "compare step counts over seeded random inputs",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().IntSliceVar(&benchSizes, "sizes", []int{10, 50, 100}, "input sizes")
	benchCmd.Flags().IntVar(&benchRuns, "runs", 10, "runs per size")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 1, "first seed")
	benchCmd.Flags().StringSliceVar(&only, "only", nil, "restrict to these algorithms")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file from defaults, --preset and flags",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	addRunFlags(configInitCmd)
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, traceCmd, algorithmsCmd, presetsCmd, listCmd, plotCmd, exportCmd, exportSVGCmd, benchCmd, scenarioCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&delayMs, "delay", 500, "delay per step in ms")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().IntVar(&size, "size", 10, "sequence length 1..size")
	cmd.Flags().StringVar(&policy, "policy", "reject", "overlapping run policy (reject, supersede)")
	cmd.Flags().BoolVar(&doShuffle, "shuffle", false, "shuffle the sequence before sorting")
}
