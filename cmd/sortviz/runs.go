package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/automation"
	"github.com/san-kum/sortviz/internal/bench"
	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/spf13/cobra"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tALGORITHM\tTIME\tSIZE\tSTEPS\tDELAY")

	for _, run := range runs {
		name := run.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%dms\n",
			run.ID,
			name,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.StepCount,
			run.DelayMs,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	steps, err := st.LoadSteps(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s\n", meta.Algorithm)
	fmt.Printf("steps: %d\n\n", len(steps))

	inversions := make([]float64, len(steps))
	sortedness := make([]float64, len(steps))
	for i, step := range steps {
		inversions[i] = float64(step.Values().Inversions())
		sortedness[i] = metrics.Sortedness(step.Values()) * 100
	}

	fmt.Println(asciigraph.Plot(inversions,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("inversions per step"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(sortedness,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("sortedness %"),
	))
	return nil
}

func output() (io.Writer, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	data, err := st.Export(args[0])
	if err != nil {
		return err
	}

	if outFile != "" {
		if err := storage.ExportJSONFile(outFile, data); err != nil {
			return fmt.Errorf("export %s: %w", args[0], err)
		}
		fmt.Fprintf(os.Stderr, "exported %s to %s\n", args[0], outFile)
		return nil
	}
	return storage.ExportJSON(os.Stdout, data)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	steps, err := st.LoadSteps(args[0])
	if err != nil {
		return err
	}

	var svg string
	if chart {
		svg = export.InversionsToSVG(steps, 800, 200, "#00ffff")
		if svg == "" {
			return fmt.Errorf("run %s: need at least 2 steps for a chart", args[0])
		}
	} else {
		idx := stepIdx
		if idx < 0 {
			idx = len(steps) - 1
		}
		if idx >= len(steps) {
			return fmt.Errorf("step %d out of range [0, %d)", idx, len(steps))
		}
		svg = export.StepToSVG(steps[idx], svgScale)
	}

	w, done, err := output()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, svg+"\n"); err != nil {
		done()
		return err
	}
	return done()
}

func runBench(cmd *cobra.Command, args []string) error {
	ensemble := bench.NewEnsemble(algorithms.NewRegistry(), benchSizes, benchRuns, benchSeed)
	if len(only) > 0 {
		ensemble.Only(only...)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	samples, err := ensemble.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%d runs per size, seeds %d..%d\n\n", benchRuns, benchSeed, benchSeed+int64(benchRuns)-1)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tSIZE\tMEAN STEPS\tMIN\tMAX\tMEAN SWAPS\tSTEPS/INV")
	for _, s := range bench.Summarize(samples) {
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%d\t%d\t%.1f\t%.2f\n",
			s.Algorithm, s.Size, s.MeanSteps, s.MinSteps, s.MaxSteps, s.MeanSwaps, s.StepsPerInversion)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := automation.RunScenario(ctx, sc, algorithms.NewRegistry(), st, logger)
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tALGORITHM\tSIZE\tSTEPS\tELAPSED\tID")
	for i, res := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%v\t%s\n", i+1, res.Algorithm, len(res.Initial), res.StepCount, res.Elapsed, res.ID)
	}
	return w.Flush()
}
