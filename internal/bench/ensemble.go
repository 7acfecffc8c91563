package bench

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sort"
	"sync"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/shuffle"
	"github.com/san-kum/sortviz/internal/trace"
)

// Sample is the outcome of one unpaced run.
type Sample struct {
	Algorithm  string
	Size       int
	Seed       int64
	Steps      int
	Swaps      int
	Inversions int
}

// Ensemble sorts the same seeded shuffles with every algorithm.
type Ensemble struct {
	registry   *algorithms.Registry
	algorithms []string
	sizes      []int
	runs       int
	seedStart  int64
}

func NewEnsemble(registry *algorithms.Registry, sizes []int, runs int, seedStart int64) *Ensemble {
	return &Ensemble{
		registry:   registry,
		algorithms: registry.List(),
		sizes:      sizes,
		runs:       runs,
		seedStart:  seedStart,
	}
}

// Only restricts the ensemble to the given algorithms.
func (e *Ensemble) Only(names ...string) *Ensemble {
	e.algorithms = names
	return e
}

// Run executes every (algorithm, size, run) combination in its own
// goroutine. Run i of a size uses seed seedStart+i for every algorithm.
func (e *Ensemble) Run(ctx context.Context) ([]Sample, error) {
	for _, name := range e.algorithms {
		if !e.registry.Has(name) {
			return nil, fmt.Errorf("algorithm %q: %w", name, trace.ErrInvalidAlgorithm)
		}
	}
	if e.runs < 0 {
		return nil, fmt.Errorf("runs must not be negative, got %d", e.runs)
	}
	for _, size := range e.sizes {
		if size < 0 || size > config.MaxSize {
			return nil, fmt.Errorf("size %d out of range [0, %d]", size, config.MaxSize)
		}
	}

	type job struct {
		algorithm string
		size      int
		seed      int64
	}
	jobs := make([]job, 0, len(e.algorithms)*len(e.sizes)*e.runs)
	for _, name := range e.algorithms {
		for _, size := range e.sizes {
			for i := 0; i < e.runs; i++ {
				jobs = append(jobs, job{name, size, e.seedStart + int64(i)})
			}
		}
	}

	samples := make([]Sample, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func(idx int, j job) {
			defer wg.Done()
			samples[idx], errs[idx] = e.runOne(ctx, j.algorithm, j.size, j.seed)
		}(i, j)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return samples, nil
}

func (e *Ensemble) runOne(ctx context.Context, algorithm string, size int, seed int64) (Sample, error) {
	input := shuffle.New(seed).Shuffle(trace.Ascending(size))

	cfg := session.DefaultConfig()
	cfg.Delay = 0
	ctrl := session.New(input, e.registry, cfg)
	steps, swaps := metrics.NewStepCount(), metrics.NewSwaps()
	ctrl.AddMetric(steps)
	ctrl.AddMetric(swaps)

	res, err := ctrl.Run(ctx, input, algorithm)
	if err != nil {
		return Sample{}, fmt.Errorf("%s size %d seed %d: %w", algorithm, size, seed, err)
	}
	if !res.Final.IsSorted() {
		return Sample{}, fmt.Errorf("%s size %d seed %d: result %v not sorted", algorithm, size, seed, res.Final)
	}

	return Sample{
		Algorithm:  algorithm,
		Size:       size,
		Seed:       seed,
		Steps:      res.StepCount,
		Swaps:      int(swaps.Value()),
		Inversions: input.Inversions(),
	}, nil
}

type Summary struct {
	Algorithm string
	Size      int
	Runs      int
	MeanSteps float64
	MinSteps  int
	MaxSteps  int
	MeanSwaps float64
	// StepsPerInversion is mean steps divided by mean initial inversions.
	StepsPerInversion float64
}

// Summarize groups samples by algorithm and size, ordered by algorithm menu
// position and then size.
func Summarize(samples []Sample) []Summary {
	type key struct {
		algorithm string
		size      int
	}
	groups := make(map[key][]Sample)
	for _, s := range samples {
		k := key{s.Algorithm, s.Size}
		groups[k] = append(groups[k], s)
	}

	out := make([]Summary, 0, len(groups))
	for k, group := range groups {
		sum := Summary{
			Algorithm: k.algorithm,
			Size:      k.size,
			Runs:      len(group),
			MinSteps:  math.MaxInt,
		}
		var steps, swaps, inv float64
		for _, s := range group {
			steps += float64(s.Steps)
			swaps += float64(s.Swaps)
			inv += float64(s.Inversions)
			sum.MinSteps = min(sum.MinSteps, s.Steps)
			sum.MaxSteps = max(sum.MaxSteps, s.Steps)
		}
		n := float64(len(group))
		sum.MeanSteps = steps / n
		sum.MeanSwaps = swaps / n
		if inv > 0 {
			sum.StepsPerInversion = steps / inv
		}
		out = append(out, sum)
	}

	sort.Slice(out, func(i, j int) bool {
		oi, oj := order(out[i].Algorithm), order(out[j].Algorithm)
		if oi != oj {
			return oi < oj
		}
		return out[i].Size < out[j].Size
	})
	return out
}

func order(name string) int {
	if i := slices.Index(algorithms.Names, name); i >= 0 {
		return i
	}
	return len(algorithms.Names)
}
