package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/trace"
)

const (
	metadataFile = "metadata.json"
	stepsFile    = "steps.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// Meta carries run settings the Result does not know about.
type Meta struct {
	Seed   int64
	Preset string
	Name   string
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name,omitempty"`
	Algorithm string             `json:"algorithm"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Preset    string             `json:"preset,omitempty"`
	DelayMs   int64              `json:"delay_ms"`
	Size      int                `json:"size"`
	Initial   []int              `json:"initial"`
	Final     []int              `json:"final"`
	StepCount int                `json:"step_count"`
	Recorded  int                `json:"recorded"`
	ElapsedMs int64              `json:"elapsed_ms"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes result under a directory named by its session id and returns
// that id.
func (s *Store) Save(result *session.Result, meta Meta) (string, error) {
	runID := result.ID
	if runID == "" {
		return "", fmt.Errorf("save: result has no session id")
	}
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	md := RunMetadata{
		ID:        runID,
		Name:      meta.Name,
		Algorithm: result.Algorithm,
		Timestamp: result.Started,
		Seed:      meta.Seed,
		Preset:    meta.Preset,
		DelayMs:   result.Delay.Milliseconds(),
		Size:      len(result.Initial),
		Initial:   result.Initial,
		Final:     result.Final,
		StepCount: result.StepCount,
		Recorded:  len(result.Steps),
		ElapsedMs: result.Elapsed.Milliseconds(),
		Metrics:   result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), md); err != nil {
		return "", err
	}
	if err := writeSteps(filepath.Join(runDir, stepsFile), len(result.Initial), result.Steps); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSteps(path string, size int, steps []trace.Step) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"step", "h0", "h1"}
	for i := 0; i < size; i++ {
		header = append(header, fmt.Sprintf("v%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, step := range steps {
		hl := step.Highlights()
		row := []string{strconv.Itoa(i), "-1", "-1"}
		for j, h := range hl {
			row[1+j] = strconv.Itoa(h)
		}
		for _, v := range step.Values() {
			row = append(row, strconv.Itoa(v))
		}
		if err := w.Write(row); err != nil {
			return &trace.StepError{Step: i, Wrapped: err}
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].ID < runs[j].ID })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSteps reads the recorded steps of a run. A run saved without
// recording yields trace.ErrEmptyRun.
func (s *Store) LoadSteps(runID string) ([]trace.Step, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, stepsFile))
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("run %s: %w", runID, trace.ErrEmptyRun)
	}

	steps := make([]trace.Step, 0, len(records)-1)
	for i, record := range records[1:] {
		step, err := parseStep(record)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", runID, &trace.StepError{Step: i, Wrapped: err})
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func parseStep(record []string) (trace.Step, error) {
	if len(record) < 3 {
		return trace.Step{}, fmt.Errorf("expected at least 3 columns, got %d", len(record))
	}

	ints := make([]int, len(record))
	for i, field := range record {
		v, err := strconv.Atoi(field)
		if err != nil {
			return trace.Step{}, fmt.Errorf("column %d: %w", i, err)
		}
		ints[i] = v
	}

	var hl []int
	for _, h := range ints[1:3] {
		if h >= 0 {
			hl = append(hl, h)
		}
	}
	return trace.NewStep(trace.Sequence(ints[3:]), hl...), nil
}
