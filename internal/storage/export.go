package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is a self-contained JSON view of one run.
type ExportData struct {
	RunMetadata
	Steps []ExportStep `json:"steps,omitempty"`
}

type ExportStep struct {
	Values     []int `json:"values"`
	Highlights []int `json:"highlights"`
}

// Export collects metadata and, when recorded, the steps of a run.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	data := &ExportData{RunMetadata: *meta}
	if meta.Recorded == 0 {
		return data, nil
	}

	steps, err := s.LoadSteps(runID)
	if err != nil {
		return nil, err
	}
	data.Steps = make([]ExportStep, len(steps))
	for i, step := range steps {
		hl := step.Highlights()
		if hl == nil {
			hl = []int{}
		}
		data.Steps[i] = ExportStep{Values: step.Values(), Highlights: hl}
	}
	return data, nil
}

func ExportJSON(w io.Writer, data *ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSONFile(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, data)
}
