package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"csplay/internal/domain"
)

// Save writes the summary of a grading run to the configured JSON output file.
func (s *JSONStorage) Save(grades []domain.Grade, duration time.Duration, workers int) error {
	output := BuildOutput(grades, duration, workers, s.now())
	return s.SaveOutput(&output)
}

// Load reads the last grading run from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.GradesOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.GradesOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file (e.g. after resolving failures).
func (s *JSONStorage) SaveOutput(output *domain.GradesOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
