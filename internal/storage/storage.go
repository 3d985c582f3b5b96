package storage

import (
	"time"

	"csplay/internal/config"
	"csplay/internal/domain"
)

// Storage persists and loads grading runs (e.g. for the fails viewer).
type Storage interface {
	Save(grades []domain.Grade, duration time.Duration, workers int) error
	Load() (*domain.GradesOutput, error)
	// SaveOutput writes the full output (e.g. after failures are marked resolved).
	SaveOutput(output *domain.GradesOutput) error
}

// JSONStorage stores runs in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
	now func() time.Time
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg, now: time.Now}
}

// BuildOutput summarises graded submissions. Every failed check becomes one detail entry,
// and a submission that could not be loaded becomes a single "load" entry.
func BuildOutput(grades []domain.Grade, duration time.Duration, workers int, at time.Time) domain.GradesOutput {
	meta := domain.GradesMeta{
		TotalSubmissions: len(grades),
		Duration:         duration.String(),
		DurationSeconds:  duration.Seconds(),
		Workers:          workers,
		Timestamp:        at.Format(time.RFC3339),
	}
	details := []domain.CheckFailure{}

	for _, g := range grades {
		if meta.Topic == "" {
			meta.Topic = g.Topic
		}
		if g.Passed() {
			meta.PassedSubmissions++
		} else {
			meta.FailedSubmissions++
		}

		if g.Err != nil {
			meta.LoadErrors++
			details = append(details, domain.CheckFailure{
				GradeID:    g.ID,
				Submission: g.Submission.Path,
				Topic:      g.Topic,
				CheckName:  "load",
				Message:    "Submission could not be loaded",
				Detail:     g.Err.Error(),
			})
			continue
		}

		_, _, disabled := g.Report.Counts()
		meta.DisabledChecks += disabled
		for _, r := range g.Report.Failures() {
			meta.FailedChecks++
			details = append(details, domain.CheckFailure{
				GradeID:    g.ID,
				Submission: g.Submission.Path,
				Topic:      g.Topic,
				CheckName:  r.Name,
				Message:    r.Message,
				Detail:     r.Detail,
			})
		}
	}

	return domain.GradesOutput{Meta: meta, Details: details}
}
