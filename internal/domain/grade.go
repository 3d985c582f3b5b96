package domain

import "time"

// Submission is a learner's source file waiting to be graded
type Submission struct {
	Path   string // Path the source was read from, or a label for inline sources
	Source string
}

// Grade is the result of grading one submission against a topic corpus
type Grade struct {
	ID         string
	Topic      string
	Submission Submission
	Report     Report
	Err        error // Submission could not be loaded or bound; Report is empty
	Duration   time.Duration
	GradedAt   time.Time
}

// Passed reports whether the submission loaded and every check passed or was disabled
func (g Grade) Passed() bool {
	return g.Err == nil && g.Report.Passed
}
