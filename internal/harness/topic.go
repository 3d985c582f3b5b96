package harness

import (
	"context"

	"go.uber.org/zap"

	"csplay/internal/console"
	"csplay/internal/domain"
)

// Request carries the per-run settings a topic hands to its Runner
type Request struct {
	Filter  string // descriptor name pattern, empty for all
	Console console.Sink
	Logger  *zap.Logger
	Hooks   Hooks
}

// Options turns the request into Runner options
func (r Request) Options() []Option {
	return []Option{WithHooks(r.Hooks), WithConsole(r.Console), WithLogger(r.Logger)}
}

// Topic is one gradable data structure: its corpus plus the way submissions bind to it
type Topic interface {
	Name() string
	Title() string
	Checks() []Info
	// Grade loads the submission and runs the corpus against it. An error means the
	// submission could not be loaded; check failures are reported in the Report.
	Grade(ctx context.Context, sub domain.Submission, req Request) (domain.Report, error)
	// Reference runs the corpus against the built-in solution
	Reference(req Request) domain.Report
}
