package execution

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"csplay/internal/console"
	"csplay/internal/domain"
	"csplay/internal/harness"
)

// ErrTimeout marks a submission whose corpus run did not finish in time
var ErrTimeout = errors.New("grading timed out")

// Grader grades one submission at a time against a topic
type Grader struct {
	topic   harness.Topic
	timeout time.Duration
	filter  string
	hooks   harness.Hooks
	logger  *zap.Logger
	sinkFor func(domain.Submission) console.Sink
}

// GraderOption configures a Grader
type GraderOption func(*Grader)

// WithTimeout bounds each submission; zero disables the bound
func WithTimeout(d time.Duration) GraderOption {
	return func(g *Grader) { g.timeout = d }
}

// WithCheckFilter restricts the corpus to descriptors matching pattern
func WithCheckFilter(pattern string) GraderOption {
	return func(g *Grader) { g.filter = pattern }
}

// WithHooks sets lifecycle hooks run around every check
func WithHooks(h harness.Hooks) GraderOption {
	return func(g *Grader) { g.hooks = h }
}

// WithLogger sets the diagnostics logger
func WithLogger(logger *zap.Logger) GraderOption {
	return func(g *Grader) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithConsole picks the sink each submission's report lines and output go to
func WithConsole(sinkFor func(domain.Submission) console.Sink) GraderOption {
	return func(g *Grader) {
		if sinkFor != nil {
			g.sinkFor = sinkFor
		}
	}
}

// NewGrader creates a Grader for topic
func NewGrader(topic harness.Topic, opts ...GraderOption) *Grader {
	g := &Grader{
		topic:   topic,
		logger:  zap.NewNop(),
		sinkFor: func(domain.Submission) console.Sink { return console.Discard },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Topic returns the topic being graded
func (g *Grader) Topic() harness.Topic {
	return g.topic
}

// Grade loads and grades sub. Load failures and timeouts are reported in Grade.Err.
func (g *Grader) Grade(ctx context.Context, sub domain.Submission) domain.Grade {
	start := time.Now()
	grade := domain.Grade{
		ID:         newID(),
		Topic:      g.topic.Name(),
		Submission: sub,
		GradedAt:   start,
	}
	logger := g.logger.With(zap.String("grade", grade.ID), zap.String("submission", sub.Path))

	if sub.Source == "" {
		src, err := os.ReadFile(sub.Path)
		if err != nil {
			grade.Err = fmt.Errorf("read submission: %w", err)
			grade.Duration = time.Since(start)
			return grade
		}
		grade.Submission.Source = string(src)
	}

	grade.Report, grade.Err = g.run(ctx, grade.Submission)
	grade.Duration = time.Since(start)

	if grade.Err != nil {
		logger.Warn("submission not graded", zap.Error(grade.Err))
	} else {
		logger.Debug("submission graded", zap.Bool("passed", grade.Report.Passed), zap.Duration("duration", grade.Duration))
	}
	return grade
}

// run grades in a goroutine so a stuck submission can be abandoned. The harness
// itself is synchronous; an abandoned goroutine keeps running until it returns.
func (g *Grader) run(ctx context.Context, sub domain.Submission) (domain.Report, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	req := harness.Request{
		Filter:  g.filter,
		Console: g.sinkFor(sub),
		Logger:  g.logger,
		Hooks:   g.hooks,
	}

	type outcome struct {
		report domain.Report
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		report, err := g.topic.Grade(ctx, sub, req)
		done <- outcome{report: report, err: err}
	}()

	select {
	case out := <-done:
		return out.report, out.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.Report{}, fmt.Errorf("%w after %s", ErrTimeout, g.timeout)
		}
		return domain.Report{}, ctx.Err()
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
