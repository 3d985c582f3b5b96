package harness

import (
	"fmt"

	"go.uber.org/zap"

	"csplay/internal/console"
	"csplay/internal/domain"
)

// Hooks run around the checks of a corpus. Any of them may be nil.
type Hooks struct {
	BeforeAll  func()
	BeforeEach func()
	AfterEach  func()
}

type options struct {
	hooks   Hooks
	console console.Sink
	logger  *zap.Logger
}

// Option configures a Runner
type Option func(*options)

// WithHooks sets the lifecycle hooks
func WithHooks(h Hooks) Option {
	return func(o *options) { o.hooks = h }
}

// WithConsole sets the sink that receives report lines and helper diagnostics
func WithConsole(sink console.Sink) Option {
	return func(o *options) {
		if sink != nil {
			o.console = sink
		}
	}
}

// WithLogger sets the diagnostics logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Runner executes a corpus against one subject, strictly in order and one check at a time.
// It keeps no state between runs.
type Runner[T any] struct {
	opts options
}

// NewRunner creates a Runner
func NewRunner[T any](opts ...Option) *Runner[T] {
	o := options{
		console: console.Discard,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Runner[T]{opts: o}
}

// Run evaluates every descriptor of the corpus against subject and returns a fresh report.
// Failures are contained per descriptor; Run itself never panics.
func (r *Runner[T]) Run(corpus Corpus[T], subject T) domain.Report {
	env := Env[T]{Name: corpus.Name, Subject: subject, Console: r.opts.console}
	report := domain.Report{
		Passed:  true,
		Results: make([]domain.Result, 0, len(corpus.Descriptors)),
	}

	setupErr := guard(r.opts.hooks.BeforeAll)
	if setupErr != "" {
		r.opts.logger.Warn("beforeAll hook panicked", zap.String("topic", corpus.Topic), zap.String("panic", setupErr))
	}

	for _, d := range corpus.Descriptors {
		var res domain.Result
		if setupErr != "" {
			res = domain.Result{Name: d.Name, Outcome: domain.Fail, Message: d.Message, Detail: "beforeAll: " + setupErr}
		} else {
			res = r.runOne(env, d)
		}

		if res.Outcome == domain.Fail {
			report.Passed = false
		}
		report.Results = append(report.Results, res)
		r.opts.console.Log(res.String())
		r.opts.logger.Debug("check evaluated",
			zap.String("topic", corpus.Topic),
			zap.String("check", d.Name),
			zap.Stringer("outcome", res.Outcome),
			zap.String("detail", res.Detail))
	}

	passed, failed, disabled := report.Counts()
	r.opts.logger.Info("corpus run finished",
		zap.String("topic", corpus.Topic),
		zap.Bool("passed", report.Passed),
		zap.Int("pass", passed),
		zap.Int("fail", failed),
		zap.Int("disabled", disabled))
	return report
}

func (r *Runner[T]) runOne(env Env[T], d Descriptor[T]) domain.Result {
	res := domain.Result{Name: d.Name, Outcome: domain.Fail, Message: d.Message}

	verdict, detail := evaluate(env, d, r.opts.hooks.BeforeEach)
	if afterErr := guard(r.opts.hooks.AfterEach); afterErr != "" && detail == "" {
		verdict, detail = VerdictFalse, "afterEach: "+afterErr
	}
	if detail != "" {
		res.Detail = detail
		return res
	}

	switch verdict {
	case VerdictTrue:
		res.Outcome = domain.Pass
	case VerdictDisabled:
		res.Outcome = domain.Disabled
	default:
		res.Detail = "check returned false"
	}
	return res
}

// evaluate runs beforeEach and the check, turning a panic in either into a detail string
func evaluate[T any](env Env[T], d Descriptor[T], beforeEach func()) (verdict Verdict, detail string) {
	if msg := guard(beforeEach); msg != "" {
		return VerdictFalse, "beforeEach: " + msg
	}
	if d.Check == nil {
		return VerdictFalse, "descriptor has no check"
	}
	defer func() {
		if p := recover(); p != nil {
			verdict, detail = VerdictFalse, fmt.Sprintf("panic: %v", p)
		}
	}()
	return d.Check(env), ""
}

// guard calls fn, returning the recovered panic value as text
func guard(fn func()) (msg string) {
	if fn == nil {
		return ""
	}
	defer func() {
		if p := recover(); p != nil {
			if msg = fmt.Sprint(p); msg == "" {
				msg = "panic"
			}
		}
	}()
	fn()
	return ""
}
