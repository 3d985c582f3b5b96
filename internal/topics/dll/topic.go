package dll

import (
	"context"
	"errors"

	"csplay/internal/console"
	"csplay/internal/domain"
	"csplay/internal/harness"
	"csplay/internal/loader"
)

// Topic grades doubly linked list submissions
type Topic struct {
	loader *loader.Loader
	corpus harness.Corpus[Factory]
}

// NewTopic creates the topic; l evaluates submissions
func NewTopic(l *loader.Loader) *Topic {
	if l == nil {
		l = loader.New()
	}
	return &Topic{loader: l, corpus: Corpus()}
}

func (t *Topic) Name() string  { return t.corpus.Topic }
func (t *Topic) Title() string { return "Doubly Linked List" }

func (t *Topic) Checks() []harness.Info {
	return t.corpus.Info()
}

// Grade binds the submission and runs the corpus. A submission without a constructor
// is still graded, against a nil Factory, so the existence check reports it.
func (t *Topic) Grade(ctx context.Context, sub domain.Submission, req harness.Request) (domain.Report, error) {
	out := console.NewLineWriter(req.Console)
	defer out.Flush()

	factory, err := Bind(ctx, t.loader, sub, out)
	if err != nil && !errors.Is(err, ErrNoConstructor) {
		return domain.Report{}, err
	}
	return t.run(factory, req), nil
}

func (t *Topic) Reference(req harness.Request) domain.Report {
	return t.run(Solution, req)
}

func (t *Topic) run(factory Factory, req harness.Request) domain.Report {
	runner := harness.NewRunner[Factory](req.Options()...)
	return runner.Run(t.corpus.Filter(req.Filter), factory)
}
