package execution

import (
	"context"
	"time"

	"csplay/internal/domain"
)

// Executor grades a batch of submissions
type Executor interface {
	Execute(ctx context.Context, subs []domain.Submission, failFast bool) ([]domain.Grade, time.Duration, error)
}

// Progress is told about every finished submission
type Progress interface {
	Update(done, passed, failed int)
	Finish()
}
