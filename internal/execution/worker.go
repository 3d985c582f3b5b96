package execution

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"csplay/internal/domain"
)

// WorkerPool grades submissions in parallel
type WorkerPool struct {
	grader   *Grader
	workers  int
	progress Progress
}

// NewWorkerPool creates a new WorkerPool; workers below one means one
func NewWorkerPool(grader *Grader, workers int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	return &WorkerPool{grader: grader, workers: workers}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// Execute grades every submission and returns the grades in submission order. With
// failFast, submissions not yet started when one fails are skipped and left out.
func (wp *WorkerPool) Execute(ctx context.Context, subs []domain.Submission, failFast bool) ([]domain.Grade, time.Duration, error) {
	if len(subs) == 0 {
		return nil, 0, nil
	}
	startTime := time.Now()

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	g := new(errgroup.Group)
	g.SetLimit(wp.workers)

	grades := make([]domain.Grade, len(subs))
	graded := make([]bool, len(subs))

	var mu sync.Mutex
	var completed, passed, failed int

	for i, sub := range subs {
		if runCtx.Err() != nil {
			break
		}
		i, sub := i, sub
		g.Go(func() error {
			if runCtx.Err() != nil {
				return nil
			}
			grade := wp.grader.Grade(runCtx, sub)

			mu.Lock()
			defer mu.Unlock()
			if failFast && runCtx.Err() != nil {
				// lost the race against an earlier failure
				return nil
			}
			grades[i], graded[i] = grade, true
			completed++
			if grade.Passed() {
				passed++
			} else {
				failed++
				if failFast {
					stop()
				}
			}
			if wp.progress != nil {
				wp.progress.Update(completed, passed, failed)
			}
			return nil
		})
	}
	_ = g.Wait()

	if wp.progress != nil {
		wp.progress.Finish()
	}

	out := make([]domain.Grade, 0, completed)
	for i, ok := range graded {
		if ok {
			out = append(out, grades[i])
		}
	}
	return out, time.Since(startTime), ctx.Err()
}
