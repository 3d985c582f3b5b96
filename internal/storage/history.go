package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"csplay/internal/domain"
)

// DefaultHistoryLimit is how many runs Recent returns when no limit is given
const DefaultHistoryLimit = 20

// HistoryEntry is one recorded submission grade
type HistoryEntry struct {
	ID           string
	Topic        string
	Submission   string
	Passed       bool
	LoadError    string
	FailedChecks int
	Duration     time.Duration
	GradedAt     time.Time
}

// History records grades in the MySQL grade history. The schema is created by
// migration.HistoryMigrations.
type History struct {
	db *sql.DB
}

// NewHistory wraps an open connection pool
func NewHistory(db *sql.DB) *History {
	return &History{db: db}
}

// Record stores each grade and its check results in one transaction
func (h *History) Record(ctx context.Context, grades ...domain.Grade) (err error) {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	for _, g := range grades {
		var loadErr sql.NullString
		if g.Err != nil {
			loadErr = sql.NullString{String: g.Err.Error(), Valid: true}
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO grade_runs (id, topic, submission, passed, load_error, duration_ms, graded_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			g.ID, g.Topic, g.Submission.Path, g.Passed(), loadErr, g.Duration.Milliseconds(), g.GradedAt.UTC())
		if err != nil {
			return fmt.Errorf("insert grade %s: %w", g.ID, err)
		}

		for i, r := range g.Report.Results {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO grade_results (grade_id, position, name, outcome, message, detail) VALUES (?, ?, ?, ?, ?, ?)",
				g.ID, i, r.Name, r.Outcome.String(), r.Message, sql.NullString{String: r.Detail, Valid: r.Detail != ""})
			if err != nil {
				return fmt.Errorf("insert result %s/%s: %w", g.ID, r.Name, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Recent returns the latest grades, newest first. An empty topic means every topic.
func (h *History) Recent(ctx context.Context, topic string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := h.db.QueryContext(ctx, `SELECT r.id, r.topic, r.submission, r.passed, r.load_error, r.duration_ms, r.graded_at,
	(SELECT COUNT(*) FROM grade_results g WHERE g.grade_id = r.id AND g.outcome = ?)
FROM grade_runs r
WHERE ? = '' OR r.topic = ?
ORDER BY r.graded_at DESC
LIMIT ?`, domain.Fail.String(), topic, topic, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var (
			e          HistoryEntry
			loadErr    sql.NullString
			durationMs int64
		)
		if err := rows.Scan(&e.ID, &e.Topic, &e.Submission, &e.Passed, &loadErr, &durationMs, &e.GradedAt, &e.FailedChecks); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.LoadError = loadErr.String
		e.Duration = time.Duration(durationMs) * time.Millisecond
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return entries, nil
}
