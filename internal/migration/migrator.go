package migration

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrator brings a database schema up to date
type Migrator interface {
	Run(ctx context.Context) ([]Migration, error)
}

// Migration is one forward-only schema step
type Migration struct {
	Version int
	Name    string
	Up      string
}

// HistoryMigrations create the grade history schema, in version order
var HistoryMigrations = []Migration{
	{
		Version: 1,
		Name:    "create_grade_runs",
		Up: `CREATE TABLE IF NOT EXISTS grade_runs (
	id          CHAR(36)     NOT NULL PRIMARY KEY,
	topic       VARCHAR(64)  NOT NULL,
	submission  VARCHAR(512) NOT NULL,
	passed      BOOLEAN      NOT NULL,
	load_error  TEXT         NULL,
	duration_ms BIGINT       NOT NULL,
	graded_at   DATETIME(6)  NOT NULL,
	INDEX idx_grade_runs_topic_graded_at (topic, graded_at)
)`,
	},
	{
		Version: 2,
		Name:    "create_grade_results",
		Up: `CREATE TABLE IF NOT EXISTS grade_results (
	grade_id CHAR(36)     NOT NULL,
	position INT          NOT NULL,
	name     VARCHAR(128) NOT NULL,
	outcome  VARCHAR(16)  NOT NULL,
	message  TEXT         NOT NULL,
	detail   TEXT         NULL,
	PRIMARY KEY (grade_id, position),
	CONSTRAINT fk_grade_results_run FOREIGN KEY (grade_id) REFERENCES grade_runs (id) ON DELETE CASCADE
)`,
	},
}

const createVersionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    INT          NOT NULL PRIMARY KEY,
	name       VARCHAR(128) NOT NULL,
	applied_at DATETIME(6)  NOT NULL DEFAULT CURRENT_TIMESTAMP(6)
)`

// SchemaMigrator applies migrations not yet recorded in schema_migrations
type SchemaMigrator struct {
	db         *sql.DB
	migrations []Migration
}

// NewSchemaMigrator creates a SchemaMigrator for the given migrations
func NewSchemaMigrator(db *sql.DB, migrations []Migration) *SchemaMigrator {
	return &SchemaMigrator{db: db, migrations: migrations}
}

// Run applies pending migrations in order and returns the ones it applied
func (m *SchemaMigrator) Run(ctx context.Context) ([]Migration, error) {
	if err := validate(m.migrations); err != nil {
		return nil, err
	}
	if _, err := m.db.ExecContext(ctx, createVersionTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	var ran []Migration
	for _, mig := range m.migrations {
		if applied[mig.Version] {
			continue
		}
		if _, err := m.db.ExecContext(ctx, mig.Up); err != nil {
			return ran, fmt.Errorf("migration %d %s: %w", mig.Version, mig.Name, err)
		}
		if _, err := m.db.ExecContext(ctx, "INSERT INTO schema_migrations (version, name) VALUES (?, ?)", mig.Version, mig.Name); err != nil {
			return ran, fmt.Errorf("record migration %d: %w", mig.Version, err)
		}
		ran = append(ran, mig)
	}
	return ran, nil
}

func (m *SchemaMigrator) appliedVersions(ctx context.Context) (map[int]bool, error) {
	rows, err := m.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan schema version: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// validate requires strictly increasing versions
func validate(migrations []Migration) error {
	last := 0
	for _, mig := range migrations {
		if mig.Version <= last {
			return fmt.Errorf("migration %s: version %d not after %d", mig.Name, mig.Version, last)
		}
		last = mig.Version
	}
	return nil
}
