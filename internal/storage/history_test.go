package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csplay/internal/migration"
)

// openTestDB connects to the database named by CSP_TEST_MYSQL_DSN (with parseTime=true), skipping otherwise
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("CSP_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("CSP_TEST_MYSQL_DSN not set")
	}
	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, db.PingContext(ctx))
	_, err = migration.NewSchemaMigrator(db, migration.HistoryMigrations).Run(ctx)
	require.NoError(t, err)
	return db
}

func TestHistoryRecordAndRecent(t *testing.T) {
	db := openTestDB(t)
	h := NewHistory(db)
	ctx := context.Background()

	topic := "history-test-" + uuid.NewString()[:8]
	now := time.Now().UTC().Truncate(time.Millisecond)
	grades := sampleGrades()
	for i := range grades {
		grades[i].ID = uuid.NewString()
		grades[i].Topic = topic
		grades[i].Duration = 42 * time.Millisecond
		grades[i].GradedAt = now.Add(time.Duration(i) * time.Second)
	}

	require.NoError(t, h.Record(ctx, grades...))

	entries, err := h.Recent(ctx, topic, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// newest first: carol (load error), then bob
	assert.Equal(t, "carol.go", entries[0].Submission)
	assert.False(t, entries[0].Passed)
	assert.Contains(t, entries[0].LoadError, "forbidden imports")
	assert.Equal(t, "bob.go", entries[1].Submission)
	assert.True(t, entries[1].Passed)
	assert.Equal(t, 42*time.Millisecond, entries[1].Duration)

	all, err := h.Recent(ctx, topic, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 1, all[2].FailedChecks)
}
