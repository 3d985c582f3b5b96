package ui

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csplay/internal/config"
	"csplay/internal/domain"
	"csplay/internal/harness"
	"csplay/internal/storage"
	"csplay/internal/topics/dll"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func newTestFormatter() (*Formatter, *bytes.Buffer) {
	cfg := config.New()
	cfg.ProjectPath = "/work"
	f := NewFormatter(cfg)
	var buf bytes.Buffer
	f.SetOutput(&buf)
	return f, &buf
}

func TestPrintReport(t *testing.T) {
	f, buf := newTestFormatter()

	f.PrintReport(domain.Grade{
		Topic:      "dll",
		Submission: domain.Submission{Path: "/work/alice/list.go"},
		Duration:   1234 * time.Microsecond,
		Report: domain.Report{Results: []domain.Result{
			{Name: "exists", Outcome: domain.Pass, Message: "It exists"},
			{Name: "remove-head", Outcome: domain.Fail, Message: "Head moves on", Detail: "check returned false"},
			{Name: "peekhead", Outcome: domain.Disabled, Message: "PeekHead works"},
		}},
	})

	out := buf.String()
	assert.Contains(t, out, "alice/list.go (dll, 1ms)")
	assert.Contains(t, out, "✓ It exists")
	assert.Contains(t, out, "✗ Head moves on")
	assert.Contains(t, out, "check returned false")
	assert.Contains(t, out, "○ PeekHead works")
	assert.Contains(t, out, "1 passed, 1 failed, 1 disabled")
}

func TestPrintReportLoadError(t *testing.T) {
	f, buf := newTestFormatter()

	f.PrintReport(domain.Grade{Submission: domain.Submission{Path: "x.go"}, Err: errors.New("boom")})

	assert.Contains(t, buf.String(), "could not be graded: boom")
	assert.NotContains(t, buf.String(), "passed")
}

func TestPrintMetaStats(t *testing.T) {
	f, buf := newTestFormatter()

	f.PrintMetaStats(&domain.GradesOutput{
		Meta: domain.GradesMeta{Topic: "dll", TotalSubmissions: 2, PassedSubmissions: 1, FailedSubmissions: 1, FailedChecks: 2, DurationSeconds: 0.5, Workers: 4},
		Details: []domain.CheckFailure{
			{Submission: "/work/bob/list.go", CheckName: "remove-head"},
			{Submission: "/work/bob/list.go", CheckName: "addat-bounds", Resolved: true},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Grading Statistics")
	assert.Contains(t, out, "│ Failed Checks                   │ 2 ")
	assert.Contains(t, out, "0.50s")
	assert.Contains(t, out, "1 submission(s) failed with 2 failed check(s)")
	assert.Contains(t, out, "└── bob")
	assert.Contains(t, out, "    └── list.go")
	assert.Contains(t, out, "        ├── remove-head")
	assert.Contains(t, out, "        └── addat-bounds (resolved)")
}

func TestPrintMetaStatsAllPassed(t *testing.T) {
	f, buf := newTestFormatter()

	f.PrintMetaStats(&domain.GradesOutput{Meta: domain.GradesMeta{TotalSubmissions: 3, PassedSubmissions: 3}})

	assert.Contains(t, buf.String(), "All submissions passed!")
}

func TestPrintTopics(t *testing.T) {
	f, buf := newTestFormatter()
	topic := dll.NewTopic(nil)

	f.PrintTopics([]harness.Topic{topic}, true)

	out := buf.String()
	assert.Contains(t, out, "Found 1 topic(s)")
	assert.Contains(t, out, "└── dll Doubly Linked List (27 checks)")
	assert.Contains(t, out, "    ├── exists ")
	assert.Contains(t, out, "    └── elementat-bounds ")
}

func TestPrintSubmissions(t *testing.T) {
	f, buf := newTestFormatter()

	f.PrintSubmissions([]string{"/work/a.go", "/work/b.go"}, map[string]struct{}{"b.go": {}})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "├── a.go", lines[2])
	assert.Equal(t, "└── b.go [F]", lines[3])
}

func TestPrintHistory(t *testing.T) {
	f, buf := newTestFormatter()

	f.PrintHistory(nil)
	assert.Contains(t, buf.String(), "No recorded grades.")

	buf.Reset()
	f.PrintHistory([]storage.HistoryEntry{
		{ID: "id-1", Topic: "dll", Submission: "/work/a.go", Passed: true, GradedAt: time.Now()},
		{ID: "id-2", Topic: "dll", Submission: "/work/b.go", FailedChecks: 3, GradedAt: time.Now()},
		{ID: "id-3", Topic: "dll", Submission: "/work/c.go", LoadError: "boom", GradedAt: time.Now()},
	})
	out := buf.String()
	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "FAIL 3")
	assert.Contains(t, out, "LOAD")
	assert.Contains(t, out, "id-2")
}

func TestFormatFailure(t *testing.T) {
	failure := domain.CheckFailure{
		GradeID:    "g-1",
		Submission: "alice.go",
		Topic:      "dll",
		CheckName:  "remove-head",
		Message:    "Head moves on",
		Detail:     "panic: [boom]",
	}

	details := formatFailureDetails(failure)
	assert.Contains(t, details, "Check: remove-head")
	assert.Contains(t, details, "Grade: g-1")
	assert.Contains(t, details, "Head moves on")
	assert.Contains(t, details, "panic: [boom[]", "brackets are escaped for tview")

	stats := formatFailureStats(failure)
	assert.Contains(t, stats, "alice.go[white]::[yellow]remove-head")
	assert.Contains(t, stats, "open")

	assert.Contains(t, listItemText(failure, 0, false), "1.[white] alice.go")
	assert.Contains(t, listItemText(failure, 0, true), "✓")
}

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	p := newProgressBar(3, &buf)

	p.Update(2, 1, 1)
	p.Finish()

	out := buf.String()
	assert.Contains(t, out, "passed: 1")
	assert.Contains(t, out, "failed: 1]")
}
