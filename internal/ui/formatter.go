package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"csplay/internal/config"
	"csplay/internal/domain"
	"csplay/internal/harness"
	"csplay/internal/storage"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
	gray   = color.New(color.FgHiBlack)
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to the color-aware stdout
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg, out: color.Output}
}

// SetOutput redirects the formatter
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
}

// PrintReport prints one graded submission, check by check
func (f *Formatter) PrintReport(g domain.Grade) {
	cyan.Fprintf(f.out, "%s ", f.RelPath(g.Submission.Path))
	gray.Fprintf(f.out, "(%s, %s)\n", g.Topic, g.Duration.Round(time.Millisecond))

	if g.Err != nil {
		red.Fprintf(f.out, "  ✗ could not be graded: %v\n", g.Err)
		return
	}

	for _, r := range g.Report.Results {
		switch r.Outcome {
		case domain.Pass:
			green.Fprintf(f.out, "  ✓ %s\n", r.Message)
		case domain.Disabled:
			yellow.Fprintf(f.out, "  ○ %s\n", r.Message)
		default:
			red.Fprintf(f.out, "  ✗ %s\n", r.Message)
			if r.Detail != "" {
				gray.Fprintf(f.out, "      %s\n", r.Detail)
			}
		}
	}

	passed, failed, disabled := g.Report.Counts()
	fmt.Fprintf(f.out, "  %s, %s, %s\n\n",
		green.Sprintf("%d passed", passed),
		red.Sprintf("%d failed", failed),
		yellow.Sprintf("%d disabled", disabled))
}

// PrintMetaStats displays the statistics of a stored grading run
func (f *Formatter) PrintMetaStats(output *domain.GradesOutput) {
	meta := output.Meta

	fmt.Fprint(f.out, "\n")
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                    Grading Statistics                         ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	rows := []struct {
		label string
		value string
		c     *color.Color
	}{
		{"Topic", meta.Topic, white},
		{"Total Submissions", fmt.Sprint(meta.TotalSubmissions), white},
		{"Passed Submissions", fmt.Sprint(meta.PassedSubmissions), green},
		{"Failed Submissions", fmt.Sprint(meta.FailedSubmissions), red},
		{"Failed Checks", fmt.Sprint(meta.FailedChecks), red},
		{"Disabled Checks", fmt.Sprint(meta.DisabledChecks), yellow},
		{"Load Errors", fmt.Sprint(meta.LoadErrors), red},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white},
		{"Workers", fmt.Sprint(meta.Workers), white},
		{"Timestamp", meta.Timestamp, white},
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.c.Fprintf(f.out, "%-27s", row.value)
		fmt.Fprintln(f.out, " │")
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if meta.FailedSubmissions == 0 {
		green.Fprintln(f.out, "✓ All submissions passed!")
		return
	}
	red.Fprintf(f.out, "✗ %d submission(s) failed with %d failed check(s)\n\n", meta.FailedSubmissions, meta.FailedChecks+meta.LoadErrors)
	f.printFailureTree(output.Details)
}

// TreeNode represents a node in the submission path tree
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	Failures []domain.CheckFailure
	IsFile   bool
}

// printFailureTree prints failed checks grouped under their submission paths
func (f *Formatter) printFailureTree(failures []domain.CheckFailure) {
	if len(failures) == 0 {
		return
	}

	root := &TreeNode{Children: make(map[string]*TreeNode)}
	for _, failure := range failures {
		parts := strings.Split(filepath.ToSlash(f.RelPath(failure.Submission)), "/")
		current := root
		for i, part := range parts {
			if part == "" || part == "." {
				continue
			}
			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsFile:   i == len(parts)-1,
				}
			}
			current = current.Children[part]
		}
		current.Failures = append(current.Failures, failure)
	}

	f.printTreeNode(root, "")
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string) {
	keys := make([]string, 0, len(node.Children))
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.Children[key]
		last := i == len(keys)-1

		connector, childPrefix := "├── ", "│   "
		if last {
			connector, childPrefix = "└── ", "    "
		}

		if child.IsFile {
			yellow.Fprintf(f.out, "%s%s%s\n", prefix, connector, child.Name)
		} else {
			cyan.Fprintf(f.out, "%s%s%s\n", prefix, connector, child.Name)
		}

		for j, failure := range child.Failures {
			caseConnector := "├── "
			if j == len(child.Failures)-1 && len(child.Children) == 0 {
				caseConnector = "└── "
			}
			label := failure.CheckName
			if failure.Resolved {
				label += " (resolved)"
			}
			red.Fprintf(f.out, "%s%s%s\n", prefix+childPrefix, caseConnector, label)
		}

		f.printTreeNode(child, prefix+childPrefix)
	}
}

// PrintTopics lists the registered topics, optionally with every check they run
func (f *Formatter) PrintTopics(topics []harness.Topic, showChecks bool) {
	green.Fprintf(f.out, "Found %d topic(s):\n\n", len(topics))

	for i, topic := range topics {
		lastTopic := i == len(topics)-1
		checks := topic.Checks()

		connector, childPrefix := "├── ", "│   "
		if lastTopic {
			connector, childPrefix = "└── ", "    "
		}
		cyan.Fprintf(f.out, "%s%s", connector, topic.Name())
		gray.Fprintf(f.out, " %s (%d checks)\n", topic.Title(), len(checks))

		if !showChecks {
			continue
		}
		for j, check := range checks {
			caseConnector := "├── "
			if j == len(checks)-1 {
				caseConnector = "└── "
			}
			fmt.Fprintf(f.out, "%s%s%s %s\n", childPrefix, caseConnector, yellow.Sprint(check.Name), check.Message)
		}
		if !lastTopic {
			fmt.Fprintln(f.out)
		}
	}
}

// PrintSubmissions lists discovered submissions. failedPaths, if set, marks submissions
// that failed in the last stored run with [F].
func (f *Formatter) PrintSubmissions(paths []string, failedPaths map[string]struct{}) {
	green.Fprintf(f.out, "Found %d submission(s):\n\n", len(paths))

	for i, path := range paths {
		marker := ""
		if _, ok := failedPaths[f.RelPath(path)]; ok {
			marker = " " + red.Sprint("[F]")
		}
		connector := "├── "
		if i == len(paths)-1 {
			connector = "└── "
		}
		cyan.Fprintf(f.out, "%s%s", connector, f.RelPath(path))
		fmt.Fprintln(f.out, marker)
	}
}

// PrintHistory prints recorded grades, newest first
func (f *Formatter) PrintHistory(entries []storage.HistoryEntry) {
	if len(entries) == 0 {
		yellow.Fprintln(f.out, "No recorded grades.")
		return
	}

	for _, e := range entries {
		status := green.Sprint("PASS")
		switch {
		case e.LoadError != "":
			status = red.Sprint("LOAD")
		case !e.Passed:
			status = red.Sprintf("FAIL %d", e.FailedChecks)
		}
		gray.Fprintf(f.out, "%s  ", e.GradedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(f.out, "%-8s %-10s %s", status, e.Topic, f.RelPath(e.Submission))
		gray.Fprintf(f.out, "  %s\n", e.ID)
	}
}

// RelPath shortens path relative to the project when it lives inside it
func (f *Formatter) RelPath(path string) string {
	if f.config == nil || f.config.ProjectPath == "" {
		return path
	}
	base, err := filepath.Abs(f.config.ProjectPath)
	if err != nil {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(base, abs); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
