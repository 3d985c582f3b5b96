package dll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csplay/internal/console"
	"csplay/internal/domain"
	"csplay/internal/harness"
)

var optionalChecks = []string{
	"peekhead",
	"peektail",
	"indexof-found",
	"indexof-missing",
	"elementat-found",
	"elementat-bounds",
}

// minimal exposes only the required capabilities of the reference list
type minimal struct{ l List }

func newMinimal() List { return &minimal{l: Solution()} }

func (m *minimal) Head() *Node                    { return m.l.Head() }
func (m *minimal) Tail() *Node                    { return m.l.Tail() }
func (m *minimal) Length() int                    { return m.l.Length() }
func (m *minimal) Add(v string)                   { m.l.Add(v) }
func (m *minimal) Remove(v string) (string, bool) { return m.l.Remove(v) }
func (m *minimal) RemoveAt(i int) (string, bool)  { return m.l.RemoveAt(i) }
func (m *minimal) AddAt(i int, v string) bool     { return m.l.AddAt(i, v) }

// forgetful never rewires Prev when removing
type forgetful struct{ *solution }

func newForgetful() List { return &forgetful{solution: &solution{}} }

func (f *forgetful) Remove(v string) (string, bool) {
	var prev *Node
	for n := f.head; n != nil; n = n.Next {
		if n.Value == v {
			if prev == nil {
				f.head = n.Next
			} else {
				prev.Next = n.Next
			}
			if n == f.tail {
				f.tail = prev
			}
			f.length--
			return v, true
		}
		prev = n
	}
	return "", false
}

func outcomes(r domain.Report) map[string]domain.Outcome {
	m := make(map[string]domain.Outcome, len(r.Results))
	for _, res := range r.Results {
		m[res.Name] = res.Outcome
	}
	return m
}

func TestCorpusShape(t *testing.T) {
	c := Corpus()
	assert.Equal(t, "dll", c.Topic)
	assert.Equal(t, Name, c.Name)
	require.Equal(t, 27, c.Len())

	seen := map[string]bool{}
	for _, d := range c.Descriptors {
		assert.False(t, seen[d.Name], "duplicate descriptor %s", d.Name)
		seen[d.Name] = true
		assert.NotEmpty(t, d.Message)
		assert.NotNil(t, d.Check)
	}
	assert.Equal(t, "exists", c.Descriptors[0].Name)
	assert.Equal(t, "elementat-bounds", c.Descriptors[c.Len()-1].Name)
}

func TestCorpusSolutionPasses(t *testing.T) {
	rec := console.NewRecorder()
	report := harness.NewRunner[Factory](harness.WithConsole(rec)).Run(Corpus(), Solution)

	for _, res := range report.Results {
		assert.Equal(t, domain.Pass, res.Outcome, "%s: %s", res.Name, res.Detail)
	}
	assert.True(t, report.Passed)
	assert.Len(t, rec.Lines(), 27)
}

func TestCorpusMinimalDisablesOptional(t *testing.T) {
	report := harness.NewRunner[Factory]().Run(Corpus(), newMinimal)
	got := outcomes(report)

	assert.True(t, report.Passed)
	for _, name := range optionalChecks {
		assert.Equal(t, domain.Disabled, got[name], name)
	}
	_, _, disabled := report.Counts()
	assert.Equal(t, len(optionalChecks), disabled)
}

func TestCorpusBrokenPrevLinks(t *testing.T) {
	report := harness.NewRunner[Factory]().Run(Corpus(), newForgetful)
	got := outcomes(report)

	assert.False(t, report.Passed)
	assert.Equal(t, domain.Fail, got["remove-head"])
	assert.Equal(t, domain.Fail, got["remove-middle"])
	assert.Equal(t, domain.Pass, got["add-first-node"])
	assert.Equal(t, domain.Pass, got["remove-returns"])
}

func TestCorpusNilFactory(t *testing.T) {
	report := harness.NewRunner[Factory]().Run(Corpus(), nil)
	got := outcomes(report)

	assert.False(t, report.Passed)
	assert.Equal(t, domain.Fail, got["exists"])
	assert.Equal(t, domain.Fail, got["add-method"])
	assert.Equal(t, domain.Fail, got["initial-state"])
	for _, name := range optionalChecks {
		assert.Equal(t, domain.Disabled, got[name], name)
	}
}

func TestCorpusRemoveReportsMissing(t *testing.T) {
	c := Corpus().Filter("remove-missing")
	require.Equal(t, 1, c.Len())

	report := harness.NewRunner[Factory]().Run(c, Solution)
	assert.Equal(t, []string{"Pass: " + c.Descriptors[0].Message}, report.Lines())
}
