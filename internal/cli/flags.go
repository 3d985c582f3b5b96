package cli

import (
	"time"

	"csplay/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	ProjectPath     string
	SubmissionPath  string
	Topic           string
	Processors      int
	Filter          string
	Checks          string
	Timeout         time.Duration
	FailFast        bool
	Reference       bool
	Record          bool
	OpenFails       bool
	Quiet           bool
	Verbose         bool
	ShowChecks      bool
	ShowSubmissions bool
	Limit           int
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ProjectPath:     f.ProjectPath,
		SubmissionPath:  f.SubmissionPath,
		Topic:           f.Topic,
		Processors:      f.Processors,
		Filter:          f.Filter,
		Checks:          f.Checks,
		Timeout:         f.Timeout,
		FailFast:        f.FailFast,
		Reference:       f.Reference,
		Record:          f.Record,
		OpenFails:       f.OpenFails,
		Quiet:           f.Quiet,
		Verbose:         f.Verbose,
		ShowChecks:      f.ShowChecks,
		ShowSubmissions: f.ShowSubmissions,
		Limit:           f.Limit,
	}
}
