package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"csplay/internal/discovery"
	"csplay/internal/harness"
	"csplay/internal/storage"
	"csplay/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	app       *App
	filter    *discovery.Filter
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	app *App,
	filter *discovery.Filter,
	st storage.Storage,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		app:       app,
		filter:    filter,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	if lc.app.Config.Flags.ShowSubmissions {
		return lc.listSubmissions()
	}

	reg := lc.app.Registry()
	var list []harness.Topic
	for _, name := range reg.Names() {
		topic, err := reg.Lookup(name)
		if err != nil {
			return err
		}
		list = append(list, topic)
	}
	lc.formatter.PrintTopics(list, lc.app.Config.Flags.ShowChecks)
	return nil
}

func (lc *ListCommand) listSubmissions() error {
	paths, err := lc.app.Scanner().Scan(lc.app.Config.GetSubmissionPath())
	if err != nil {
		return err
	}

	paths = lc.filter.FilterByName(paths, lc.app.Config.Flags.Filter)
	if len(paths) == 0 {
		color.Yellow("No submissions found")
		return nil
	}

	// Mark submissions that failed in the last stored run, if there is one
	failed := make(map[string]struct{})
	if output, err := lc.storage.Load(); err == nil {
		for _, d := range output.Details {
			failed[lc.formatter.RelPath(d.Submission)] = struct{}{}
		}
	}
	lc.formatter.PrintSubmissions(paths, failed)
	return nil
}
