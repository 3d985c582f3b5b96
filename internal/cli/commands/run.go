package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"csplay/internal/console"
	"csplay/internal/discovery"
	"csplay/internal/domain"
	"csplay/internal/execution"
	"csplay/internal/harness"
	"csplay/internal/migration"
	"csplay/internal/storage"
	"csplay/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	app       *App
	filter    *discovery.Filter
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	app *App,
	filter *discovery.Filter,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		app:       app,
		filter:    filter,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := rc.app.Config
	topic, err := rc.app.Registry().Lookup(cfg.Topic)
	if err != nil {
		return err
	}

	if cfg.Flags.Reference {
		return rc.reference(topic)
	}

	// Discover submissions
	roots := args
	if len(roots) == 0 {
		roots = []string{cfg.GetSubmissionPath()}
	}
	paths, err := rc.app.Scanner().ScanAll(roots)
	if err != nil {
		return err
	}
	paths = rc.filter.FilterByName(paths, cfg.Flags.Filter)

	if len(paths) == 0 {
		color.Yellow("No submissions to grade")
		return nil
	}

	subs := make([]domain.Submission, len(paths))
	for i, path := range paths {
		subs[i] = domain.Submission{Path: path}
	}

	grader := execution.NewGrader(topic,
		execution.WithTimeout(cfg.Timeout),
		execution.WithCheckFilter(cfg.Flags.Checks),
		execution.WithLogger(rc.app.Logger),
		execution.WithConsole(rc.consoleFor),
	)
	pool := execution.NewWorkerPool(grader, cfg.Processors)
	if !cfg.Flags.Quiet {
		pool.SetProgress(ui.NewProgressBar(len(subs)))
	}

	ctx := commandContext(cmd)
	grades, duration, err := pool.Execute(ctx, subs, cfg.Flags.FailFast)
	if err != nil {
		return err
	}

	if err := rc.storage.Save(grades, duration, cfg.Processors); err != nil {
		return fmt.Errorf("failed to save grades: %w", err)
	}
	if cfg.Flags.Record {
		if err := rc.record(ctx, grades); err != nil {
			return err
		}
	}

	if !cfg.Flags.Quiet && len(grades) == 1 {
		rc.formatter.PrintReport(grades[0])
	}

	output, err := rc.storage.Load()
	if err != nil {
		return err
	}
	rc.formatter.PrintMetaStats(output)

	if output.Meta.FailedSubmissions == 0 {
		return nil
	}
	if cfg.Flags.OpenFails {
		if err := rc.viewer.View(output); err != nil {
			return err
		}
	}
	return ErrSubmissionsFailed
}

// reference grades the built-in solution, which must pass
func (rc *RunCommand) reference(topic harness.Topic) error {
	report := topic.Reference(harness.Request{
		Filter: rc.app.Config.Flags.Checks,
		Logger: rc.app.Logger,
	})
	rc.formatter.PrintReport(domain.Grade{
		Topic:      topic.Name(),
		Submission: domain.Submission{Path: "(reference solution)"},
		Report:     report,
	})
	if !report.Passed {
		return ErrSubmissionsFailed
	}
	return nil
}

// consoleFor routes a submission's report lines and output to the logger, minus failure lines
func (rc *RunCommand) consoleFor(sub domain.Submission) console.Sink {
	return console.NewFilter(console.NewZapSink(rc.app.Logger.With(zap.String("submission", sub.Path))))
}

// record appends the grades to the MySQL history, creating the schema if needed
func (rc *RunCommand) record(ctx context.Context, grades []domain.Grade) error {
	db, err := migration.NewDatabaseManager(rc.app.Config).Open(ctx)
	if err != nil {
		return fmt.Errorf("open grade history: %w", err)
	}
	defer db.Close()

	if _, err := migration.NewSchemaMigrator(db, migration.HistoryMigrations).Run(ctx); err != nil {
		return fmt.Errorf("migrate grade history: %w", err)
	}
	if err := storage.NewHistory(db).Record(ctx, grades...); err != nil {
		return fmt.Errorf("record grades: %w", err)
	}
	color.Cyan("Recorded %d grade(s) in %s", len(grades), rc.app.Config.Database.Name)
	return nil
}
