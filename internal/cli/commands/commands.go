package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"csplay/internal/cli"
	"csplay/internal/config"
	"csplay/internal/discovery"
	"csplay/internal/loader"
	"csplay/internal/storage"
	"csplay/internal/topics"
	"csplay/internal/ui"
)

// ErrSubmissionsFailed is returned by run when any submission did not pass
var ErrSubmissionsFailed = errors.New("some submissions failed")

// App carries what every command needs once flags are parsed
type App struct {
	Config *config.Config
	Logger *zap.Logger
}

// Registry builds the topic registry with the configured import whitelist
func (a *App) Registry() *topics.Registry {
	opts := []loader.Option{}
	if len(a.Config.AllowedPackages) > 0 {
		opts = append(opts, loader.WithAllowedPackages(a.Config.AllowedPackages...))
	}
	return topics.Default(loader.New(opts...))
}

// Scanner builds a submission scanner honouring the configured ignore list
func (a *App) Scanner() *discovery.Scanner {
	return discovery.NewScanner(a.Config.PathsToIgnore)
}

// Commands holds all CLI commands
type Commands struct {
	app     *App
	Run     *RunCommand
	List    *ListCommand
	Fails   *FailsCommand
	History *HistoryCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(app *App) *Commands {
	jsonStorage := storage.NewJSONStorage(app.Config)
	formatter := ui.NewFormatter(app.Config)
	failureViewer := ui.NewFailureViewer(jsonStorage)
	filter := discovery.NewFilter()

	return &Commands{
		app:     app,
		Run:     NewRunCommand(app, filter, jsonStorage, formatter, failureViewer),
		List:    NewListCommand(app, filter, jsonStorage, formatter),
		Fails:   NewFailsCommand(jsonStorage, failureViewer),
		History: NewHistoryCommand(app, formatter),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	rootCmd.PersistentFlags().StringVarP(&flags.ProjectPath, "project", "C", config.DefaultProjectPath, "Project directory holding .csp.yaml, .env and the results file")
	rootCmd.PersistentFlags().StringVarP(&flags.Topic, "topic", "t", "", "Topic to grade against (default from .csp.yaml, then \"dll\")")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log diagnostics to stderr")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Load config once flags are parsed; commands share the pointer
		cfg, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*c.app.Config = *cfg

		logger, err := cli.NewLogger(flags.Verbose)
		if err != nil {
			return err
		}
		c.app.Logger = logger
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if c.app.Logger != nil {
			_ = c.app.Logger.Sync()
		}
	}

	// Run command
	runCmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Grade submissions in parallel",
		Long:  "Discover learner submissions and grade each one against the topic's checks using parallel workers",
		RunE:  c.Run.Execute,
	}
	runCmd.Flags().IntVarP(&flags.Processors, "workers", "p", 0, "Number of submissions graded in parallel (default from config, 4)")
	runCmd.Flags().StringVarP(&flags.SubmissionPath, "path", "s", "", "Folder where submission discovery should start when no paths are given")
	runCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter submissions by name pattern (supports wildcards, e.g., '*_list.go' or '*alice*')")
	runCmd.Flags().StringVar(&flags.Checks, "checks", "", "Run only checks whose name matches the pattern (e.g., 'remove-*')")
	runCmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Time allowed per submission (default from config, 10s)")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first failed submission")
	runCmd.Flags().BoolVar(&flags.Reference, "reference", false, "Grade the built-in reference solution instead of submissions")
	runCmd.Flags().BoolVar(&flags.Record, "record", false, "Record grades in the MySQL grade history")
	runCmd.Flags().BoolVar(&flags.OpenFails, "open-fails", false, "Open the fails viewer when the run finishes with failures")
	runCmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Only print the summary")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List topics, checks or submissions",
		Long:  "List registered topics and their checks, or the submissions that run would grade",
		RunE:  c.List.Execute,
	}
	listCmd.Flags().BoolVarP(&flags.ShowChecks, "checks", "c", false, "List every check of each topic")
	listCmd.Flags().BoolVar(&flags.ShowSubmissions, "submissions", false, "List discovered submissions instead of topics")
	listCmd.Flags().StringVarP(&flags.SubmissionPath, "path", "s", "", "Folder where submission discovery should start")
	listCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter submissions by name pattern")
	rootCmd.AddCommand(listCmd)

	// Fails command
	failsCmd := &cobra.Command{
		Use:   "fails",
		Short: "View failed checks interactively",
		Long:  "Display failed checks from the last grading run in an interactive viewer",
		RunE:  c.Fails.Execute,
	}
	rootCmd.AddCommand(failsCmd)

	// History commands
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Grade history stored in MySQL",
	}
	historyCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the grade history schema",
		RunE:  c.History.Migrate,
	})
	recentCmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recently recorded grades",
		RunE:  c.History.Recent,
	}
	recentCmd.Flags().IntVarP(&flags.Limit, "limit", "n", storage.DefaultHistoryLimit, "Number of grades to show")
	historyCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(historyCmd)
}
