package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"csplay/internal/cli"
	"csplay/internal/cli/commands"
	"csplay/internal/config"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "csp",
		Short:         "Coding playground grader",
		Long:          `Grades learner implementations of data structures against ordered check corpora. Submissions are Go source files evaluated in-process and graded in parallel.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Config with defaults; replaced once flags are parsed
	app := &commands.App{Config: config.New()}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(app)

	// Register all commands
	cmds.Register(rootCmd, &flags)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, commands.ErrSubmissionsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
