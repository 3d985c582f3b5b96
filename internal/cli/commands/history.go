package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"csplay/internal/migration"
	"csplay/internal/storage"
	"csplay/internal/ui"
)

// HistoryCommand handles the history subcommands
type HistoryCommand struct {
	app       *App
	formatter *ui.Formatter
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(app *App, formatter *ui.Formatter) *HistoryCommand {
	return &HistoryCommand{app: app, formatter: formatter}
}

// Migrate creates the history database and applies pending schema migrations
func (hc *HistoryCommand) Migrate(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	db, err := migration.NewDatabaseManager(hc.app.Config).Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := migration.NewSchemaMigrator(db, migration.HistoryMigrations).Run(ctx)
	for _, m := range applied {
		color.Green("✓ %03d %s", m.Version, m.Name)
	}
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if len(applied) == 0 {
		color.Cyan("Grade history schema is up to date")
	}
	return nil
}

// Recent prints the latest recorded grades, optionally for one topic
func (hc *HistoryCommand) Recent(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	db, err := migration.NewDatabaseManager(hc.app.Config).Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	// Only an explicit --topic narrows the history
	entries, err := storage.NewHistory(db).Recent(ctx, hc.app.Config.Flags.Topic, hc.app.Config.Flags.Limit)
	if err != nil {
		return err
	}
	hc.formatter.PrintHistory(entries)
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
