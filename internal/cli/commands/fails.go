package commands

import (
	"github.com/spf13/cobra"

	"csplay/internal/storage"
	"csplay/internal/ui"
)

// FailsCommand handles the fails command
type FailsCommand struct {
	storage storage.Storage
	viewer  ui.Viewer
}

// NewFailsCommand creates a new FailsCommand
func NewFailsCommand(st storage.Storage, viewer ui.Viewer) *FailsCommand {
	return &FailsCommand{
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (fc *FailsCommand) Execute(cmd *cobra.Command, args []string) error {
	output, err := fc.storage.Load()
	if err != nil {
		return err
	}

	return fc.viewer.View(output)
}
