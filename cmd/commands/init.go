package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tagduke/tagduke-cli/internal/cli"
	"github.com/tagduke/tagduke-cli/pkg/app"
	"github.com/tagduke/tagduke-cli/pkg/config"
)

var (
	initForce bool
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the settings file and seed storage",
		Long: `Write a default settings file and store the built-in tag catalog.

Existing settings are kept unless --force is given. Stored categories
are never overwritten; use 'tagduke category reset' for that.

Examples:
  # Initialize with defaults
  tagduke init

  # Use the file backend in a custom directory
  tagduke init --backend file --data-dir ./tags`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	cmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing settings file")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := NewContext()
	defer ctx.Close()

	if err := ctx.SetupLogging(false); err != nil {
		return err
	}

	settings, err := ctx.LoadSettings()
	if err != nil {
		return err
	}

	path := ctx.SettingsPath()
	if _, err := os.Stat(path); err == nil && !initForce {
		cli.PrintInfo("Settings already exist at %s", path)
	} else {
		if err := config.Save(path, settings); err != nil {
			return err
		}
		cli.PrintSuccess("Wrote settings to %s", path)
	}

	state, err := ctx.State(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return seedCatalog(state)
}

func seedCatalog(state *app.State) error {
	if !state.Catalog.Seeded() {
		cli.PrintInfo("Storage already holds %d categories", state.Catalog.Len())
		return nil
	}
	if err := state.Catalog.Save(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	cli.PrintSuccess("Stored %d built-in categories", state.Catalog.Len())
	cli.PrintInfo("Run 'tagduke' to start the interactive TUI.")
	return nil
}
