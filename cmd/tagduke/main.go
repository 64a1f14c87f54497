package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tagduke/tagduke-cli/cmd/commands"
	"github.com/tagduke/tagduke-cli/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "tagduke",
	Short: "Pick hashtags from categories and copy them in one go",
	Long: `Tagduke keeps categories of hashtags, lets you collect the ones you want
into a preview, and copies the preview to the clipboard. Run it without
arguments for the interactive TUI, or use the subcommands from scripts.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commands.NewContext()
		defer ctx.Close()

		if err := ctx.SetupLogging(true); err != nil {
			return err
		}

		state, err := ctx.State(os.Stdout)
		if err != nil {
			return fmt.Errorf("failed to load tags: %w", err)
		}

		// Launch TUI
		app := tui.NewApp(state, ctx.LoadSettingsWithDefault())
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Error().Err(err).Msg("tui exited")
			return fmt.Errorf("failed to start the terminal user interface: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Tagduke",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Tagduke version %s\n", version)
	},
}

func init() {
	commands.RegisterGlobalFlags(rootCmd)
	commands.AddCommands(rootCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
