package commands

import (
	"github.com/spf13/cobra"

	"github.com/tagduke/tagduke-cli/internal/cli"
	"github.com/tagduke/tagduke-cli/pkg/app"
)

var globals cli.GlobalOptions

// RegisterGlobalFlags adds the persistent flags shared by every command
func RegisterGlobalFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringVar(&globals.ConfigPath, "config", "", "Settings file (default $XDG_CONFIG_HOME/tagduke/settings.yaml)")
	flags.StringVar(&globals.DataDir, "data-dir", "", "Directory holding stored categories and preview")
	flags.StringVar(&globals.Backend, "backend", "", "Storage backend: badger, file or memory")
	flags.BoolVar(&globals.Ephemeral, "ephemeral", false, "Keep categories and preview in memory only")
	flags.StringVar(&globals.LogLevel, "log-level", "", "Log level: trace, debug, info, warn or error")
	flags.BoolVarP(&globals.Quiet, "quiet", "q", false, "Suppress informational output")
	flags.BoolVar(&globals.NoColor, "no-color", false, "Disable colored output")
	flags.BoolVarP(&globals.Yes, "yes", "y", false, "Answer yes to every confirmation")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cli.SetGlobalFlags(globals.Quiet, globals.NoColor, globals.Yes)
		cli.SetIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	}
}

// NewContext returns a command context built from the parsed global flags
func NewContext() *cli.CommandContext {
	return cli.NewCommandContext(globals)
}

// AddCommands registers every subcommand on root
func AddCommands(root *cobra.Command) {
	root.AddCommand(
		NewInitCommand(),
		NewCategoryCommand(),
		NewPreviewCommand(),
		NewCopyCommand(),
	)
}

// withState runs fn against freshly loaded state and releases it afterwards
func withState(cmd *cobra.Command, fn func(state *app.State) error) error {
	ctx := NewContext()
	defer ctx.Close()

	if err := ctx.SetupLogging(false); err != nil {
		return err
	}

	state, err := ctx.State(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return fn(state)
}
