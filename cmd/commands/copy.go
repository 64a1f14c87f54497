package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tagduke/tagduke-cli/internal/cli"
	"github.com/tagduke/tagduke-cli/pkg/app"
	"github.com/tagduke/tagduke-cli/pkg/exporter"
)

// NewCopyCommand creates the copy command
func NewCopyCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "copy",
		Aliases: []string{"clip", "clipboard"},
		Short:   "Copy the preview to the clipboard",
		Long: `Copy the preview text to the system clipboard.

When no system clipboard is available the terminal is asked to set it
with an OSC 52 sequence. If that fails too, the text is printed so it
can be copied by hand.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(state *app.State) error {
				res, err := state.Dispatch(app.Action{Kind: app.ActionCopyPreview})
				if err != nil {
					return err
				}

				switch res.Notice {
				case exporter.NoticeCopied:
					cli.PrintSuccess("%s (%d tags)", res.Notice, len(state.Preview.CurrentTags()))
				case exporter.NoticeEmpty:
					cli.PrintWarning("%s", res.Notice)
				case exporter.NoticeManualCopy:
					cli.PrintWarning("%s", res.Notice)
					fmt.Fprintln(cmd.OutOrStdout(), state.Preview.Text())
				}
				return nil
			})
		},
	}
}
