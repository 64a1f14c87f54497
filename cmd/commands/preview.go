package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tagduke/tagduke-cli/internal/cli"
	"github.com/tagduke/tagduke-cli/pkg/app"
	"github.com/tagduke/tagduke-cli/pkg/catalog"
	"github.com/tagduke/tagduke-cli/pkg/models"
)

var (
	previewShowFormat string
)

// PreviewResult is the structured form of 'preview show'
type PreviewResult struct {
	Text      string   `json:"text" yaml:"text"`
	Tags      []string `json:"tags" yaml:"tags"`
	Delimiter string   `json:"delimiter" yaml:"delimiter"`
}

// NewPreviewCommand creates the preview command and its subcommands
func NewPreviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "preview",
		Aliases: []string{"p"},
		Short:   "Inspect and change the tag preview",
		Long: `The preview is the list of tags waiting to be copied. It is shared with
the TUI and survives restarts.`,
	}

	cmd.AddCommand(
		newPreviewShowCommand(),
		newPreviewAddCommand(),
		newPreviewAddAllCommand(),
		newPreviewRemoveCommand(),
		newPreviewClearCommand(),
		newPreviewDelimiterCommand(),
	)

	return cmd
}

func newPreviewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the preview text",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateOutputFormat(previewShowFormat)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(state *app.State) error {
				if previewShowFormat != string(cli.FormatText) {
					return cli.OutputResults(cmd.OutOrStdout(), previewShowFormat, PreviewResult{
						Text:      state.Preview.Text(),
						Tags:      state.Preview.CurrentTags(),
						Delimiter: string(state.Preview.Delimiter()),
					})
				}
				if state.Preview.Text() == "" {
					cli.PrintInfo("Preview is empty")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), state.Preview.Text())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&previewShowFormat, "format", "text", "Output format (text, json, yaml)")

	return cmd
}

func newPreviewAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <tag>...",
		Short: "Add tags to the preview",
		Long: `Append tags to the preview. Tags already present are skipped.

Examples:
  tagduke preview add '#撮影' '#カメラマン'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(state *app.State) error {
				added := 0
				for _, tag := range args {
					tag = strings.TrimSpace(tag)
					if tag == "" {
						continue
					}
					res, err := state.Dispatch(app.Action{Kind: app.ActionAddTag, Tag: tag})
					if err != nil {
						return err
					}
					if res.Changed {
						added++
					}
				}
				cli.PrintSuccess("Added %d of %d tags", added, len(args))
				return nil
			})
		},
	}
}

func newPreviewAddAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-all <category-id>",
		Short: "Add every tag of a category to the preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withState(cmd, func(state *app.State) error {
				cat, ok := state.Catalog.Get(id)
				if !ok {
					return fmt.Errorf("%w: %s", catalog.ErrCategoryNotFound, id)
				}
				before := len(state.Preview.CurrentTags())
				if _, err := state.Dispatch(app.Action{Kind: app.ActionAddAll, CategoryID: id}); err != nil {
					return err
				}
				cli.PrintSuccess("Added %d tags from '%s'", len(state.Preview.CurrentTags())-before, cat.Name)
				return nil
			})
		},
	}
}

func newPreviewRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <tag>",
		Aliases: []string{"rm"},
		Short:   "Remove a tag from the preview",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(state *app.State) error {
				res, err := state.Dispatch(app.Action{Kind: app.ActionRemoveTag, Tag: args[0]})
				if err != nil {
					return err
				}
				if !res.Changed {
					cli.PrintInfo("'%s' is not in the preview", args[0])
					return nil
				}
				cli.PrintSuccess("Removed '%s'", args[0])
				return nil
			})
		},
	}
}

func newPreviewClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(state *app.State) error {
				if _, err := state.Dispatch(app.Action{Kind: app.ActionClearPreview}); err != nil {
					return err
				}
				cli.PrintSuccess("Preview cleared")
				return nil
			})
		},
	}
}

func newPreviewDelimiterCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "delimiter [space|newline]",
		Short:     "Show or change the tag delimiter",
		Long:      `Without an argument, print the delimiter. Changing it re-joins the current tags.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(models.DelimiterSpace), string(models.DelimiterNewline)},
		RunE: func(cmd *cobra.Command, args []string) error {
			var d models.Delimiter
			if len(args) == 1 {
				var err error
				if d, err = models.ParseDelimiter(args[0]); err != nil {
					return err
				}
			}

			return withState(cmd, func(state *app.State) error {
				if len(args) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), state.Preview.Delimiter())
					return nil
				}
				res, err := state.Dispatch(app.Action{Kind: app.ActionSetDelimiter, Delimiter: d})
				if err != nil {
					return err
				}
				if !res.Changed {
					cli.PrintInfo("Delimiter is already %s", d)
					return nil
				}
				cli.PrintSuccess("Delimiter set to %s", d)
				return nil
			})
		},
	}
}
