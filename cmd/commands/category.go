package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tagduke/tagduke-cli/internal/cli"
	"github.com/tagduke/tagduke-cli/pkg/app"
	"github.com/tagduke/tagduke-cli/pkg/catalog"
	"github.com/tagduke/tagduke-cli/pkg/models"
)

var (
	categoryListFormat   string
	categoryEditTagsFile string
	categoryDeleteForce  bool
	categoryResetForce   bool
	categoryExportFormat string
	categoryExportOutput string
	categoryImportFormat string
	categoryImportAppend bool
)

// NewCategoryCommand creates the category command and its subcommands
func NewCategoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat", "categories"},
		Short:   "Manage tag categories",
		Long: `List, create, edit and delete the categories of tags shown in the TUI,
and move them in and out of JSON, YAML or TOML files.`,
	}

	cmd.AddCommand(
		newCategoryListCommand(),
		newCategoryCreateCommand(),
		newCategoryEditCommand(),
		newCategoryDeleteCommand(),
		newCategoryResetCommand(),
		newCategoryExportCommand(),
		newCategoryImportCommand(),
	)

	return cmd
}

func newCategoryListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories and their tags",
		Long: `List every category in display order.

Examples:
  # Table view
  tagduke category list

  # Machine readable
  tagduke category list --format json`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateOutputFormat(categoryListFormat)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(state *app.State) error {
				return listCategories(cmd.OutOrStdout(), state.Catalog.List())
			})
		},
	}

	cmd.Flags().StringVar(&categoryListFormat, "format", "text", "Output format (text, json, yaml)")

	return cmd
}

func listCategories(w io.Writer, cats []models.Category) error {
	if categoryListFormat != string(cli.FormatText) {
		return cli.OutputResults(w, categoryListFormat, cats)
	}

	if len(cats) == 0 {
		cli.PrintInfo("No categories. Create one with 'tagduke category create <name>'")
		return nil
	}

	table := cli.NewTableFormatter(w)
	table.Header("ID", "NAME", "TAGS", "PREVIEW")
	for _, c := range cats {
		table.Row(c.ID, cli.TruncateString(c.Name, 24), strconv.Itoa(len(c.Tags)), cli.TruncateString(strings.Join(c.Tags, " "), 48))
	}
	table.Flush()
	return nil
}

func newCategoryCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty category",
		Long: `Create an empty category. Its id is derived from the name; a name that
collides with an existing id gets a numeric suffix.

Examples:
  tagduke category create "Food photos"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return withState(cmd, func(state *app.State) error {
				res, err := state.Dispatch(app.Action{Kind: app.ActionCreateCategory, Name: name})
				if err != nil {
					return err
				}
				if !res.Changed {
					return fmt.Errorf("category name must not be blank")
				}
				cli.PrintSuccess("Created category '%s' (id: %s)", res.Category.Name, res.Category.ID)
				return nil
			})
		},
	}
}

func newCategoryEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace a category's tags",
		Long: `Replace the tags of a category with one tag per line.

Without --tags-file the current tags open in $EDITOR. Use '--tags-file -'
to read the new tags from standard input.

Examples:
  # Edit in $EDITOR
  tagduke category edit photo

  # Replace from a file
  tagduke category edit photo --tags-file photo-tags.txt

  # Replace from stdin
  printf '#a\n#b\n' | tagduke category edit photo --tags-file -`,
		Args: cobra.ExactArgs(1),
		RunE: runCategoryEdit,
	}

	cmd.Flags().StringVar(&categoryEditTagsFile, "tags-file", "", "Read tags from a file, '-' for stdin")

	return cmd
}

func runCategoryEdit(cmd *cobra.Command, args []string) error {
	id := args[0]
	return withState(cmd, func(state *app.State) error {
		cat, ok := state.Catalog.Get(id)
		if !ok {
			return fmt.Errorf("%w: %s", catalog.ErrCategoryNotFound, id)
		}

		text, err := readTagText(cmd, cat)
		if err != nil {
			return err
		}

		if _, err := state.Dispatch(app.Action{Kind: app.ActionReplaceTags, CategoryID: id, Text: text}); err != nil {
			return err
		}

		updated, _ := state.Catalog.Get(id)
		cli.PrintSuccess("Saved %d tags to '%s'", len(updated.Tags), updated.Name)
		return nil
	})
}

func readTagText(cmd *cobra.Command, cat models.Category) (string, error) {
	switch categoryEditTagsFile {
	case "":
		return cli.NewEditorLauncher().EditText("tagduke-"+cat.ID+"-*.txt", models.JoinTagLines(cat.Tags)+"\n")
	case "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read tags from stdin: %w", err)
		}
		return string(data), nil
	default:
		if err := cli.ValidateFilePath(categoryEditTagsFile); err != nil {
			return "", err
		}
		data, err := os.ReadFile(categoryEditTagsFile)
		if err != nil {
			return "", fmt.Errorf("failed to read tags file: %w", err)
		}
		return string(data), nil
	}
}

func newCategoryDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long: `Permanently delete a category and its tags.

Tags already in the preview stay there.

Examples:
  # Delete with confirmation
  tagduke category delete drone

  # Delete without asking
  tagduke category delete drone --force`,
		Args: cobra.ExactArgs(1),
		RunE: runCategoryDelete,
	}

	cmd.Flags().BoolVarP(&categoryDeleteForce, "force", "f", false, "Delete without confirmation")

	return cmd
}

func runCategoryDelete(cmd *cobra.Command, args []string) error {
	id := args[0]
	return withState(cmd, func(state *app.State) error {
		cat, ok := state.Catalog.Get(id)
		if !ok {
			return fmt.Errorf("%w: %s", catalog.ErrCategoryNotFound, id)
		}

		confirmed := categoryDeleteForce
		if !confirmed {
			var err error
			confirmed, err = cli.Confirm(fmt.Sprintf("Delete category '%s' with %d tags?", cat.Name, len(cat.Tags)), false)
			if err != nil {
				return err
			}
		}

		res, err := state.Dispatch(app.Action{Kind: app.ActionDeleteCategory, CategoryID: id, Confirmed: confirmed})
		if err != nil {
			return err
		}
		if !res.Changed {
			cli.PrintInfo("Deletion cancelled")
			return nil
		}
		cli.PrintSuccess("Deleted category '%s'", cat.Name)
		return nil
	})
}

func newCategoryResetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the built-in categories",
		Long: `Replace every category with the built-in catalog. Custom categories
and edits are lost; the preview is left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(state *app.State) error {
				if !categoryResetForce {
					confirmed, err := cli.Confirm(fmt.Sprintf("Replace all %d categories with the defaults?", state.Catalog.Len()), false)
					if err != nil {
						return err
					}
					if !confirmed {
						cli.PrintInfo("Reset cancelled")
						return nil
					}
				}
				if err := state.Catalog.Reset(); err != nil {
					return err
				}
				cli.PrintSuccess("Restored %d built-in categories", state.Catalog.Len())
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&categoryResetForce, "force", "f", false, "Reset without confirmation")

	return cmd
}

func newCategoryExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export categories to JSON, YAML or TOML",
		Long: `Write every category to stdout or a file.

When --format is omitted it is taken from the output file extension,
falling back to JSON.

Examples:
  tagduke category export > tags.json
  tagduke category export -o tags.yaml
  tagduke category export --format toml`,
		Args: cobra.NoArgs,
		RunE: runCategoryExport,
	}

	cmd.Flags().StringVar(&categoryExportFormat, "format", "", "Output format (json, yaml, toml)")
	cmd.Flags().StringVarP(&categoryExportOutput, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

func runCategoryExport(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(categoryExportFormat, categoryExportOutput)
	if err != nil {
		return err
	}

	return withState(cmd, func(state *app.State) error {
		if categoryExportOutput == "" {
			return catalog.Encode(cmd.OutOrStdout(), state.Catalog.Export(), format)
		}

		f, err := os.Create(categoryExportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := catalog.Encode(f, state.Catalog.Export(), format); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		cli.PrintSuccess("Exported %d categories to %s", state.Catalog.Len(), categoryExportOutput)
		return nil
	})
}

func newCategoryImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import categories from JSON, YAML or TOML",
		Long: `Load categories from a file written by 'tagduke category export'.
Older browser exports (a bare array, or {categories, delimiter}) are
accepted as JSON.

By default the imported categories replace the current ones; --append
adds them after the existing ones, renaming clashing ids.

Examples:
  tagduke category import tags.json
  tagduke category import extra.yaml --append`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateFilePath(args[0])
		},
		RunE: runCategoryImport,
	}

	cmd.Flags().StringVar(&categoryImportFormat, "format", "", "Input format (json, yaml, toml)")
	cmd.Flags().BoolVar(&categoryImportAppend, "append", false, "Append instead of replacing")

	return cmd
}

func runCategoryImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := resolveFormat(categoryImportFormat, path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	cats, err := catalog.Decode(f, format)
	if err != nil {
		return err
	}

	return withState(cmd, func(state *app.State) error {
		mode := catalog.ImportAppend
		if !categoryImportAppend {
			mode = catalog.ImportReplace
			confirmed, err := cli.Confirm(fmt.Sprintf("Replace %d categories with %d from %s?", state.Catalog.Len(), len(cats), path), false)
			if err != nil {
				return err
			}
			if !confirmed {
				cli.PrintInfo("Import cancelled")
				return nil
			}
		}

		n, err := state.Catalog.Import(cats, mode)
		if err != nil {
			return err
		}
		cli.PrintSuccess("Imported %d categories", n)
		return nil
	})
}

// resolveFormat prefers an explicit flag, then the file extension
func resolveFormat(flag, path string) (catalog.Format, error) {
	if flag != "" {
		return catalog.ParseFormat(flag)
	}
	return catalog.FormatFromPath(path), nil
}
