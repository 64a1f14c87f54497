package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagduke/tagduke-cli/pkg/catalog"
	"github.com/tagduke/tagduke-cli/pkg/models"
)

// runCommand executes a fresh command tree against the file backend in dir
func runCommand(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()

	root := &cobra.Command{Use: "tagduke", SilenceUsage: true, SilenceErrors: true}
	RegisterGlobalFlags(root)
	AddCommands(root)

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{
		"--backend", models.BackendFile,
		"--data-dir", dir,
		"--config", filepath.Join(dir, "settings.yaml"),
		"--no-color",
		"--log-level", "error",
	}, args...))

	err := root.Execute()
	return buf.String(), err
}

func listCategoriesJSON(t *testing.T, dir string) []models.Category {
	t.Helper()
	out, err := runCommand(t, dir, "", "category", "list", "--format", "json")
	require.NoError(t, err)

	var cats []models.Category
	require.NoError(t, json.Unmarshal([]byte(out), &cats), out)
	return cats
}

func showPreviewJSON(t *testing.T, dir string) PreviewResult {
	t.Helper()
	out, err := runCommand(t, dir, "", "preview", "show", "--format", "json")
	require.NoError(t, err)

	var res PreviewResult
	require.NoError(t, json.Unmarshal([]byte(out), &res), out)
	return res
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := runCommand(t, dir, "", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote settings")
	assert.Contains(t, out, "Stored 6 built-in categories")
	assert.FileExists(t, filepath.Join(dir, "settings.yaml"))

	out, err = runCommand(t, dir, "", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings already exist")
	assert.Contains(t, out, "Storage already holds 6 categories")
}

func TestCategoryListText(t *testing.T) {
	dir := t.TempDir()

	out, err := runCommand(t, dir, "", "category", "list")
	require.NoError(t, err)

	for _, expected := range []string{"ID", "NAME", "basic", "photo", "drone"} {
		assert.Contains(t, out, expected, "Output should contain: %s", expected)
	}
}

func TestCategoryListInvalidFormat(t *testing.T) {
	_, err := runCommand(t, t.TempDir(), "", "category", "list", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestCategoryCreate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		wantErr bool
		wantOut string
	}{
		{
			name:    "simple name",
			args:    []string{"Food"},
			wantOut: "id: food",
		},
		{
			name:    "colliding name gets suffix",
			args:    []string{"food"},
			wantOut: "id: food-1",
		},
		{
			name:    "words are joined",
			args:    []string{"Street", "Snap"},
			wantOut: "id: street-snap",
		},
		{
			name:    "blank name",
			args:    []string{"   "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCommand(t, dir, "", append([]string{"category", "create"}, tt.args...)...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.wantOut)
		})
	}

	assert.Len(t, listCategoriesJSON(t, dir), 9)
}

func TestCategoryEditFromStdin(t *testing.T) {
	dir := t.TempDir()

	out, err := runCommand(t, dir, "#a\n\n  #b  \n", "category", "edit", "photo", "--tags-file", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 2 tags")

	for _, c := range listCategoriesJSON(t, dir) {
		if c.ID == "photo" {
			assert.Equal(t, []string{"#a", "#b"}, c.Tags)
		}
	}
}

func TestCategoryEditFromFile(t *testing.T) {
	dir := t.TempDir()
	tagsFile := filepath.Join(dir, "tags.txt")
	require.NoError(t, os.WriteFile(tagsFile, []byte("#x\n#y\n#z\n"), 0644))

	_, err := runCommand(t, dir, "", "category", "edit", "web", "--tags-file", tagsFile)
	require.NoError(t, err)

	for _, c := range listCategoriesJSON(t, dir) {
		if c.ID == "web" {
			assert.Equal(t, []string{"#x", "#y", "#z"}, c.Tags)
		}
	}
}

func TestCategoryDelete(t *testing.T) {
	dir := t.TempDir()

	_, err := runCommand(t, dir, "", "category", "delete", "nope", "--force")
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrCategoryNotFound)

	out, err := runCommand(t, dir, "n\n", "category", "delete", "drone")
	require.NoError(t, err)
	assert.Contains(t, out, "Deletion cancelled")
	assert.Len(t, listCategoriesJSON(t, dir), 6)

	out, err = runCommand(t, dir, "y\n", "category", "delete", "drone")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted category")

	cats := listCategoriesJSON(t, dir)
	require.Len(t, cats, 5)
	for _, c := range cats {
		assert.NotEqual(t, "drone", c.ID)
	}
}

func TestCategoryResetWithYesFlag(t *testing.T) {
	dir := t.TempDir()

	_, err := runCommand(t, dir, "", "category", "delete", "web", "--force")
	require.NoError(t, err)
	require.Len(t, listCategoriesJSON(t, dir), 5)

	out, err := runCommand(t, dir, "", "--yes", "category", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Restored 6")
	assert.Len(t, listCategoriesJSON(t, dir), 6)
}

func TestCategoryExportImport(t *testing.T) {
	dir := t.TempDir()
	exportPath := filepath.Join(dir, "tags.yaml")

	out, err := runCommand(t, dir, "", "category", "export", "-o", exportPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 6 categories")

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "categories:")

	_, err = runCommand(t, dir, "", "category", "import", exportPath, "--append")
	require.NoError(t, err)

	cats := listCategoriesJSON(t, dir)
	require.Len(t, cats, 12)
	seen := map[string]bool{}
	for _, c := range cats {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
	}
	assert.True(t, seen["photo-1"])

	_, err = runCommand(t, dir, "", "--yes", "category", "import", exportPath)
	require.NoError(t, err)
	assert.Len(t, listCategoriesJSON(t, dir), 6)
}

func TestCategoryExportTOMLToStdout(t *testing.T) {
	out, err := runCommand(t, t.TempDir(), "", "category", "export", "--format", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "[[categories]]")
	assert.Contains(t, out, "version = 2")
}

func TestCategoryImportMissingFile(t *testing.T) {
	_, err := runCommand(t, t.TempDir(), "", "category", "import", "does-not-exist.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path does not exist")
}

func TestPreviewAddAllThenRemove(t *testing.T) {
	dir := t.TempDir()

	out, err := runCommand(t, dir, "", "preview", "add-all", "photo")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 4 tags")

	_, err = runCommand(t, dir, "", "preview", "remove", "#商品撮影")
	require.NoError(t, err)

	res := showPreviewJSON(t, dir)
	assert.Equal(t, []string{"#撮影", "#出張撮影", "#カメラマン"}, res.Tags)
	assert.Equal(t, "#撮影 #出張撮影 #カメラマン", res.Text)

	out, err = runCommand(t, dir, "", "preview", "remove", "#missing")
	require.NoError(t, err)
	assert.Contains(t, out, "is not in the preview")
}

func TestPreviewAddSkipsDuplicates(t *testing.T) {
	dir := t.TempDir()

	out, err := runCommand(t, dir, "", "preview", "add", "#a", "#b", "#a")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 2 of 3 tags")

	assert.Equal(t, []string{"#a", "#b"}, showPreviewJSON(t, dir).Tags)
}

func TestPreviewAddAllUnknownCategory(t *testing.T) {
	_, err := runCommand(t, t.TempDir(), "", "preview", "add-all", "nope")
	assert.ErrorIs(t, err, catalog.ErrCategoryNotFound)
}

func TestPreviewDelimiter(t *testing.T) {
	dir := t.TempDir()

	_, err := runCommand(t, dir, "", "preview", "add", "#a", "#b")
	require.NoError(t, err)

	out, err := runCommand(t, dir, "", "preview", "delimiter")
	require.NoError(t, err)
	assert.Equal(t, "space\n", out)

	_, err = runCommand(t, dir, "", "preview", "delimiter", "newline")
	require.NoError(t, err)

	res := showPreviewJSON(t, dir)
	assert.Equal(t, "newline", res.Delimiter)
	assert.Equal(t, "#a\n#b", res.Text)

	_, err = runCommand(t, dir, "", "preview", "delimiter", "comma")
	assert.ErrorIs(t, err, models.ErrInvalidDelimiter)
}

func TestPreviewClear(t *testing.T) {
	dir := t.TempDir()

	_, err := runCommand(t, dir, "", "preview", "add", "#a")
	require.NoError(t, err)
	_, err = runCommand(t, dir, "", "preview", "clear")
	require.NoError(t, err)

	out, err := runCommand(t, dir, "", "preview", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Preview is empty")
}

func TestCopyEmptyPreview(t *testing.T) {
	out, err := runCommand(t, t.TempDir(), "", "copy")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to copy")
}
