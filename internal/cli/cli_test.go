package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagduke/tagduke-cli/pkg/models"
)

func withIO(t *testing.T, input string) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	SetIO(strings.NewReader(input), out, errOut)
	SetGlobalFlags(false, true, false)
	t.Cleanup(func() {
		SetIO(os.Stdin, os.Stdout, os.Stderr)
		SetGlobalFlags(false, false, false)
	})
	return out, errOut
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "full yes", input: "YES\n", want: true},
		{name: "no", input: "n\n", defaultYes: true, want: false},
		{name: "empty takes default yes", input: "\n", defaultYes: true, want: true},
		{name: "empty takes default no", input: "\n", want: false},
		{name: "eof", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withIO(t, tt.input)
			got, err := Confirm("Continue?", tt.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirmSkipped(t *testing.T) {
	withIO(t, "n\n")
	SetGlobalFlags(false, true, true)

	got, err := Confirm("Continue?", false)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestPrintHelpers(t *testing.T) {
	out, errOut := withIO(t, "")

	PrintSuccess("saved %d", 3)
	PrintInfo("hello")
	PrintWarning("careful")
	PrintError("broken")

	assert.Equal(t, "OK: saved 3\nINFO: hello\n", out.String())
	assert.Equal(t, "WARNING: careful\nERROR: broken\n", errOut.String())

	out.Reset()
	SetGlobalFlags(true, true, false)
	PrintSuccess("quiet")
	assert.Empty(t, out.String())
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in       string
		maxWidth int
	}{
		{"short", 10},
		{"a fairly long category name", 10},
		{"グラフィックデザイン", 9},
		{"abcdef", 2},
	}

	for _, tt := range tests {
		got := TruncateString(tt.in, tt.maxWidth)
		assert.LessOrEqual(t, runewidth.StringWidth(got), tt.maxWidth, tt.in)
	}
	assert.Equal(t, "short", TruncateString("short", 10))
}

func TestOutputResults(t *testing.T) {
	data := []models.Category{{ID: "web", Name: "WEB", Tags: []string{"#web"}}}

	var buf bytes.Buffer
	require.NoError(t, OutputResults(&buf, "json", data))
	assert.Contains(t, buf.String(), `"id": "web"`)

	buf.Reset()
	require.NoError(t, OutputResults(&buf, "yaml", data))
	assert.Contains(t, buf.String(), "id: web")

	assert.Error(t, OutputResults(&buf, "xml", data))
}

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, ValidateOutputFormat("text"))
	assert.NoError(t, ValidateOutputFormat("json"))
	assert.Error(t, ValidateOutputFormat("csv"))
}

func TestValidateFilePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tags.json")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0644))

	assert.NoError(t, ValidateFilePath(file))
	assert.ErrorContains(t, ValidateFilePath(dir), "is a directory")
	assert.ErrorContains(t, ValidateFilePath(filepath.Join(dir, "missing")), "does not exist")
}

func TestLoadSettingsOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: file\nlog:\n  level: warn\n"), 0644))

	ctx := NewCommandContext(GlobalOptions{
		ConfigPath: path,
		Backend:    models.BackendMemory,
		DataDir:    dir,
	})
	settings, err := ctx.LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, models.BackendMemory, settings.Storage.Backend)
	assert.Equal(t, dir, settings.Storage.DataDir)
	assert.Equal(t, "warn", settings.Log.Level)
	assert.Equal(t, path, ctx.SettingsPath())
}

func TestCommandContextState(t *testing.T) {
	dir := t.TempDir()
	ctx := NewCommandContext(GlobalOptions{
		ConfigPath: filepath.Join(dir, "missing.yaml"),
		Backend:    models.BackendMemory,
	})
	defer ctx.Close()

	state, err := ctx.State(new(bytes.Buffer))
	require.NoError(t, err)
	assert.Equal(t, 6, state.Catalog.Len())

	again, err := ctx.State(new(bytes.Buffer))
	require.NoError(t, err)
	assert.Same(t, state, again)
}

func TestEditTextWithScriptedEditor(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nprintf '#edited\\n' > \"$1\"\n"), 0755))

	launcher := &EditorLauncher{DefaultEditor: script}
	got, err := launcher.EditText("tags-*.txt", "#old\n")
	require.NoError(t, err)
	assert.Equal(t, "#edited\n", got)
}

func TestEphemeralUsesMemoryBackend(t *testing.T) {
	ctx := NewCommandContext(GlobalOptions{
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
		Backend:    models.BackendFile,
		Ephemeral:  true,
	})

	settings, err := ctx.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, models.BackendMemory, settings.Storage.Backend)
}
