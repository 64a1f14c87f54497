package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tagduke/tagduke-cli/internal/logging"
	"github.com/tagduke/tagduke-cli/pkg/app"
	"github.com/tagduke/tagduke-cli/pkg/config"
	"github.com/tagduke/tagduke-cli/pkg/exporter"
	"github.com/tagduke/tagduke-cli/pkg/models"
	"github.com/tagduke/tagduke-cli/pkg/storage"
)

// GlobalOptions holds the persistent flags shared by every command
type GlobalOptions struct {
	ConfigPath string
	DataDir    string
	Backend    string
	LogLevel   string
	Quiet      bool
	NoColor    bool
	Yes        bool
	// Ephemeral keeps everything in memory for this run
	Ephemeral bool
}

// CommandContext loads settings and opens application state for a command
type CommandContext struct {
	Options  GlobalOptions
	Settings *models.Settings

	state     *app.State
	logCloser io.Closer
}

// NewCommandContext creates a new command context
func NewCommandContext(opts GlobalOptions) *CommandContext {
	return &CommandContext{Options: opts}
}

// SettingsPath returns the --config value or the XDG default
func (c *CommandContext) SettingsPath() string {
	if c.Options.ConfigPath != "" {
		return c.Options.ConfigPath
	}
	return config.SettingsPath()
}

// LoadSettings reads the settings file and applies flag overrides
func (c *CommandContext) LoadSettings() (*models.Settings, error) {
	if c.Settings != nil {
		return c.Settings, nil
	}

	settings, err := config.Load(c.SettingsPath())
	if err != nil {
		return nil, err
	}

	if c.Options.DataDir != "" {
		settings.Storage.DataDir = c.Options.DataDir
	}
	if c.Options.Backend != "" {
		settings.Storage.Backend = c.Options.Backend
	}
	if c.Options.Ephemeral {
		settings.Storage.Backend = models.BackendMemory
	}
	if c.Options.LogLevel != "" {
		settings.Log.Level = c.Options.LogLevel
	}

	c.Settings = settings
	return settings, nil
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	settings, err := c.LoadSettings()
	if err != nil {
		log.Warn().Err(err).Msg("using default settings")
		c.Settings = models.DefaultSettings()
		return c.Settings
	}
	return settings
}

// SetupLogging configures the global logger. Interactive sessions log to a
// file only since the terminal is owned by the renderer.
func (c *CommandContext) SetupLogging(interactive bool) error {
	settings := c.LoadSettingsWithDefault()

	opts := logging.Options{
		Level:   settings.Log.Level,
		File:    settings.Log.File,
		Console: !interactive,
	}
	if interactive && opts.File == "" {
		opts.File = filepath.Join(config.StateDir(), logging.LogFileName)
	}

	closer, err := logging.Setup(opts)
	if err != nil {
		return err
	}
	c.logCloser = closer
	return nil
}

// State opens the configured storage backend and loads application state.
// The exporter falls back to OSC 52 on out when the system clipboard fails.
func (c *CommandContext) State(out io.Writer) (*app.State, error) {
	if c.state != nil {
		return c.state, nil
	}

	settings, err := c.LoadSettings()
	if err != nil {
		return nil, err
	}

	kv, err := storage.Open(settings.Storage.Backend, config.ResolveDataDir(settings))
	if err != nil {
		return nil, err
	}

	state, err := app.Open(app.Options{
		KV:               kv,
		Exporter:         exporter.New(out),
		DefaultDelimiter: settings.UI.DefaultDelimiter,
	})
	if err != nil {
		kv.Close()
		return nil, err
	}

	log.Debug().
		Str("backend", settings.Storage.Backend).
		Int("categories", state.Catalog.Len()).
		Msg("state loaded")

	c.state = state
	return state, nil
}

// Close releases the state and the log file
func (c *CommandContext) Close() error {
	var err error
	if c.state != nil {
		err = c.state.Close()
		c.state = nil
	}
	if c.logCloser != nil {
		c.logCloser.Close()
		c.logCloser = nil
	}
	return err
}

// EditorLauncher handles all editor-related operations
type EditorLauncher struct {
	DefaultEditor string
}

// NewEditorLauncher creates a new editor launcher
func NewEditorLauncher() *EditorLauncher {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	return &EditorLauncher{
		DefaultEditor: editor,
	}
}

// OpenFile opens a file in the configured editor
func (e *EditorLauncher) OpenFile(path string) error {
	parts := strings.Fields(e.DefaultEditor)
	if len(parts) == 0 {
		return fmt.Errorf("no editor configured")
	}

	editorCmd := exec.Command(parts[0], append(parts[1:], path)...)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}

	return nil
}

// EditText writes content to a temp file, opens it in the editor and
// returns what the user saved
func (e *EditorLauncher) EditText(pattern, content string) (string, error) {
	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	name := tmpFile.Name()
	defer os.Remove(name)

	if _, err := tmpFile.WriteString(content); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := e.OpenFile(name); err != nil {
		return "", err
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return string(data), nil
}
