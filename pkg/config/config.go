package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tagduke/tagduke-cli/pkg/models"
)

const (
	AppName          = "tagduke"
	SettingsFileName = "settings.yaml"
)

// ConfigDir returns the configuration directory path
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DataDir returns the directory holding persisted records
func DataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// StateDir returns the directory for logs
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

// SettingsPath returns the default settings file path
func SettingsPath() string {
	return filepath.Join(ConfigDir(), SettingsFileName)
}

func xdgDir(env, fallback string) string {
	base := os.Getenv(env)
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, fallback)
	}
	return filepath.Join(base, AppName)
}

// Load reads settings from path, returning defaults if the file is absent.
// Values missing from the file keep their defaults.
func Load(path string) (*models.Settings, error) {
	settings := models.DefaultSettings()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	normalize(settings)
	return settings, nil
}

// Save writes settings to path
func Save(path string, settings *models.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// ResolveDataDir returns the configured data dir or the XDG default
func ResolveDataDir(settings *models.Settings) string {
	if settings.Storage.DataDir != "" {
		return settings.Storage.DataDir
	}
	return DataDir()
}

func normalize(s *models.Settings) {
	defaults := models.DefaultSettings()
	if s.Storage.Backend == "" {
		s.Storage.Backend = defaults.Storage.Backend
	}
	if s.UI.NarrowWidth <= 0 {
		s.UI.NarrowWidth = defaults.UI.NarrowWidth
	}
	s.UI.DefaultDelimiter = s.UI.DefaultDelimiter.OrDefault()
	if s.Log.Level == "" {
		s.Log.Level = defaults.Log.Level
	}
}
