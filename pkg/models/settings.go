package models

// Settings represents the application configuration
type Settings struct {
	Storage StorageSettings `yaml:"storage"`
	UI      UISettings      `yaml:"ui"`
	Log     LogSettings     `yaml:"log"`
}

// StorageSettings selects the persistence backend
type StorageSettings struct {
	Backend string `yaml:"backend"`  // "badger", "file" or "memory"
	DataDir string `yaml:"data_dir"` // empty means the XDG data dir
}

// UISettings controls TUI behavior
type UISettings struct {
	NarrowWidth      int       `yaml:"narrow_width"`
	DefaultDelimiter Delimiter `yaml:"default_delimiter"`
	ShowHeader       bool      `yaml:"show_header"`
}

// LogSettings controls where diagnostics go
type LogSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

const (
	BackendBadger = "badger"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Storage: StorageSettings{
			Backend: BackendBadger,
		},
		UI: UISettings{
			NarrowWidth:      80,
			DefaultDelimiter: DelimiterSpace,
			ShowHeader:       true,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}
