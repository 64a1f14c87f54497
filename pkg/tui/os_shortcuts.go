package tui

import (
	"runtime"
)

// OSType represents the operating system type
type OSType int

const (
	OSMac OSType = iota
	OSLinux
	OSWindows
	OSUnknown
)

// GetOS returns the current operating system type
func GetOS() OSType {
	switch runtime.GOOS {
	case "darwin":
		return OSMac
	case "linux":
		return OSLinux
	case "windows":
		return OSWindows
	default:
		return OSUnknown
	}
}

// ShortcutKey represents a keyboard shortcut with OS-specific variations
type ShortcutKey struct {
	Mac     string
	Linux   string
	Windows string
	Default string // Fallback if OS-specific not defined
}

// Get returns the appropriate shortcut for the current OS
func (s ShortcutKey) Get() string {
	return s.forOS(GetOS())
}

func (s ShortcutKey) forOS(os OSType) string {
	switch os {
	case OSMac:
		if s.Mac != "" {
			return s.Mac
		}
	case OSLinux:
		if s.Linux != "" {
			return s.Linux
		}
	case OSWindows:
		if s.Windows != "" {
			return s.Windows
		}
	}
	return s.Default
}

// Keys returns the OS shortcut first, followed by the default when they
// differ. Both are accepted so ctrl+s still works where the terminal allows.
func (s ShortcutKey) Keys() []string {
	primary := s.Get()
	if primary == s.Default || s.Default == "" {
		return []string{primary}
	}
	return []string{primary, s.Default}
}

// Warning describes known terminal conflicts for the shortcut on this OS
func (s ShortcutKey) Warning() string {
	return s.warningFor(GetOS())
}

func (s ShortcutKey) warningFor(os OSType) string {
	if os != OSLinux {
		return ""
	}
	switch s.forOS(os) {
	case "ctrl+s":
		return "(may need: stty -ixon)"
	case "ctrl+d":
		return "(caution: EOF signal)"
	}
	return ""
}

// Shortcuts holds the keys that collide with terminal control sequences on
// some platforms
var Shortcuts = struct {
	Save  ShortcutKey
	Quit  ShortcutKey
	Focus ShortcutKey
}{
	Save: ShortcutKey{
		Mac:     "ctrl+s",
		Linux:   "alt+s", // Avoid Ctrl+S terminal conflict (XOFF)
		Windows: "alt+s",
		Default: "ctrl+s",
	},
	Quit: ShortcutKey{
		Default: "ctrl+c",
	},
	Focus: ShortcutKey{
		Mac:     "shift+tab",
		Linux:   "shift+tab",
		Windows: "backtab",
		Default: "shift+tab",
	},
}
