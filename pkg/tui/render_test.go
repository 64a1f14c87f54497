package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

func TestTruncateTag(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		maxWidth int
		same     bool
	}{
		{name: "fits", tag: "#photo", maxWidth: 10, same: true},
		{name: "ascii too long", tag: "#photography", maxWidth: 6},
		{name: "wide characters", tag: "#商品撮影", maxWidth: 5},
		{name: "zero width", tag: "#a", maxWidth: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateTag(tt.tag, tt.maxWidth)
			if tt.same && got != tt.tag {
				t.Errorf("expected %q unchanged, got %q", tt.tag, got)
			}
			if !tt.same && got == tt.tag {
				t.Errorf("expected %q to be truncated", tt.tag)
			}
			if w := runewidth.StringWidth(got); w > tt.maxWidth {
				t.Errorf("width %d exceeds %d", w, tt.maxWidth)
			}
		})
	}
}

func TestRenderTagChipsOverflow(t *testing.T) {
	tags := []string{"#one", "#two", "#three", "#four", "#five", "#six"}

	got := renderTagChips(tags, 24)
	if !strings.Contains(got, "+") {
		t.Errorf("expected a +N indicator, got %q", got)
	}
	if w := lipgloss.Width(got); w > 24 {
		t.Errorf("chips width %d exceeds 24", w)
	}

	if renderTagChips(nil, 24) != "" {
		t.Error("no tags should render nothing")
	}
}

func TestFormatHelpTextRowsWraps(t *testing.T) {
	rows := [][]key.Binding{{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add all")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	}}

	if lines := strings.Count(formatHelpTextRows(rows, 200), "\n"); lines != 0 {
		t.Errorf("expected one line at width 200, got %d breaks", lines)
	}
	if lines := strings.Count(formatHelpTextRows(rows, 12), "\n"); lines == 0 {
		t.Error("expected wrapping at width 12")
	}
}

func TestWrapPreviewHardWrapsUnbrokenText(t *testing.T) {
	text := strings.Repeat("x", 30)
	for _, line := range strings.Split(wrapPreview(text, 10), "\n") {
		if lipgloss.Width(line) > 10 {
			t.Errorf("line %q wider than 10", line)
		}
	}
}

func TestShortcutKeys(t *testing.T) {
	s := ShortcutKey{Mac: "ctrl+s", Linux: "alt+s", Windows: "alt+s", Default: "ctrl+s"}

	if got := s.forOS(OSLinux); got != "alt+s" {
		t.Errorf("expected alt+s on linux, got %s", got)
	}
	if got := s.forOS(OSUnknown); got != "ctrl+s" {
		t.Errorf("expected default on unknown OS, got %s", got)
	}

	keys := s.Keys()
	if keys[len(keys)-1] != "ctrl+s" && keys[0] != "ctrl+s" {
		t.Errorf("ctrl+s should always be accepted, got %v", keys)
	}
}

func TestShortcutWarnings(t *testing.T) {
	tests := []struct {
		name string
		key  ShortcutKey
		os   OSType
		want string
	}{
		{"ctrl+s on linux", ShortcutKey{Default: "ctrl+s"}, OSLinux, "(may need: stty -ixon)"},
		{"ctrl+d on linux", ShortcutKey{Linux: "ctrl+d", Default: "ctrl+s"}, OSLinux, "(caution: EOF signal)"},
		{"alt+s on linux", ShortcutKey{Linux: "alt+s", Default: "ctrl+s"}, OSLinux, ""},
		{"ctrl+s on mac", ShortcutKey{Default: "ctrl+s"}, OSMac, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.warningFor(tt.os); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}

	if got := helpWithWarning("save", "(may need: stty -ixon)"); got != "save (may need: stty -ixon)" {
		t.Errorf("unexpected help text %q", got)
	}
	if got := helpWithWarning("save", ""); got != "save" {
		t.Errorf("unexpected help text %q", got)
	}
}
