package tui

import "github.com/tagduke/tagduke-cli/pkg/exporter"

// StatusMsg shows a message on the status line until it times out
type StatusMsg string

type clearStatusMsg struct {
	seq int
}

// copyResultMsg reports a clipboard write finished off the update loop
type copyResultMsg struct {
	notice exporter.Notice
}
