package exporter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
)

// Notice is the user-visible outcome of a copy
type Notice int

const (
	NoticeNone Notice = iota
	NoticeEmpty
	NoticeCopied
	NoticeManualCopy
)

func (n Notice) String() string {
	switch n {
	case NoticeEmpty:
		return "Nothing to copy: the preview is empty"
	case NoticeCopied:
		return "Copied to clipboard"
	case NoticeManualCopy:
		return "Could not access the clipboard. Select the preview text and copy it manually"
	default:
		return ""
	}
}

var (
	ErrClipboardUnsupported = errors.New("no system clipboard available")
	ErrNotATerminal         = errors.New("output is not a terminal")
)

// Writer puts text on some clipboard
type Writer interface {
	WriteAll(text string) error
}

// SystemClipboard writes through the platform clipboard utilities
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// OSC52Clipboard asks the terminal emulator to set the clipboard with an
// OSC 52 escape sequence. It works over SSH where no system clipboard exists.
type OSC52Clipboard struct {
	Out io.Writer
}

func (c OSC52Clipboard) WriteAll(text string) error {
	if f, ok := c.Out.(*os.File); ok && !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return ErrNotATerminal
	}

	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	} else if strings.HasPrefix(os.Getenv("TERM"), "screen") {
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(c.Out); err != nil {
		return fmt.Errorf("write osc52 sequence: %w", err)
	}
	return nil
}

// Exporter copies preview text, trying the primary writer first and the
// fallback once if that fails.
type Exporter struct {
	primary  Writer
	fallback Writer
}

// New returns an exporter using the system clipboard with an OSC 52
// fallback written to out.
func New(out io.Writer) *Exporter {
	return NewWithWriters(SystemClipboard{}, OSC52Clipboard{Out: out})
}

func NewWithWriters(primary, fallback Writer) *Exporter {
	return &Exporter{primary: primary, fallback: fallback}
}

// Copy puts text on the clipboard. Blank text is never written.
func (e *Exporter) Copy(text string) Notice {
	if strings.TrimSpace(text) == "" {
		return NoticeEmpty
	}

	err := e.primary.WriteAll(text)
	if err == nil {
		return NoticeCopied
	}
	log.Debug().Err(err).Msg("system clipboard write failed, trying fallback")

	if e.fallback != nil {
		ferr := e.fallback.WriteAll(text)
		if ferr == nil {
			return NoticeCopied
		}
		err = errors.Join(err, ferr)
	}

	log.Warn().Err(err).Msg("clipboard copy failed")
	return NoticeManualCopy
}
