package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	LogFileName        = "tagduke.log"
	logFilePermissions = 0o644
)

// Options selects where log output goes
type Options struct {
	Level string
	// File receives JSON log lines when set
	File string
	// Console enables human readable output on stderr. The TUI turns this
	// off because the terminal belongs to the renderer.
	Console bool
}

// Setup configures the global zerolog logger. The returned closer releases
// the log file, if any.
func Setup(opts Options) (io.Closer, error) {
	SetLevel(opts.Level)

	writers := []io.Writer{}
	var closer io.Closer = nopCloser{}

	if opts.Console {
		writers = append(writers, ConsoleWriter(os.Stderr))
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", opts.File, err)
		}
		writers = append(writers, file)
		closer = file
	}

	if len(writers) == 0 {
		log.Logger = zerolog.Nop()
		return closer, nil
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	return closer, nil
}

// SetLevel sets the global level from a name, ignoring unknown names
func SetLevel(level string) {
	switch level {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
	}
}

// ConsoleWriter returns a pretty writer, colored only on a terminal
func ConsoleWriter(f *os.File) io.Writer {
	noColor := !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	return zerolog.ConsoleWriter{Out: f, NoColor: noColor, TimeFormat: time.DateTime}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
