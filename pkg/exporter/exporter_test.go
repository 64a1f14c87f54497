package exporter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeWriter struct {
	calls []string
	err   error
}

func (f *fakeWriter) WriteAll(text string) error {
	f.calls = append(f.calls, text)
	return f.err
}

func TestCopy(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		primaryErr   error
		fallbackErr  error
		want         Notice
		wantPrimary  int
		wantFallback int
	}{
		{"empty preview", "", nil, nil, NoticeEmpty, 0, 0},
		{"whitespace preview", " \n\t ", nil, nil, NoticeEmpty, 0, 0},
		{"primary succeeds", "#a #b", nil, nil, NoticeCopied, 1, 0},
		{"fallback succeeds", "#a", errors.New("no xclip"), nil, NoticeCopied, 1, 1},
		{"both fail", "#a", errors.New("no xclip"), errors.New("not a tty"), NoticeManualCopy, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := &fakeWriter{err: tt.primaryErr}
			fallback := &fakeWriter{err: tt.fallbackErr}
			e := NewWithWriters(primary, fallback)

			got := e.Copy(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Len(t, primary.calls, tt.wantPrimary)
			assert.Len(t, fallback.calls, tt.wantFallback)
		})
	}
}

func TestCopyWithoutFallback(t *testing.T) {
	e := NewWithWriters(&fakeWriter{err: errors.New("boom")}, nil)
	assert.Equal(t, NoticeManualCopy, e.Copy("#a"))
}

func TestOSC52WritesSequence(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("TERM", "xterm-256color")

	var buf bytes.Buffer
	err := OSC52Clipboard{Out: &buf}.WriteAll("#撮影")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "\x1b]52;c;"), "got %q", buf.String())
}

func TestNoticeMessages(t *testing.T) {
	for _, n := range []Notice{NoticeEmpty, NoticeCopied, NoticeManualCopy} {
		assert.NotEmpty(t, n.String())
	}
	assert.Empty(t, NoticeNone.String())
}
