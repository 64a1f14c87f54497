package models

import (
	"errors"
	"strings"
)

// Delimiter selects how preview tags are joined into text and split back out
type Delimiter string

const (
	DelimiterSpace   Delimiter = "space"
	DelimiterNewline Delimiter = "newline"
)

var ErrInvalidDelimiter = errors.New(`delimiter must be "space" or "newline"`)

// ParseDelimiter converts user input into a Delimiter
func ParseDelimiter(s string) (Delimiter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "space", " ":
		return DelimiterSpace, nil
	case "newline", "\n", "nl":
		return DelimiterNewline, nil
	default:
		return "", ErrInvalidDelimiter
	}
}

// Valid reports whether d is one of the known delimiter modes
func (d Delimiter) Valid() bool {
	return d == DelimiterSpace || d == DelimiterNewline
}

// OrDefault returns d, or DelimiterSpace when d is not a known mode
func (d Delimiter) OrDefault() Delimiter {
	if d.Valid() {
		return d
	}
	return DelimiterSpace
}

// Separator returns the string placed between serialized tags
func (d Delimiter) Separator() string {
	if d == DelimiterNewline {
		return "\n"
	}
	return " "
}

// Toggle returns the other delimiter mode
func (d Delimiter) Toggle() Delimiter {
	if d == DelimiterNewline {
		return DelimiterSpace
	}
	return DelimiterNewline
}

// Category is a named group of hashtags
type Category struct {
	ID   string   `json:"id" yaml:"id" toml:"id"`
	Name string   `json:"name" yaml:"name" toml:"name"`
	Tags []string `json:"tags" yaml:"tags" toml:"tags"`
}

// Clone returns a deep copy; Tags is never nil so it always marshals as an array.
func (c Category) Clone() Category {
	tags := make([]string, len(c.Tags))
	copy(tags, c.Tags)
	return Category{ID: c.ID, Name: c.Name, Tags: tags}
}

// PreviewState is the persisted form of the preview buffer
type PreviewState struct {
	SelectedTags []string  `json:"selectedTags"`
	Delimiter    Delimiter `json:"delimiter"`
}
