// Package preview holds the working set of tags queued for export.
//
// The buffer keeps the delimited text the user sees; tags are parsed from
// it on demand so manual edits and programmatic edits share one source.
package preview

import (
	"fmt"
	"strings"

	"github.com/tagduke/tagduke-cli/pkg/models"
)

// Persister receives the buffer state after every mutation
type Persister interface {
	SavePreview(state models.PreviewState) error
}

// Buffer is the preview text plus its delimiter mode and selection markers
type Buffer struct {
	text      string
	delimiter models.Delimiter
	marked    map[string]bool
	store     Persister
}

// New restores a buffer from persisted state. Stored tags are joined
// verbatim, so repeats from earlier manual edits are kept.
func New(state models.PreviewState, store Persister) *Buffer {
	delimiter := state.Delimiter.OrDefault()
	return &Buffer{
		text:      strings.Join(state.SelectedTags, delimiter.Separator()),
		delimiter: delimiter,
		marked:    make(map[string]bool),
		store:     store,
	}
}

// Text returns the buffer text as displayed
func (b *Buffer) Text() string {
	return b.text
}

// Delimiter returns the active delimiter mode
func (b *Buffer) Delimiter() models.Delimiter {
	return b.delimiter
}

// CurrentTags parses the text on the active delimiter, dropping blanks and
// later repeats.
func (b *Buffer) CurrentTags() []string {
	return dedupe(models.SplitTags(b.text, b.delimiter))
}

// Contains reports whether tag is currently in the buffer. A tag holding
// the separator counts as present when every token it splits into is.
func (b *Buffer) Contains(tag string) bool {
	parts := b.tokens(tag)
	if len(parts) == 0 {
		return false
	}
	current := make(map[string]bool)
	for _, t := range b.CurrentTags() {
		current[t] = true
	}
	for _, p := range parts {
		if !current[p] {
			return false
		}
	}
	return true
}

// State returns the persisted form: the text tokenized without dedupe
func (b *Buffer) State() models.PreviewState {
	return models.PreviewState{
		SelectedTags: models.SplitTags(b.text, b.delimiter),
		Delimiter:    b.delimiter,
	}
}

// SetTags replaces the buffer with tags, deduplicated in first-seen order
func (b *Buffer) SetTags(tags []string) error {
	b.text = strings.Join(dedupe(tags), b.delimiter.Separator())
	return b.persist()
}

// AddOne appends tag unless it is already present
func (b *Buffer) AddOne(tag string) (bool, error) {
	n, err := b.AddMany([]string{tag})
	return n > 0, err
}

// AddMany appends every tag not already present, keeping input order, and
// persists once. It returns how many tags were added.
func (b *Buffer) AddMany(tags []string) (int, error) {
	current := b.CurrentTags()
	seen := make(map[string]bool, len(current))
	for _, t := range current {
		seen[t] = true
	}

	added := 0
	for _, tag := range tags {
		grew := false
		for _, t := range b.tokens(tag) {
			if seen[t] {
				continue
			}
			seen[t] = true
			current = append(current, t)
			grew = true
		}
		if grew {
			added++
		}
	}
	if added == 0 {
		return 0, nil
	}
	return added, b.SetTags(current)
}

// RemoveOne drops every exact occurrence of tag
func (b *Buffer) RemoveOne(tag string) (bool, error) {
	drop := make(map[string]bool)
	for _, t := range b.tokens(tag) {
		drop[t] = true
	}
	current := b.CurrentTags()
	kept := current[:0:0]
	for _, t := range current {
		if !drop[t] {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(current) {
		return false, nil
	}
	return true, b.SetTags(kept)
}

// Clear empties the buffer and drops all selection markers
func (b *Buffer) Clear() error {
	b.text = ""
	b.marked = make(map[string]bool)
	return b.persist()
}

// ChangeDelimiter re-parses the text under the old delimiter and writes it
// back out under d.
func (b *Buffer) ChangeDelimiter(d models.Delimiter) error {
	if !d.Valid() {
		return models.ErrInvalidDelimiter
	}
	tags := b.CurrentTags()
	b.delimiter = d
	return b.SetTags(tags)
}

// SetText stores a manual edit verbatim. Nothing is deduplicated until the
// next add or remove re-parses the text.
func (b *Buffer) SetText(text string) error {
	b.text = text
	return b.persist()
}

// Toggle flips the selection marker for tag and adds or removes it to match.
// It reports whether the tag ended up selected. After a failed write the
// marker follows buffer membership.
func (b *Buffer) Toggle(tag string) (bool, error) {
	var err error
	if b.marked[tag] {
		_, err = b.RemoveOne(tag)
	} else {
		_, err = b.AddOne(tag)
	}
	if err != nil {
		if b.Contains(tag) {
			b.marked[tag] = true
		} else {
			delete(b.marked, tag)
		}
		return b.marked[tag], err
	}
	if b.marked[tag] {
		delete(b.marked, tag)
		return false, nil
	}
	b.marked[tag] = true
	return true, nil
}

// Marked reports whether tag carries a selection marker
func (b *Buffer) Marked(tag string) bool {
	return b.marked[tag]
}

func (b *Buffer) persist() error {
	if b.store == nil {
		return nil
	}
	if err := b.store.SavePreview(b.State()); err != nil {
		return fmt.Errorf("failed to persist preview: %w", err)
	}
	return nil
}

// tokens splits an incoming tag the way CurrentTags parses the text, so a
// tag holding the separator is stored and matched as its parts.
func (b *Buffer) tokens(tag string) []string {
	return models.SplitTags(tag, b.delimiter)
}

func dedupe(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
