package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tagduke/tagduke-cli/pkg/models"
)

const (
	// Key names predate the version field and are kept so v1 data migrates in place.
	CategoriesKey = "tagduke-data-v1"
	PreviewKey    = "tagduke-preview-v1"

	SchemaVersion = 2
)

var ErrMissingCategories = errors.New("record has no categories array")

type categoriesRecord struct {
	Version    int               `json:"version"`
	Categories []models.Category `json:"categories"`
}

type previewRecord struct {
	Version      int              `json:"version"`
	SelectedTags []string         `json:"selectedTags"`
	Delimiter    models.Delimiter `json:"delimiter"`
}

// legacyCategories is the v1 shape: categories plus the delimiter the page
// was last using.
type legacyCategories struct {
	Version    int                `json:"version"`
	Categories *[]models.Category `json:"categories"`
	Delimiter  models.Delimiter   `json:"delimiter"`
}

// legacyPreview accepts both the v1 text shape and the v2 array shape
type legacyPreview struct {
	Version      int              `json:"version"`
	SelectedTags *[]string        `json:"selectedTags"`
	Text         *string          `json:"text"`
	Delimiter    models.Delimiter `json:"delimiter"`
}

// MigrateCategories decodes any known categories shape. Bare arrays and v1
// objects are accepted; legacyDelimiter is set when a v1 record carried one.
func MigrateCategories(raw []byte) (cats []models.Category, legacyDelimiter models.Delimiter, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &cats); err != nil {
			return nil, "", fmt.Errorf("parse categories array: %w", err)
		}
		return normalizeCategories(cats), "", nil
	}

	var rec legacyCategories
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, "", fmt.Errorf("parse categories record: %w", err)
	}
	if rec.Categories == nil {
		return nil, "", ErrMissingCategories
	}
	if rec.Version < SchemaVersion && rec.Delimiter.Valid() {
		legacyDelimiter = rec.Delimiter
	}
	return normalizeCategories(*rec.Categories), legacyDelimiter, nil
}

// MigratePreview decodes any known preview shape into the array model.
// A v1 text record is split on its delimiter without deduplication so
// hand-typed repeats survive the upgrade.
func MigratePreview(raw []byte, fallback models.Delimiter) (models.PreviewState, error) {
	var rec legacyPreview
	if err := json.Unmarshal(raw, &rec); err != nil {
		return models.PreviewState{}, fmt.Errorf("parse preview record: %w", err)
	}

	delimiter := rec.Delimiter
	if !delimiter.Valid() {
		delimiter = fallback.OrDefault()
	}

	state := models.PreviewState{Delimiter: delimiter, SelectedTags: []string{}}
	switch {
	case rec.SelectedTags != nil:
		for _, tag := range *rec.SelectedTags {
			if tag != "" {
				state.SelectedTags = append(state.SelectedTags, tag)
			}
		}
	case rec.Text != nil:
		state.SelectedTags = models.SplitTags(*rec.Text, delimiter)
	}
	return state, nil
}

func normalizeCategories(cats []models.Category) []models.Category {
	out := make([]models.Category, 0, len(cats))
	for _, c := range cats {
		out = append(out, c.Clone())
	}
	return out
}

// Adapter reads and writes the two application records
type Adapter struct {
	kv KV
}

func NewAdapter(kv KV) *Adapter {
	return &Adapter{kv: kv}
}

// LoadCategories returns the stored collection. ok is false when the record
// is missing or unreadable; callers fall back to the built-in catalog.
func (a *Adapter) LoadCategories() (cats []models.Category, legacyDelimiter models.Delimiter, ok bool) {
	raw, err := a.kv.Get(CategoriesKey)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			log.Warn().Err(err).Str("key", CategoriesKey).Msg("failed to read categories, using defaults")
		}
		return nil, "", false
	}

	cats, legacyDelimiter, err = MigrateCategories(raw)
	if err != nil {
		log.Warn().Err(err).Str("key", CategoriesKey).Msg("failed to parse categories, using defaults")
		return nil, "", false
	}
	return cats, legacyDelimiter, true
}

// SaveCategories writes the whole collection in the current schema
func (a *Adapter) SaveCategories(cats []models.Category) error {
	data, err := json.Marshal(categoriesRecord{
		Version:    SchemaVersion,
		Categories: normalizeCategories(cats),
	})
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}
	if err := a.kv.Set(CategoriesKey, data); err != nil {
		return fmt.Errorf("save categories: %w", err)
	}
	return nil
}

// LoadPreview returns the stored preview state. fallback supplies the
// delimiter when the record is missing or does not name one.
func (a *Adapter) LoadPreview(fallback models.Delimiter) (models.PreviewState, bool) {
	empty := models.PreviewState{SelectedTags: []string{}, Delimiter: fallback.OrDefault()}

	raw, err := a.kv.Get(PreviewKey)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			log.Warn().Err(err).Str("key", PreviewKey).Msg("failed to read preview, starting empty")
		}
		return empty, false
	}

	state, err := MigratePreview(raw, fallback)
	if err != nil {
		log.Warn().Err(err).Str("key", PreviewKey).Msg("failed to parse preview, starting empty")
		return empty, false
	}
	return state, true
}

// SavePreview writes the preview record in the current schema
func (a *Adapter) SavePreview(state models.PreviewState) error {
	tags := state.SelectedTags
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(previewRecord{
		Version:      SchemaVersion,
		SelectedTags: tags,
		Delimiter:    state.Delimiter.OrDefault(),
	})
	if err != nil {
		return fmt.Errorf("marshal preview: %w", err)
	}
	if err := a.kv.Set(PreviewKey, data); err != nil {
		return fmt.Errorf("save preview: %w", err)
	}
	return nil
}
