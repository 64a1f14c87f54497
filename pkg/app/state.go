// Package app wires the category store, preview buffer and clipboard
// exporter into one state object and routes user actions to them.
package app

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tagduke/tagduke-cli/pkg/catalog"
	"github.com/tagduke/tagduke-cli/pkg/exporter"
	"github.com/tagduke/tagduke-cli/pkg/models"
	"github.com/tagduke/tagduke-cli/pkg/preview"
	"github.com/tagduke/tagduke-cli/pkg/storage"
)

// State is the single owner of application data for one session
type State struct {
	Catalog  *catalog.Store
	Preview  *preview.Buffer
	Exporter *exporter.Exporter

	kv storage.KV
}

// Options configures Open
type Options struct {
	KV               storage.KV
	Exporter         *exporter.Exporter
	DefaultDelimiter models.Delimiter
}

// Open loads both records from the KV store. Each record is loaded and
// defaulted on its own, so one bad record never blocks the other.
func Open(opts Options) (*State, error) {
	if opts.KV == nil {
		return nil, fmt.Errorf("no storage backend configured")
	}
	adapter := storage.NewAdapter(opts.KV)

	store := catalog.Load(adapter)

	fallback := opts.DefaultDelimiter.OrDefault()
	legacy := store.LegacyDelimiter()
	if legacy.Valid() {
		fallback = legacy
	}
	previewState, ok := adapter.LoadPreview(fallback)
	if !ok && legacy.Valid() {
		// The next categories write drops the v1 delimiter, so move it
		// into a preview record now.
		if err := adapter.SavePreview(previewState); err != nil {
			log.Warn().Err(err).Str("delimiter", string(legacy)).Msg("failed to migrate legacy delimiter")
		}
	}

	exp := opts.Exporter
	if exp == nil {
		exp = exporter.NewWithWriters(exporter.SystemClipboard{}, nil)
	}

	return &State{
		Catalog:  store,
		Preview:  preview.New(previewState, adapter),
		Exporter: exp,
		kv:       opts.KV,
	}, nil
}

// Close releases the storage backend
func (s *State) Close() error {
	if s.kv == nil {
		return nil
	}
	return s.kv.Close()
}
