package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tagduke/tagduke-cli/pkg/models"
	"github.com/tagduke/tagduke-cli/pkg/storage"
)

// fallbackID is used when a name normalizes to nothing
const fallbackID = "category"

var ErrCategoryNotFound = errors.New("category not found")

// ImportMode controls how imported categories combine with existing ones
type ImportMode int

const (
	ImportReplace ImportMode = iota
	ImportAppend
)

// Store owns the ordered category collection. Every mutation persists the
// whole collection.
type Store struct {
	categories      []models.Category
	adapter         *storage.Adapter
	legacyDelimiter models.Delimiter
	seeded          bool
}

// Load restores the collection from the adapter, seeding the built-in
// catalog when nothing usable is stored.
func Load(adapter *storage.Adapter) *Store {
	s := &Store{adapter: adapter}

	cats, legacyDelimiter, ok := adapter.LoadCategories()
	if !ok {
		s.categories = DefaultCategories()
		s.seeded = true
		return s
	}

	s.legacyDelimiter = legacyDelimiter
	s.categories = make([]models.Category, 0, len(cats))
	for _, c := range cats {
		// Repair hand-edited data so ids stay unique
		if c.ID == "" || s.indexOf(c.ID) >= 0 {
			old := c.ID
			c.ID = s.uniqueID(c.Name)
			log.Warn().Str("old_id", old).Str("new_id", c.ID).Msg("re-keyed stored category")
		}
		s.categories = append(s.categories, c)
	}
	return s
}

// Seeded reports whether the collection came from the built-in catalog
// rather than storage
func (s *Store) Seeded() bool {
	return s.seeded
}

// Save writes the collection as it is
func (s *Store) Save() error {
	return s.save()
}

// LegacyDelimiter is the delimiter a v1 categories record carried, if any
func (s *Store) LegacyDelimiter() models.Delimiter {
	return s.legacyDelimiter
}

// List returns a copy of the collection in display order
func (s *Store) List() []models.Category {
	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c.Clone())
	}
	return out
}

// Export returns the collection in display order for serialization
func (s *Store) Export() []models.Category {
	return s.List()
}

// Len returns the number of categories
func (s *Store) Len() int {
	return len(s.categories)
}

// Get returns a copy of the category with id
func (s *Store) Get(id string) (models.Category, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Category{}, false
	}
	return s.categories[i].Clone(), true
}

// Create appends an empty category named name. A blank name means the
// prompt was cancelled and nothing happens.
func (s *Store) Create(name string) (models.Category, bool, error) {
	name = strings.TrimSpace(name)
	if models.NormalizeCategoryID(name) == "" {
		return models.Category{}, false, nil
	}

	cat := models.Category{
		ID:   s.uniqueID(name),
		Name: name,
		Tags: []string{},
	}
	s.categories = append(s.categories, cat)
	return cat.Clone(), true, s.save()
}

// ReplaceTags replaces a category's tags with the non-blank lines of rawText
func (s *Store) ReplaceTags(id, rawText string) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.categories[i].Tags = models.ParseTagLines(rawText)
	return true, s.save()
}

// Delete removes the category with id once the user has confirmed
func (s *Store) Delete(id string, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.categories = append(s.categories[:i:i], s.categories[i+1:]...)
	return true, s.save()
}

// Reset replaces the collection with the built-in catalog
func (s *Store) Reset() error {
	s.categories = DefaultCategories()
	return s.save()
}

// Import merges cats into the collection. In append mode colliding ids are
// disambiguated the same way Create does it.
func (s *Store) Import(cats []models.Category, mode ImportMode) (int, error) {
	if mode == ImportReplace {
		s.categories = []models.Category{}
	}

	for _, c := range cats {
		c = c.Clone()
		if c.ID == "" || s.indexOf(c.ID) >= 0 {
			base := c.ID
			if base == "" {
				base = c.Name
			}
			c.ID = s.uniqueID(base)
		}
		if c.Name == "" {
			c.Name = c.ID
		}
		s.categories = append(s.categories, c)
	}

	if err := s.save(); err != nil {
		return 0, err
	}
	return len(cats), nil
}

func (s *Store) save() error {
	s.seeded = false
	if err := s.adapter.SaveCategories(s.categories); err != nil {
		return fmt.Errorf("failed to persist categories: %w", err)
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	for i, c := range s.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// uniqueID derives an id from name, appending -1, -2, ... until unused
func (s *Store) uniqueID(name string) string {
	base := models.NormalizeCategoryID(name)
	if base == "" {
		base = fallbackID
	}

	id := base
	for n := 1; s.indexOf(id) >= 0; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}
