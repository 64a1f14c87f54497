package app

import (
	"errors"
	"fmt"

	"github.com/tagduke/tagduke-cli/pkg/exporter"
	"github.com/tagduke/tagduke-cli/pkg/models"
)

// ActionKind enumerates every user intent the state understands
type ActionKind int

const (
	ActionAddTag ActionKind = iota + 1
	ActionAddAll
	ActionRemoveTag
	ActionToggleTag
	ActionClearPreview
	ActionSetDelimiter
	ActionEditPreview
	ActionCreateCategory
	ActionReplaceTags
	ActionDeleteCategory
	ActionCopyPreview
)

var actionNames = map[ActionKind]string{
	ActionAddTag:         "add-tag",
	ActionAddAll:         "add-all",
	ActionRemoveTag:      "remove-tag",
	ActionToggleTag:      "toggle-tag",
	ActionClearPreview:   "clear-preview",
	ActionSetDelimiter:   "set-delimiter",
	ActionEditPreview:    "edit-preview",
	ActionCreateCategory: "create-category",
	ActionReplaceTags:    "replace-tags",
	ActionDeleteCategory: "delete-category",
	ActionCopyPreview:    "copy-preview",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(k))
}

var ErrUnknownAction = errors.New("unknown action")

// Action is one user intent. Only the fields relevant to Kind are read.
type Action struct {
	Kind       ActionKind
	CategoryID string
	Tag        string
	// Text is the edited tag list for ReplaceTags or the new preview text
	// for EditPreview
	Text      string
	Name      string // empty when the name prompt was cancelled
	Delimiter models.Delimiter
	Confirmed bool
}

// Result describes what a dispatched action did
type Result struct {
	Changed bool
	Notice  exporter.Notice
	// Category is set by CreateCategory
	Category *models.Category
	// Selected is set by ToggleTag to the tag's new selection state
	Selected bool
}

// Dispatch routes an action to its handler. Actions aimed at a missing
// category are no-ops, not errors.
func (s *State) Dispatch(a Action) (Result, error) {
	switch a.Kind {
	case ActionAddTag:
		changed, err := s.Preview.AddOne(a.Tag)
		return Result{Changed: changed}, err

	case ActionAddAll:
		cat, ok := s.Catalog.Get(a.CategoryID)
		if !ok {
			return Result{}, nil
		}
		n, err := s.Preview.AddMany(cat.Tags)
		return Result{Changed: n > 0}, err

	case ActionRemoveTag:
		changed, err := s.Preview.RemoveOne(a.Tag)
		return Result{Changed: changed}, err

	case ActionToggleTag:
		if a.Tag == "" {
			return Result{}, nil
		}
		selected, err := s.Preview.Toggle(a.Tag)
		return Result{Changed: true, Selected: selected}, err

	case ActionClearPreview:
		return Result{Changed: true}, s.Preview.Clear()

	case ActionSetDelimiter:
		if a.Delimiter == s.Preview.Delimiter() {
			return Result{}, nil
		}
		return Result{Changed: true}, s.Preview.ChangeDelimiter(a.Delimiter)

	case ActionEditPreview:
		return Result{Changed: true}, s.Preview.SetText(a.Text)

	case ActionCreateCategory:
		cat, created, err := s.Catalog.Create(a.Name)
		if !created {
			return Result{}, err
		}
		return Result{Changed: true, Category: &cat}, err

	case ActionReplaceTags:
		changed, err := s.Catalog.ReplaceTags(a.CategoryID, a.Text)
		return Result{Changed: changed}, err

	case ActionDeleteCategory:
		changed, err := s.Catalog.Delete(a.CategoryID, a.Confirmed)
		return Result{Changed: changed}, err

	case ActionCopyPreview:
		return Result{Notice: s.Exporter.Copy(s.Preview.Text())}, nil

	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownAction, a.Kind)
	}
}
