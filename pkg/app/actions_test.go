package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagduke/tagduke-cli/pkg/exporter"
	"github.com/tagduke/tagduke-cli/pkg/models"
	"github.com/tagduke/tagduke-cli/pkg/storage"
)

type fakeClipboard struct {
	writes []string
	err    error
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.writes = append(f.writes, text)
	return f.err
}

func newTestState(t *testing.T) (*State, *fakeClipboard, storage.KV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	clip := &fakeClipboard{}
	s, err := Open(Options{
		KV:       kv,
		Exporter: exporter.NewWithWriters(clip, nil),
	})
	require.NoError(t, err)
	return s, clip, kv
}

func dispatch(t *testing.T, s *State, a Action) Result {
	t.Helper()
	res, err := s.Dispatch(a)
	require.NoError(t, err)
	return res
}

func TestAddAllThenRemoveOne(t *testing.T) {
	s, _, _ := newTestState(t)

	photo, ok := s.Catalog.Get("photo")
	require.True(t, ok)
	require.Len(t, photo.Tags, 4)

	dispatch(t, s, Action{Kind: ActionAddAll, CategoryID: "photo"})
	dispatch(t, s, Action{Kind: ActionRemoveTag, Tag: photo.Tags[1]})

	got := s.Preview.CurrentTags()
	assert.Equal(t, []string{photo.Tags[0], photo.Tags[2], photo.Tags[3]}, got)
}

func TestManualEditDedupesOnParse(t *testing.T) {
	s, _, _ := newTestState(t)

	dispatch(t, s, Action{Kind: ActionSetDelimiter, Delimiter: models.DelimiterSpace})
	dispatch(t, s, Action{Kind: ActionEditPreview, Text: "#a #a #b"})

	assert.Equal(t, []string{"#a", "#b"}, s.Preview.CurrentTags())
}

func TestCopyEmptyPreview(t *testing.T) {
	s, clip, _ := newTestState(t)

	res := dispatch(t, s, Action{Kind: ActionCopyPreview})
	assert.Equal(t, exporter.NoticeEmpty, res.Notice)
	assert.Empty(t, clip.writes, "no clipboard write for an empty preview")
}

func TestCopyPreview(t *testing.T) {
	s, clip, _ := newTestState(t)
	dispatch(t, s, Action{Kind: ActionAddTag, Tag: "#a"})
	dispatch(t, s, Action{Kind: ActionAddTag, Tag: "#b"})

	res := dispatch(t, s, Action{Kind: ActionCopyPreview})
	assert.Equal(t, exporter.NoticeCopied, res.Notice)
	assert.Equal(t, []string{"#a #b"}, clip.writes)

	clip.err = errors.New("no clipboard")
	res = dispatch(t, s, Action{Kind: ActionCopyPreview})
	assert.Equal(t, exporter.NoticeManualCopy, res.Notice)
}

func TestCategoryLifecycle(t *testing.T) {
	s, _, kv := newTestState(t)

	res := dispatch(t, s, Action{Kind: ActionCreateCategory, Name: "Events"})
	require.True(t, res.Changed)
	require.NotNil(t, res.Category)
	assert.Equal(t, "events", res.Category.ID)

	res = dispatch(t, s, Action{Kind: ActionCreateCategory, Name: ""})
	assert.False(t, res.Changed, "cancelled prompt")

	dispatch(t, s, Action{Kind: ActionReplaceTags, CategoryID: "events", Text: "#fair\n#market\n"})
	events, _ := s.Catalog.Get("events")
	assert.Equal(t, []string{"#fair", "#market"}, events.Tags)

	res = dispatch(t, s, Action{Kind: ActionDeleteCategory, CategoryID: "events"})
	assert.False(t, res.Changed, "delete without confirmation")

	res = dispatch(t, s, Action{Kind: ActionDeleteCategory, CategoryID: "events", Confirmed: true})
	assert.True(t, res.Changed)
	_, ok := s.Catalog.Get("events")
	assert.False(t, ok)

	// A fresh session sees the persisted state
	reopened, err := Open(Options{KV: kv})
	require.NoError(t, err)
	_, ok = reopened.Catalog.Get("events")
	assert.False(t, ok)
	assert.Equal(t, s.Catalog.List(), reopened.Catalog.List())
}

func TestMissingCategoryIsNoop(t *testing.T) {
	s, _, _ := newTestState(t)

	for _, a := range []Action{
		{Kind: ActionAddAll, CategoryID: "ghost"},
		{Kind: ActionReplaceTags, CategoryID: "ghost", Text: "#x"},
		{Kind: ActionDeleteCategory, CategoryID: "ghost", Confirmed: true},
	} {
		res := dispatch(t, s, a)
		assert.False(t, res.Changed, a.Kind.String())
	}
	assert.Empty(t, s.Preview.CurrentTags())
}

func TestToggleAndClear(t *testing.T) {
	s, _, _ := newTestState(t)

	res := dispatch(t, s, Action{Kind: ActionToggleTag, Tag: "#a"})
	assert.True(t, res.Selected)
	assert.True(t, s.Preview.Marked("#a"))
	assert.Equal(t, []string{"#a"}, s.Preview.CurrentTags())

	res = dispatch(t, s, Action{Kind: ActionToggleTag, Tag: "#a"})
	assert.False(t, res.Selected)
	assert.Empty(t, s.Preview.CurrentTags())

	dispatch(t, s, Action{Kind: ActionToggleTag, Tag: "#b"})
	dispatch(t, s, Action{Kind: ActionClearPreview})
	assert.False(t, s.Preview.Marked("#b"))
	assert.Empty(t, s.Preview.Text())
}

func TestSetDelimiter(t *testing.T) {
	s, _, _ := newTestState(t)
	dispatch(t, s, Action{Kind: ActionAddAll, CategoryID: "web"})

	res := dispatch(t, s, Action{Kind: ActionSetDelimiter, Delimiter: models.DelimiterSpace})
	assert.False(t, res.Changed, "already space")

	res = dispatch(t, s, Action{Kind: ActionSetDelimiter, Delimiter: models.DelimiterNewline})
	assert.True(t, res.Changed)
	assert.Contains(t, s.Preview.Text(), "\n")

	_, err := s.Dispatch(Action{Kind: ActionSetDelimiter, Delimiter: "tab"})
	assert.ErrorIs(t, err, models.ErrInvalidDelimiter)
}

func TestUnknownAction(t *testing.T) {
	s, _, _ := newTestState(t)
	_, err := s.Dispatch(Action{Kind: ActionKind(99)})
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Equal(t, "action(99)", ActionKind(99).String())
}

func TestOpenUsesLegacyDelimiter(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(storage.CategoriesKey, []byte(`{"categories":[],"delimiter":"newline"}`)))

	s, err := Open(Options{KV: kv, DefaultDelimiter: models.DelimiterSpace})
	require.NoError(t, err)
	assert.Equal(t, models.DelimiterNewline, s.Preview.Delimiter())
}

func TestLegacyDelimiterSurvivesRestart(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(storage.CategoriesKey, []byte(`{"categories":[{"id":"a","name":"A","tags":["#a"]}],"delimiter":"newline"}`)))

	s, err := Open(Options{KV: kv, DefaultDelimiter: models.DelimiterSpace})
	require.NoError(t, err)
	require.Equal(t, models.DelimiterNewline, s.Preview.Delimiter())

	// Rewrites the categories record without the v1 delimiter field
	dispatch(t, s, Action{Kind: ActionCreateCategory, Name: "B"})

	reopened, err := Open(Options{KV: kv, DefaultDelimiter: models.DelimiterSpace})
	require.NoError(t, err)
	assert.Equal(t, models.DelimiterNewline, reopened.Preview.Delimiter())
	assert.Equal(t, 2, reopened.Catalog.Len())
}

func TestOpenRestoresPreview(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(storage.PreviewKey, []byte(`{"text":"#x\n#y","delimiter":"newline"}`)))

	s, err := Open(Options{KV: kv})
	require.NoError(t, err)
	assert.Equal(t, []string{"#x", "#y"}, s.Preview.CurrentTags())
	assert.Equal(t, models.DelimiterNewline, s.Preview.Delimiter())

	// Defaults are seeded independently of the preview record
	assert.Equal(t, 6, s.Catalog.Len())
}

func TestOpenRequiresKV(t *testing.T) {
	_, err := Open(Options{})
	assert.Error(t, err)
}
