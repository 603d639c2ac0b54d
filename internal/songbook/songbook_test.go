package songbook_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sukalov/chordsheet/internal/chordpro"
	"github.com/sukalov/chordsheet/internal/db"
	"github.com/sukalov/chordsheet/internal/redis"
	"github.com/sukalov/chordsheet/internal/songbook"
)

type memStore struct {
	mu    sync.Mutex
	items map[string]db.Arrangement
}

func newMemStore(items ...db.Arrangement) *memStore {
	s := &memStore{items: make(map[string]db.Arrangement)}
	for _, a := range items {
		s.items[a.ID] = a
	}
	return s
}

func (s *memStore) FindArrangement(_ context.Context, id string) (db.Arrangement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.items[id]
	if !ok {
		return db.Arrangement{}, fmt.Errorf("%w: %s", db.ErrNotFound, id)
	}
	return a, nil
}

func (s *memStore) SaveArrangement(_ context.Context, a db.Arrangement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[a.ID] = a
	return nil
}

func (s *memStore) IncrementViews(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.items[id]
	a.Views++
	s.items[id] = a
	return nil
}

func (s *memStore) ListArrangements(_ context.Context) ([]db.Arrangement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]db.Arrangement, 0, len(s.items))
	for _, a := range s.items {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b db.Arrangement) int { return strings.Compare(a.Title, b.Title) })
	return out, nil
}

type memCache struct {
	sheets  map[string]redis.CachedSheet
	readErr error
	sets    int
}

func (c *memCache) GetSheet(_ context.Context, key string) (*redis.CachedSheet, bool, error) {
	if c.readErr != nil {
		return nil, false, c.readErr
	}
	sheet, ok := c.sheets[key]
	if !ok {
		return nil, false, nil
	}
	return &sheet, true, nil
}

func (c *memCache) SetSheet(_ context.Context, key string, sheet redis.CachedSheet) error {
	c.sets++
	c.sheets[key] = sheet
	return nil
}

const amazingGrace = "{title: Amazing Grace}\n{artist: John Newton}\n[G]Amazing [C]grace"

func TestSheetRendersAndCaches(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemStore(db.NewArrangement("ag", amazingGrace))
	cache := &memCache{sheets: map[string]redis.CachedSheet{}}
	svc := songbook.NewService(store, cache, nil)

	first, err := svc.Sheet(ctx, "ag")
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, "Amazing Grace", first.Title)
	assert.Equal(t, chordpro.ParseAndRender(amazingGrace), first.HTML)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.Sheet(ctx, "ag")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.HTML, second.HTML)
	assert.Equal(t, "John Newton", second.Artist)
	assert.Equal(t, 1, cache.sets)

	a, err := store.FindArrangement(ctx, "ag")
	require.NoError(t, err)
	assert.Equal(t, 2, a.Views)
}

func TestSheetCacheErrorFallsBack(t *testing.T) {
	t.Parallel()

	store := newMemStore(db.NewArrangement("ag", amazingGrace))
	cache := &memCache{sheets: map[string]redis.CachedSheet{}, readErr: errors.New("connection refused")}
	svc := songbook.NewService(store, cache, chordpro.NewEngine(chordpro.WithEscaping()))

	sheet, err := svc.Sheet(context.Background(), "ag")
	require.NoError(t, err)
	assert.False(t, sheet.Cached)
	assert.Contains(t, sheet.HTML, "chord-anchor")
}

func TestSheetWithoutCache(t *testing.T) {
	t.Parallel()

	svc := songbook.NewService(newMemStore(db.NewArrangement("ag", amazingGrace)), nil, nil)

	sheet, err := svc.Sheet(context.Background(), "ag")
	require.NoError(t, err)
	assert.Contains(t, sheet.HTML, `<h1 class="song-title">Amazing Grace</h1>`)

	_, err = svc.Sheet(context.Background(), "nope")
	require.ErrorIs(t, err, db.ErrNotFound)
}

func TestText(t *testing.T) {
	t.Parallel()

	svc := songbook.NewService(newMemStore(db.NewArrangement("ag", amazingGrace)), nil, nil)

	text, err := svc.Text(context.Background(), "ag", chordpro.TextOptions{NoHeader: true})
	require.NoError(t, err)
	assert.Equal(t, "G       C\nAmazing grace\n", text)
}

func TestSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemStore()
	svc := songbook.NewService(store, nil, nil)

	a, err := svc.Save(ctx, "ag", amazingGrace, "https://amdm.ru/x/")
	require.NoError(t, err)
	assert.Equal(t, "https://amdm.ru/x/", a.SourceURL.String)

	got, err := store.FindArrangement(ctx, "ag")
	require.NoError(t, err)
	assert.Equal(t, "Amazing Grace", got.Title)

	_, err = svc.Save(ctx, "untitled", "[C]la", "")
	require.Error(t, err)
}

func TestFormatSongName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "John Newton - Amazing Grace", songbook.FormatSongName(db.NewArrangement("ag", amazingGrace)))
	assert.Equal(t, "Solo", songbook.FormatSongName(db.Arrangement{
		Title:  "Solo",
		Artist: sql.NullString{},
	}))
}

func TestList(t *testing.T) {
	t.Parallel()

	svc := songbook.NewService(newMemStore(
		db.NewArrangement("b", "{title: Yesterday}"),
		db.NewArrangement("a", amazingGrace),
	), nil, nil)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Amazing Grace", list[0].Title)
	assert.Equal(t, "Yesterday", list[1].Title)
}

func TestNewID(t *testing.T) {
	t.Parallel()

	id := songbook.NewID("Михаил Круг", "Владимирский централ")
	assert.Len(t, id, 8)
	assert.Equal(t, id, songbook.NewID(" михаил круг", "Владимирский Централ "))
	assert.NotEqual(t, id, songbook.NewID("Михаил Круг", "Кольщик"))
}
