package songbook

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/sukalov/chordsheet/internal/chordpro"
	"github.com/sukalov/chordsheet/internal/db"
	"github.com/sukalov/chordsheet/internal/logger"
	"github.com/sukalov/chordsheet/internal/redis"
	"github.com/zeebo/blake3"
)

// ArrangementStore loads and saves arrangements.
type ArrangementStore interface {
	FindArrangement(ctx context.Context, id string) (db.Arrangement, error)
	SaveArrangement(ctx context.Context, a db.Arrangement) error
	IncrementViews(ctx context.Context, id string) error
	ListArrangements(ctx context.Context) ([]db.Arrangement, error)
}

// SheetCache stores rendered sheets by content key.
type SheetCache interface {
	GetSheet(ctx context.Context, key string) (*redis.CachedSheet, bool, error)
	SetSheet(ctx context.Context, key string, sheet redis.CachedSheet) error
}

// Sheet is a rendered arrangement.
type Sheet struct {
	ID     string
	Title  string
	Artist string
	HTML   string
	Cached bool
}

type Service struct {
	store  ArrangementStore
	cache  SheetCache
	engine *chordpro.Engine
	now    func() time.Time
}

// NewService creates a sheet service. cache may be nil.
func NewService(store ArrangementStore, cache SheetCache, engine *chordpro.Engine) *Service {
	if engine == nil {
		engine = chordpro.NewEngine()
	}
	return &Service{
		store:  store,
		cache:  cache,
		engine: engine,
		now:    time.Now,
	}
}

// Sheet renders the arrangement with the given id, serving from the cache
// when the same source was rendered before. Cache errors are logged only.
func (s *Service) Sheet(ctx context.Context, id string) (Sheet, error) {
	a, err := s.store.FindArrangement(ctx, id)
	if err != nil {
		return Sheet{}, err
	}
	s.countView(ctx, id)

	key := redis.SheetKey(a.ChordPro, s.engine.Raw())
	if s.cache != nil {
		cached, ok, err := s.cache.GetSheet(ctx, key)
		if err != nil {
			logger.Error("sheet cache read failed", "id", id, "error", err)
		}
		if ok {
			logger.Debug("sheet cache hit", "id", id)
			return Sheet{ID: id, Title: cached.Title, Artist: cached.Artist, HTML: cached.HTML, Cached: true}, nil
		}
	}

	song := s.engine.Parse(a.ChordPro)
	sheet := Sheet{
		ID:     id,
		Title:  song.Title,
		Artist: song.Artist,
		HTML:   s.engine.Render(song),
	}

	if s.cache != nil {
		err := s.cache.SetSheet(ctx, key, redis.CachedSheet{
			HTML:       sheet.HTML,
			Title:      sheet.Title,
			Artist:     sheet.Artist,
			RenderedAt: s.now(),
		})
		if err != nil {
			logger.Error("sheet cache write failed", "id", id, "error", err)
		}
	}

	return sheet, nil
}

// Text renders the arrangement with the given id as chords over lyrics.
func (s *Service) Text(ctx context.Context, id string, opts chordpro.TextOptions) (string, error) {
	a, err := s.store.FindArrangement(ctx, id)
	if err != nil {
		return "", err
	}
	s.countView(ctx, id)

	return chordpro.RenderText(s.engine.Parse(a.ChordPro), opts), nil
}

// Save stores a ChordPro document under id.
func (s *Service) Save(ctx context.Context, id, text, sourceURL string) (db.Arrangement, error) {
	a := db.NewArrangement(id, text)
	a.SourceURL.String, a.SourceURL.Valid = sourceURL, sourceURL != ""
	if a.Title == "" {
		return db.Arrangement{}, fmt.Errorf("arrangement %s has no title directive", id)
	}

	if err := s.store.SaveArrangement(ctx, a); err != nil {
		return db.Arrangement{}, err
	}
	return a, nil
}

// List returns every stored arrangement ordered by title.
func (s *Service) List(ctx context.Context) ([]db.Arrangement, error) {
	return s.store.ListArrangements(ctx)
}

func (s *Service) countView(ctx context.Context, id string) {
	if err := s.store.IncrementViews(ctx, id); err != nil {
		logger.Error("failed to count view", "id", id, "error", err)
	}
}

// FormatSongName renders "Artist - Title" for listings.
func FormatSongName(a db.Arrangement) string {
	var parts []string
	if a.Artist.Valid && a.Artist.String != "" {
		parts = append(parts, a.Artist.String+" - ")
	}
	parts = append(parts, a.Title)

	return strings.TrimSpace(strings.Join(parts, ""))
}

// NewID derives a short stable id from artist and title, so importing the
// same song twice updates one arrangement.
func NewID(artist, title string) string {
	key := strings.ToLower(strings.TrimSpace(artist) + "\x00" + strings.TrimSpace(title))
	sum := blake3.Sum256([]byte(key))
	return hex.EncodeToString(sum[:4])
}
