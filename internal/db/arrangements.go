package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sukalov/chordsheet/internal/chordpro"
)

// ErrNotFound is returned when no arrangement has the requested id.
var ErrNotFound = errors.New("arrangement not found")

// Arrangement is a stored ChordPro document.
type Arrangement struct {
	ID        string
	Title     string
	Artist    sql.NullString
	Key       sql.NullString
	SourceURL sql.NullString
	ChordPro  string
	Views     int
	UpdatedAt time.Time
}

// NewArrangement fills title, artist and key from the document's directives.
func NewArrangement(id, text string) Arrangement {
	song := chordpro.Parse(text)
	return Arrangement{
		ID:       id,
		Title:    song.Title,
		Artist:   sql.NullString{String: song.Artist, Valid: song.Artist != ""},
		Key:      sql.NullString{String: song.Key, Valid: song.Key != ""},
		ChordPro: text,
	}
}

// Store persists arrangements in any database/sql backend speaking SQLite.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) *Store {
	return &Store{db: database}
}

const schema = `
CREATE TABLE IF NOT EXISTS arrangements (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	artist     TEXT,
	song_key   TEXT,
	source_url TEXT,
	chordpro   TEXT NOT NULL,
	views      INTEGER NOT NULL DEFAULT 0,
	updated_at TIMESTAMP NOT NULL
)`

func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create arrangements table: %w", err)
	}
	return nil
}

// SaveArrangement inserts a, replacing any stored copy with the same id.
// Views are kept across updates.
func (s *Store) SaveArrangement(ctx context.Context, a Arrangement) error {
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO arrangements (id, title, artist, song_key, source_url, chordpro, views, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			artist = excluded.artist,
			song_key = excluded.song_key,
			source_url = excluded.source_url,
			chordpro = excluded.chordpro,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		a.ID, a.Title, a.Artist, a.Key, a.SourceURL, a.ChordPro, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save arrangement %s: %w", a.ID, err)
	}
	return nil
}

const selectColumns = `SELECT id, title, artist, song_key, source_url, chordpro, views, updated_at FROM arrangements`

func (s *Store) FindArrangement(ctx context.Context, id string) (Arrangement, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)

	a, err := scanArrangement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Arrangement{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Arrangement{}, fmt.Errorf("failed to load arrangement %s: %w", id, err)
	}
	return a, nil
}

// ListArrangements returns all arrangements ordered by title.
func (s *Store) ListArrangements(ctx context.Context) ([]Arrangement, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY title, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var out []Arrangement
	for rows.Next() {
		a, err := scanArrangement(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration: %w", err)
	}
	return out, nil
}

func (s *Store) IncrementViews(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE arrangements SET views = views + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArrangement(row scanner) (Arrangement, error) {
	var a Arrangement
	err := row.Scan(&a.ID, &a.Title, &a.Artist, &a.Key, &a.SourceURL, &a.ChordPro, &a.Views, &a.UpdatedAt)
	return a, err
}
