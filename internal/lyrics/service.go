package lyrics

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sukalov/chordsheet/internal/chordpro"
	"github.com/sukalov/chordsheet/internal/logger"
	"github.com/sukalov/chordsheet/internal/lyrics/parsers/amdm"
)

// ErrUnsupportedSource is returned for URLs no importer understands.
var ErrUnsupportedSource = errors.New("unsupported URL source")

// ImportResult represents a chord page converted to ChordPro
type ImportResult struct {
	URL       string        `json:"url"`
	Source    string        `json:"source"`
	ChordPro  string        `json:"chordpro"`
	Song      chordpro.Song `json:"song"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// Importer converts one site's pages.
type Importer interface {
	ExtractChordPro(ctx context.Context, url string) (*amdm.Result, error)
}

// Service handles imports for different sources
type Service struct {
	amdmParser Importer
}

// NewService creates a new lyrics service
func NewService() *Service {
	return NewServiceWith(amdm.NewParser())
}

// NewServiceWith creates a service around a custom amdm importer.
func NewServiceWith(amdmParser Importer) *Service {
	return &Service{amdmParser: amdmParser}
}

// Import fetches a chord page and converts it based on the source host.
func (s *Service) Import(ctx context.Context, rawURL string) (*ImportResult, error) {
	logger.Debug("import called", "url", rawURL)

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, rawURL)
	}

	host := strings.ToLower(u.Hostname())
	if host == "amdm.ru" || strings.HasSuffix(host, ".amdm.ru") {
		return s.importFromAmdm(ctx, rawURL)
	}

	// Add other parsers here as needed
	logger.Error("unsupported URL source", "url", rawURL)
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, rawURL)
}

func (s *Service) importFromAmdm(ctx context.Context, rawURL string) (*ImportResult, error) {
	result, err := s.amdmParser.ExtractChordPro(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("amdm import failed for %s: %w", rawURL, err)
	}

	song := chordpro.Parse(result.ChordPro)
	logger.Debug("amdm import succeeded", "url", rawURL, "sections", len(song.Sections))

	return &ImportResult{
		URL:       result.URL,
		Source:    "amdm.ru",
		ChordPro:  result.ChordPro,
		Song:      song,
		FetchedAt: result.FetchedAt,
	}, nil
}
