package amdm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sukalov/chordsheet/internal/logger"
)

const blockSelector = `pre[itemprop="chordsBlock"]`

// Parser handles the HTML parsing and ChordPro conversion
type Parser struct {
	client *Client
	config *ProcessingConfig
	now    func() time.Time
}

// NewParser creates a new AmDm parser
func NewParser() *Parser {
	return NewParserWith(NewClient(), DefaultConfig())
}

// NewParserWith creates a parser with a custom client and config.
func NewParserWith(client *Client, config *ProcessingConfig) *Parser {
	if config == nil {
		config = DefaultConfig()
	}
	return &Parser{client: client, config: config, now: time.Now}
}

// ExtractChordPro fetches an AmDm.ru page and converts it to ChordPro
func (p *Parser) ExtractChordPro(ctx context.Context, url string) (*Result, error) {
	logger.Debug("fetching page", "url", url)

	html, err := p.client.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}

	logger.Debug("fetched page", "url", url, "length", len(html))
	return p.ParseHTML(url, html)
}

// ParseHTML converts an already fetched page.
func (p *Parser) ParseHTML(url, html string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(blockSelector).First()
	if selection.Length() == 0 {
		logger.Error("target element not found", "url", url, "selector", blockSelector)
		return nil, ErrBlockNotFound
	}

	originalHTML, err := selection.Html()
	if err != nil {
		return nil, fmt.Errorf("failed to read chords block: %w", err)
	}

	artist, title := splitHeading(doc.Find("h1").First().Text())

	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "{title: %s}\n", title)
	}
	if artist != "" {
		fmt.Fprintf(&b, "{artist: %s}\n", artist)
	}
	b.WriteString(p.processHTMLContent(originalHTML))

	logger.Success("converted chord page", "url", url, "title", title)

	return &Result{
		URL:       url,
		Title:     title,
		Artist:    artist,
		ChordPro:  b.String(),
		FetchedAt: p.now(),
	}, nil
}

// splitHeading reads "Artist - Title аккорды" page headings.
func splitHeading(heading string) (artist, title string) {
	heading = strings.Join(strings.Fields(heading), " ")
	for _, suffix := range []string{" аккорды для гитары", " аккорды", " - аккорды"} {
		heading = strings.TrimSuffix(heading, suffix)
	}

	artist, title, found := strings.Cut(heading, " - ")
	if !found {
		return "", strings.TrimSpace(heading)
	}
	return strings.TrimSpace(artist), strings.TrimSpace(title)
}
