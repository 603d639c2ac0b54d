package chordpro

import (
	"html"
	"log/slog"
	"strings"
)

// Engine parses ChordPro text and renders songs to markup.
//
// By default an Engine works in raw mode: lyrics, metadata and chord symbols
// are copied into the markup byte for byte, so callers must not treat the
// output as safe against markup injection. [WithEscaping] opts out.
//
// An Engine holds no per-document state and is safe for concurrent use.
type Engine struct {
	logger *slog.Logger
	escape func(string) string
	raw    bool
}

// Option configures an [Engine].
type Option func(*Engine)

// WithEscaping turns raw mode off and HTML-escapes all interpolated text.
func WithEscaping() Option {
	return func(e *Engine) {
		e.raw = false
		e.escape = html.EscapeString
	}
}

// WithLogger sets the logger used for debug notes about dropped lines.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an [Engine] in raw mode.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger: slog.New(slog.DiscardHandler),
		escape: rawText,
		raw:    true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Raw reports whether the engine interpolates text without escaping.
func (e *Engine) Raw() bool {
	return e.raw
}

// Parse builds a [Song] from ChordPro text. Each call starts from an empty
// metadata store.
func (e *Engine) Parse(text string) Song {
	acc := newAssembly()
	for _, line := range strings.Split(text, "\n") {
		acc.step(e, line)
	}
	return acc.song()
}

// ParseAndRender is Render(Parse(text)).
func (e *Engine) ParseAndRender(text string) string {
	return e.Render(e.Parse(text))
}

var defaultEngine = NewEngine()

// Parse parses text with a raw-mode engine.
func Parse(text string) Song {
	return defaultEngine.Parse(text)
}

// Render renders song with a raw-mode engine.
func Render(song Song) string {
	return defaultEngine.Render(song)
}

// ParseAndRender parses and renders text with a raw-mode engine.
func ParseAndRender(text string) string {
	return defaultEngine.ParseAndRender(text)
}

func rawText(s string) string { return s }
