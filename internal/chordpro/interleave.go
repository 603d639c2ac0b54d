package chordpro

import (
	"slices"
	"strings"
)

// Markup emitted for lines. Class names are consumed by external stylesheets.
const (
	emptyLineFragment = `<div class="chord-line-container empty-line">&nbsp;</div>`

	lineOpen          = `<div class="chord-line-container">`
	chordOnlyLineOpen = `<div class="chord-line-container chord-only-line">`
	lyricOpen         = `<span class="lyric-with-chords">`
	chordOnlySep      = "  "
)

// ExtractChords removes `[chord]` tokens from line and returns the remaining
// lyric together with each chord's rune offset into it. A `[` without a
// later `]` stays in the lyric as a literal character.
func ExtractChords(line string) (string, []ChordPosition) {
	src := []rune(line)
	clean := make([]rune, 0, len(src))
	var chords []ChordPosition

	for i := 0; i < len(src); {
		if src[i] == '[' {
			if end := slices.Index(src[i+1:], ']'); end >= 0 {
				chords = append(chords, ChordPosition{
					Chord:     string(src[i+1 : i+1+end]),
					CharIndex: len(clean),
				})
				i += end + 2
				continue
			}
		}
		clean = append(clean, src[i])
		i++
	}

	return string(clean), chords
}

// RenderLine renders one content line in raw mode.
func RenderLine(line string) string {
	return renderLine(line, rawText)
}

func renderLine(line string, esc func(string) string) string {
	clean, chords := ExtractChords(line)

	var b strings.Builder
	switch {
	case len(chords) == 0:
		b.WriteString(lineOpen)
		b.WriteString(esc(clean))
		b.WriteString("</div>")

	case strings.TrimSpace(clean) == "":
		b.WriteString(chordOnlyLineOpen)
		for i, c := range chords {
			b.WriteString(`<span class="inline-chord">`)
			b.WriteString(esc(c.Chord))
			b.WriteString("</span>")
			if i < len(chords)-1 {
				b.WriteString(chordOnlySep)
			}
		}
		b.WriteString("</div>")

	default:
		b.WriteString(lineOpen)
		b.WriteString(lyricOpen)
		writeAnchored(&b, []rune(clean), chords, esc)
		b.WriteString("</span></div>")
	}

	return b.String()
}

// writeAnchored wraps the single rune following each chord. Chords stacked on
// an already wrapped rune, or sitting at the end of the line, get an empty anchor.
// This differs from wrapping the rune at CharIndex once per chord, which
// would print a stacked lyric character twice.
func writeAnchored(b *strings.Builder, clean []rune, chords []ChordPosition, esc func(string) string) {
	sorted := slices.Clone(chords)
	slices.SortStableFunc(sorted, func(a, c ChordPosition) int { return a.CharIndex - c.CharIndex })

	cut := 0
	for _, c := range sorted {
		pos := min(max(c.CharIndex, 0), len(clean))
		if pos > cut {
			b.WriteString(esc(string(clean[cut:pos])))
			cut = pos
		}

		anchor := ""
		if pos == cut && pos < len(clean) {
			anchor = string(clean[pos])
			cut = pos + 1
		}

		b.WriteString(`<span class="chord-anchor" data-chord="`)
		b.WriteString(esc(c.Chord))
		b.WriteString(`">`)
		b.WriteString(esc(anchor))
		b.WriteString("</span>")
	}

	if cut < len(clean) {
		b.WriteString(esc(string(clean[cut:])))
	}
}
