package chordpro_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sukalov/chordsheet/internal/chordpro"
)

func TestExtractChords(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		line   string
		clean  string
		chords []chordpro.ChordPosition
	}{
		"no chords": {
			line:  "plain lyric",
			clean: "plain lyric",
		},
		"offsets into stripped text": {
			line:  "[G]Amazing [C]grace",
			clean: "Amazing grace",
			chords: []chordpro.ChordPosition{
				{Chord: "G", CharIndex: 0},
				{Chord: "C", CharIndex: 8},
			},
		},
		"chord at end": {
			line:   "Hello [G]",
			clean:  "Hello ",
			chords: []chordpro.ChordPosition{{Chord: "G", CharIndex: 6}},
		},
		"unmatched bracket is literal": {
			line:   "[C]up [down",
			clean:  "up [down",
			chords: []chordpro.ChordPosition{{Chord: "C", CharIndex: 0}},
		},
		"bracket runs to the next closing bracket": {
			line:   "a [b [C]c",
			clean:  "a c",
			chords: []chordpro.ChordPosition{{Chord: "b [C", CharIndex: 2}},
		},
		"trailing unmatched bracket": {
			line:  "oops [G",
			clean: "oops [G",
		},
		"stacked chords share an index": {
			line:  "[G][D]word",
			clean: "word",
			chords: []chordpro.ChordPosition{
				{Chord: "G", CharIndex: 0},
				{Chord: "D", CharIndex: 0},
			},
		},
		"empty chord": {
			line:   "a[]b",
			clean:  "ab",
			chords: []chordpro.ChordPosition{{Chord: "", CharIndex: 1}},
		},
		"offsets count runes": {
			line:   "Вла[Am]димир",
			clean:  "Владимир",
			chords: []chordpro.ChordPosition{{Chord: "Am", CharIndex: 3}},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			clean, chords := chordpro.ExtractChords(tc.line)
			assert.Equal(t, tc.clean, clean)
			assert.Equal(t, tc.chords, chords)

			for _, c := range chords {
				assert.GreaterOrEqual(t, c.CharIndex, 0)
				assert.LessOrEqual(t, c.CharIndex, len([]rune(clean)))
			}
		})
	}
}

func TestRenderLine(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		line string
		want string
	}{
		"plain line": {
			line: "no chords here",
			want: `<div class="chord-line-container">no chords here</div>`,
		},
		"anchor wraps one character": {
			line: "encyclo[D]pedia line",
			want: `<div class="chord-line-container"><span class="lyric-with-chords">encyclo` +
				`<span class="chord-anchor" data-chord="D">p</span>edia line</span></div>`,
		},
		"chord at end has empty anchor": {
			line: "Hello [G]",
			want: `<div class="chord-line-container"><span class="lyric-with-chords">Hello ` +
				`<span class="chord-anchor" data-chord="G"></span></span></div>`,
		},
		"stacked chords do not repeat the character": {
			line: "[G][D]word",
			want: `<div class="chord-line-container"><span class="lyric-with-chords">` +
				`<span class="chord-anchor" data-chord="G">w</span>` +
				`<span class="chord-anchor" data-chord="D"></span>ord</span></div>`,
		},
		"chord only line": {
			line: "[G][D/G][G][D/G]",
			want: `<div class="chord-line-container chord-only-line">` +
				`<span class="inline-chord">G</span>  <span class="inline-chord">D/G</span>  ` +
				`<span class="inline-chord">G</span>  <span class="inline-chord">D/G</span></div>`,
		},
		"chords with whitespace only": {
			line: "  [Am]   [E]  ",
			want: `<div class="chord-line-container chord-only-line">` +
				`<span class="inline-chord">Am</span>  <span class="inline-chord">E</span></div>`,
		},
		"no escaping in raw mode": {
			line: "<b>[G]x</b>",
			want: `<div class="chord-line-container"><span class="lyric-with-chords"><b>` +
				`<span class="chord-anchor" data-chord="G">x</span></b></span></div>`,
		},
		"multibyte anchor": {
			line: "Вла[Am]димир",
			want: `<div class="chord-line-container"><span class="lyric-with-chords">Вла` +
				`<span class="chord-anchor" data-chord="Am">д</span>имир</span></div>`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, chordpro.RenderLine(tc.line))
		})
	}
}

func TestRenderLineChordOnlyStructure(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(chordpro.RenderLine("[G][D/G][G][D/G]")))
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Find(".chord-line-container").Length())
	assert.Equal(t, 1, doc.Find(".chord-only-line").Length())

	var chords []string
	doc.Find(".chord-only-line .inline-chord").Each(func(_ int, s *goquery.Selection) {
		chords = append(chords, s.Text())
	})
	assert.Equal(t, []string{"G", "D/G", "G", "D/G"}, chords)
}
