package chordpro

import (
	"regexp"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

// chordSymbol matches the chord spellings found on chords-over-lyrics pages,
// including the German H and slash bass notes.
var chordSymbol = regexp.MustCompile(`^[A-H](#|b)?(m|M|maj|min|dim|aug|sus|add)?[0-9]*((sus|add|maj|dim|aug)[0-9]*|[+\-#b][0-9]+|\+)*(\([^)]*\))?(/[A-H](#|b)?)?$`)

// IsChordSymbol reports whether s looks like a single chord.
func IsChordSymbol(s string) bool {
	return chordSymbol.MatchString(s)
}

// IsChordLine reports whether every token of line is a chord symbol or a bar
// separator, with at least one chord present.
func IsChordLine(line string) bool {
	found := false
	for _, tok := range strings.Fields(line) {
		if strings.Trim(tok, "|") == "" {
			continue
		}
		if !IsChordSymbol(tok) {
			return false
		}
		found = true
	}
	return found
}

type columnChord struct {
	chord string
	col   int
}

// FromChordsOverLyrics folds a chord row into the lyric row below it and
// returns a ChordPro line with inline `[chord]` tokens. Columns are display
// columns; a lyric shorter than a chord's column is padded with spaces.
func FromChordsOverLyrics(chordLine, lyricLine string) string {
	chords := chordColumns(chordLine)
	if len(chords) == 0 {
		return lyricLine
	}

	lyric := []rune(lyricLine)
	starts := make([]int, 0, len(lyric)+1)
	w := 0
	for _, r := range lyric {
		starts = append(starts, w)
		w += runewidth.RuneWidth(r)
	}

	if last := chords[len(chords)-1].col; last > w {
		lyric = append(lyric, []rune(strings.Repeat(" ", last-w))...)
		for c := w; c < last; c++ {
			starts = append(starts, c)
		}
	}
	starts = append(starts, max(w, chords[len(chords)-1].col))

	var b strings.Builder
	cut := 0
	for _, c := range chords {
		idx, _ := slices.BinarySearch(starts, c.col)
		idx = min(idx, len(lyric))
		if idx > cut {
			b.WriteString(string(lyric[cut:idx]))
			cut = idx
		}
		b.WriteString("[" + c.chord + "]")
	}
	b.WriteString(string(lyric[cut:]))

	return b.String()
}

func chordColumns(line string) []columnChord {
	var out []columnChord
	col := 0
	var tok strings.Builder
	start := 0

	flush := func() {
		if tok.Len() == 0 {
			return
		}
		if s := tok.String(); strings.Trim(s, "|") != "" {
			out = append(out, columnChord{chord: s, col: start})
		}
		tok.Reset()
	}

	for _, r := range line {
		if r == ' ' || r == '\t' {
			flush()
		} else {
			if tok.Len() == 0 {
				start = col
			}
			tok.WriteRune(r)
		}
		col += runewidth.RuneWidth(r)
	}
	flush()

	return out
}
