package chordpro

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TextOptions controls [RenderText].
type TextOptions struct {
	// ChordStyle decorates each chord symbol after columns are computed,
	// e.g. with terminal colours. Nil leaves chords unchanged.
	ChordStyle func(string) string
	// NoHeader drops the title/artist/metadata lines.
	NoHeader bool
}

// RenderText lays a song out for monospaced display with each chord printed
// above the lyric character it belongs to. It works from Section.Source, so
// sections without source lines render as their label only.
func RenderText(song Song, opts TextOptions) string {
	style := opts.ChordStyle
	if style == nil {
		style = rawText
	}

	var out []string

	if !opts.NoHeader {
		out = append(out, textHeader(song)...)
	}

	for _, section := range song.Sections {
		if len(out) > 0 {
			out = append(out, "")
		}
		if section.Label != "" && section.Type != SectionVerse {
			out = append(out, section.Label+":")
		}
		for _, line := range section.Source {
			out = append(out, textLine(line, style)...)
		}
	}

	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}

func textHeader(song Song) []string {
	var out []string
	if song.Title != "" {
		out = append(out, song.Title)
	}
	if song.Artist != "" {
		out = append(out, song.Artist)
	}

	var meta []string
	for _, f := range []metadataField{
		{"Key:", song.Key},
		{"Tempo:", song.Tempo},
		{"Capo:", song.Capo},
	} {
		if f.value != "" {
			meta = append(meta, f.label+" "+f.value)
		}
	}
	if len(meta) > 0 {
		out = append(out, strings.Join(meta, "  "))
	}
	return out
}

func textLine(line string, style func(string) string) []string {
	if line == "" {
		return []string{""}
	}

	clean, chords := ExtractChords(line)
	switch {
	case len(chords) == 0:
		return []string{clean}

	case strings.TrimSpace(clean) == "":
		styled := make([]string, len(chords))
		for i, c := range chords {
			styled[i] = style(c.Chord)
		}
		return []string{strings.Join(styled, chordOnlySep)}
	}

	return []string{chordRow(clean, chords, style), clean}
}

// chordRow places every chord at the display column of its anchor rune.
// A chord that would touch the previous one is shifted right.
func chordRow(clean string, chords []ChordPosition, style func(string) string) string {
	lyric := []rune(clean)

	var b strings.Builder
	width := 0
	for i, c := range chords {
		pos := min(max(c.CharIndex, 0), len(lyric))
		col := runewidth.StringWidth(string(lyric[:pos]))
		if i > 0 && col <= width {
			col = width + 1
		}
		b.WriteString(strings.Repeat(" ", col-width))
		b.WriteString(style(c.Chord))
		width = col + runewidth.StringWidth(c.Chord)
	}
	return b.String()
}
