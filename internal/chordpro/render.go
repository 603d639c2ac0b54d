package chordpro

import "strings"

type metadataField struct {
	label string
	value string
}

// Render converts a song into chord sheet markup. Section lines are taken
// as already rendered fragments and copied verbatim.
func (e *Engine) Render(song Song) string {
	var b strings.Builder

	if song.Title != "" || song.Artist != "" {
		e.writeHeader(&b, song)
	}

	b.WriteString(`<div class="chord-sheet-content">`)
	for _, section := range song.Sections {
		e.writeSection(&b, section)
	}
	b.WriteString("</div>")

	return b.String()
}

func (e *Engine) writeHeader(b *strings.Builder, song Song) {
	b.WriteString(`<div class="chord-sheet-header">`)

	if song.Title != "" {
		b.WriteString(`<h1 class="song-title">`)
		b.WriteString(e.escape(song.Title))
		b.WriteString("</h1>")
	}
	if song.Artist != "" {
		b.WriteString(`<div class="song-artist">`)
		b.WriteString(e.escape(song.Artist))
		b.WriteString("</div>")
	}

	var fields []metadataField
	for _, f := range []metadataField{
		{"Key:", song.Key},
		{"Tempo:", song.Tempo},
		{"Capo:", song.Capo},
	} {
		if f.value != "" {
			fields = append(fields, f)
		}
	}

	if len(fields) > 0 {
		b.WriteString(`<div class="song-metadata">`)
		for _, f := range fields {
			b.WriteString(`<span class="metadata-item"><span class="metadata-label">`)
			b.WriteString(f.label)
			b.WriteString("</span> ")
			b.WriteString(e.escape(f.value))
			b.WriteString("</span>")
		}
		b.WriteString("</div>")
	}

	b.WriteString("</div>")
}

func (e *Engine) writeSection(b *strings.Builder, section Section) {
	b.WriteString(`<div class="paragraph `)
	b.WriteString(e.escape(section.Type))
	b.WriteString(`">`)

	if section.Label != "" && section.Type != SectionVerse {
		b.WriteString(`<div class="paragraph-label section-label">`)
		b.WriteString(e.escape(section.Label))
		b.WriteString("</div>")
	}

	for _, line := range section.Lines {
		b.WriteString(line)
	}

	b.WriteString("</div>")
}
