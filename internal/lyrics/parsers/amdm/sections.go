package amdm

import (
	"regexp"
	"slices"
	"strings"

	"github.com/sukalov/chordsheet/internal/chordpro"
)

var (
	sectionMarkerRegex  = regexp.MustCompile(`^\[([^\]:]+):?\]:?\s*(.*)$`)
	chordSeparatorRegex = regexp.MustCompile(`^[\s|]*$`)
)

// converter turns chords-over-lyrics text into ChordPro lines.
type converter struct {
	config  *ProcessingConfig
	out     []string
	open    string
	skip    bool
	pending string
}

// processTextLines walks the block text line by line. Chord rows are held
// back and merged into the lyric row that follows them.
func (p *Parser) processTextLines(cleanText string) string {
	c := &converter{config: p.config}

	for _, line := range strings.Split(cleanText, "\n") {
		c.line(strings.TrimRight(line, " \t\r"))
	}
	c.closeSection()

	return strings.Join(c.out, "\n")
}

func (c *converter) line(line string) {
	trimmed := strings.TrimSpace(line)

	if trimmed == "" {
		c.flushChords()
		if n := len(c.out); n > 0 && !strings.HasPrefix(c.out[n-1], "{start_of_") {
			c.emit("")
		}
		return
	}

	if strings.HasPrefix(trimmed, "[") {
		if c.handleSectionMarker(trimmed) {
			return
		}
	}

	if chordpro.IsChordLine(line) {
		c.flushChords()
		c.pending = line
		return
	}

	if chordSeparatorRegex.MatchString(trimmed) {
		return
	}

	lyric := strings.ReplaceAll(line, "*", "")
	if c.pending != "" {
		c.emit(strings.TrimSpace(chordpro.FromChordsOverLyrics(c.pending, lyric)))
		c.pending = ""
		return
	}
	c.emit(strings.TrimSpace(lyric))
}

// handleSectionMarker opens a ChordPro section for a known keyword. Chords
// written on the marker line, as intros usually are, become the first line.
func (c *converter) handleSectionMarker(trimmed string) bool {
	match := sectionMarkerRegex.FindStringSubmatch(trimmed)
	if match == nil {
		return false
	}

	label := strings.TrimSpace(match[1])
	fields := strings.Fields(label)
	var keyword SectionType
	if len(fields) > 0 {
		keyword = SectionType(fields[0])
	}
	name, known := sectionNames[keyword]
	if !known {
		// Unknown bracketed notes are performance comments.
		c.flushChords()
		return true
	}

	c.closeSection()
	c.skip = slices.Contains(c.config.SkipSections, keyword)
	c.open = name
	if !c.skip {
		c.out = append(c.out, "{start_of_"+name+": "+label+"}")
	}

	if rest := strings.TrimSpace(match[2]); rest != "" && chordpro.IsChordLine(rest) {
		c.pending = rest
	}
	return true
}

func (c *converter) flushChords() {
	if c.pending == "" {
		return
	}
	c.emit(strings.TrimSpace(chordpro.FromChordsOverLyrics(c.pending, "")))
	c.pending = ""
}

func (c *converter) closeSection() {
	c.flushChords()
	if c.open == "" {
		return
	}
	if !c.skip {
		c.trimTrailingBlanks()
		c.out = append(c.out, "{end_of_"+c.open+"}", "")
	}
	c.open = ""
	c.skip = false
}

func (c *converter) emit(line string) {
	if c.skip {
		return
	}
	c.out = append(c.out, line)
}

func (c *converter) trimTrailingBlanks() {
	for len(c.out) > 0 && c.out[len(c.out)-1] == "" {
		c.out = c.out[:len(c.out)-1]
	}
}
