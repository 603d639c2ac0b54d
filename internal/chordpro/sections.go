package chordpro

// assembly is the accumulator folded over the lines of one document.
// current is nil while no explicit section is open.
type assembly struct {
	sections []Section
	current  *Section
	meta     map[string]string
}

func newAssembly() *assembly {
	return &assembly{meta: make(map[string]string)}
}

// step consumes one source line.
func (a *assembly) step(e *Engine, line string) {
	switch classifyLine(line) {
	case lineDirective:
		d, _ := ParseDirective(line)
		a.directive(d)

	case lineMalformed:
		e.logger.Debug("dropping unterminated directive", "line", line)

	case lineBlank:
		if a.current != nil {
			a.current.Lines = append(a.current.Lines, emptyLineFragment)
			a.current.Source = append(a.current.Source, "")
		}

	case lineContent:
		a.content(line, renderLine(line, e.escape))
	}
}

func (a *assembly) directive(d Directive) {
	a.meta[d.Key] = d.Value

	switch d.Kind {
	case DirectiveSectionStart:
		// Sections do not nest; an open one is closed first so its lines survive.
		a.flush()
		label := d.Value
		if label == "" {
			label = Capitalize(d.Name)
		}
		a.current = &Section{
			Type:  d.Name,
			Label: label,
			Lines: []string{},
		}

	case DirectiveSectionEnd:
		a.flush()

	case DirectiveMetadata, DirectiveUnknown:
	}
}

func (a *assembly) content(line, fragment string) {
	if a.current != nil {
		a.current.Lines = append(a.current.Lines, fragment)
		a.current.Source = append(a.current.Source, line)
		return
	}

	if n := len(a.sections); n == 0 || a.sections[n-1].Type != SectionVerse {
		a.sections = append(a.sections, Section{Type: SectionVerse, Lines: []string{}})
	}
	last := &a.sections[len(a.sections)-1]
	last.Lines = append(last.Lines, fragment)
	last.Source = append(last.Source, line)
}

// flush appends the open section, if any, to the result.
func (a *assembly) flush() {
	if a.current == nil {
		return
	}
	a.sections = append(a.sections, *a.current)
	a.current = nil
}

// song finishes the fold: an unterminated section is still emitted.
func (a *assembly) song() Song {
	a.flush()

	song := Song{
		Title:      a.meta[KeyTitle],
		Artist:     a.meta[KeyArtist],
		Key:        a.meta[KeyKey],
		Tempo:      a.meta[KeyTempo],
		Capo:       a.meta[KeyCapo],
		Sections:   a.sections,
		Directives: a.meta,
	}
	if song.Sections == nil {
		song.Sections = []Section{}
	}
	if len(song.Directives) == 0 {
		song.Directives = nil
	}
	return song
}
