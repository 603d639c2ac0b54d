package chordpro

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type lineKind int

const (
	lineContent lineKind = iota
	lineBlank
	lineDirective
	// lineMalformed starts with `{` but never closes; it is dropped.
	lineMalformed
)

// classifyLine looks at the raw line boundaries only, no trimming.
func classifyLine(line string) lineKind {
	if strings.TrimSpace(line) == "" {
		return lineBlank
	}
	if !strings.HasPrefix(line, "{") {
		return lineContent
	}
	if len(line) >= 2 && strings.HasSuffix(line, "}") {
		return lineDirective
	}
	return lineMalformed
}

// ParseDirective parses a whole-line `{key: value}` directive. The key is
// lower-cased, key and value are trimmed and the value keeps any further
// colons. It reports false for anything that is not a directive line.
func ParseDirective(line string) (Directive, bool) {
	if classifyLine(line) != lineDirective {
		return Directive{}, false
	}

	inner := line[1 : len(line)-1]
	key, value, _ := strings.Cut(inner, ":")
	key = strings.ToLower(strings.TrimSpace(key))

	d := Directive{
		Key:   key,
		Value: strings.TrimSpace(value),
	}
	d.Kind, d.Name = ClassifyKey(key)
	return d, true
}

// ClassifyKey maps a lower-cased directive key onto its variant. For
// section directives the section name is returned as well.
func ClassifyKey(key string) (DirectiveKind, string) {
	switch {
	case strings.HasPrefix(key, sectionStartPrefix):
		return DirectiveSectionStart, strings.TrimPrefix(key, sectionStartPrefix)
	case strings.HasPrefix(key, sectionEndPrefix):
		return DirectiveSectionEnd, strings.TrimPrefix(key, sectionEndPrefix)
	}

	switch key {
	case KeyTitle, KeyArtist, KeyKey, KeyTempo, KeyCapo:
		return DirectiveMetadata, ""
	}
	return DirectiveUnknown, ""
}

// Capitalize upper-cases the first letter and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
