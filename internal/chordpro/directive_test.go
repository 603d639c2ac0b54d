package chordpro_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sukalov/chordsheet/internal/chordpro"
)

func TestParseDirective(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		line string
		want chordpro.Directive
		ok   bool
	}{
		"metadata": {
			line: "{title: Amazing Grace}",
			want: chordpro.Directive{Kind: chordpro.DirectiveMetadata, Key: "title", Value: "Amazing Grace"},
			ok:   true,
		},
		"upper case key": {
			line: "{TITLE: X}",
			want: chordpro.Directive{Kind: chordpro.DirectiveMetadata, Key: "title", Value: "X"},
			ok:   true,
		},
		"value keeps later colons": {
			line: "{title: Song: A Subtitle}",
			want: chordpro.Directive{Kind: chordpro.DirectiveMetadata, Key: "title", Value: "Song: A Subtitle"},
			ok:   true,
		},
		"no colon": {
			line: "{start_of_chorus}",
			want: chordpro.Directive{Kind: chordpro.DirectiveSectionStart, Key: "start_of_chorus", Name: "chorus"},
			ok:   true,
		},
		"section start with label": {
			line: "{Start_Of_Bridge: Middle 8}",
			want: chordpro.Directive{
				Kind:  chordpro.DirectiveSectionStart,
				Key:   "start_of_bridge",
				Value: "Middle 8",
				Name:  "bridge",
			},
			ok: true,
		},
		"section end": {
			line: "{end_of_verse}",
			want: chordpro.Directive{Kind: chordpro.DirectiveSectionEnd, Key: "end_of_verse", Name: "verse"},
			ok:   true,
		},
		"unknown key": {
			line: "{comment: play softly}",
			want: chordpro.Directive{Kind: chordpro.DirectiveUnknown, Key: "comment", Value: "play softly"},
			ok:   true,
		},
		"empty braces": {
			line: "{}",
			want: chordpro.Directive{Kind: chordpro.DirectiveUnknown},
			ok:   true,
		},
		"unterminated": {
			line: "{title: Broken",
		},
		"leading space is not a directive": {
			line: " {title: X}",
		},
		"trailing space is not a directive": {
			line: "{title: X} ",
		},
		"lone brace": {
			line: "{",
		},
		"content": {
			line: "[G]Amazing grace",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := chordpro.ParseDirective(tc.line)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"empty":       {input: "", want: ""},
		"lower":       {input: "chorus", want: "Chorus"},
		"rest intact": {input: "pre_chorus", want: "Pre_chorus"},
		"cyrillic":    {input: "припев", want: "Припев"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, chordpro.Capitalize(tc.input))
		})
	}
}

func TestDirectiveKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "metadata", chordpro.DirectiveMetadata.String())
	assert.Equal(t, "section_start", chordpro.DirectiveSectionStart.String())
	assert.Equal(t, "section_end", chordpro.DirectiveSectionEnd.String())
	assert.Equal(t, "unknown", chordpro.DirectiveUnknown.String())
}
