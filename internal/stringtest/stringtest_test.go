package stringtest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sukalov/chordsheet/internal/stringtest"
)

func TestJoinLF(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want  string
		input []string
	}{
		"empty input":   {input: nil, want: ""},
		"single string": {input: []string{"hello"}, want: "hello"},
		"two strings":   {input: []string{"a", "b"}, want: "a\nb"},
		"trailing empty": {input: []string{"a", ""}, want: "a\n"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, stringtest.JoinLF(tc.input...))
		})
	}
}
