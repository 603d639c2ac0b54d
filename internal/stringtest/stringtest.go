// Package stringtest builds multi-line expectations for tests.
package stringtest

import "strings"

// JoinLF joins lines with LF line endings.
//
//	want := stringtest.JoinLF(
//		"G       C",
//		"Amazing grace",
//	) // -> "G       C\nAmazing grace"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}
