package amdm

import "strings"

// finalCleanup collapses runs of blank lines and trims the document.
func (p *Parser) finalCleanup(text string) string {
	limit := max(p.config.MaxBlankLines, 0)

	var out []string
	blanks := 0
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			blanks++
			if blanks > limit {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n")) + "\n"
}
