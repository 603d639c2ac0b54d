package amdm

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	chordDiagramRegex  = regexp.MustCompile(`(?s)<div[^>]*class="podbor__chord"[^>]*>.*?</div>`)
	authorCommentRegex = regexp.MustCompile(`(?s)<span[^>]*class="podbor__author-comment"[^>]*>.*?</span>`)
	blockCommentRegex  = regexp.MustCompile(`/\*[^*]*\*/`)
	lineCommentRegex   = regexp.MustCompile(`(?m)/\*.*$`)
	breakRegex         = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// processHTMLContent strips page furniture from the chords block and returns
// the ChordPro body.
func (p *Parser) processHTMLContent(originalHTML string) string {
	// Chord diagrams are pictures, not part of the text.
	processed := chordDiagramRegex.ReplaceAllString(originalHTML, "")
	processed = authorCommentRegex.ReplaceAllString(processed, "")
	processed = blockCommentRegex.ReplaceAllString(processed, "")
	processed = lineCommentRegex.ReplaceAllString(processed, "")
	processed = breakRegex.ReplaceAllString(processed, "\n")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<pre>" + processed + "</pre>"))
	if err != nil {
		return ""
	}

	return p.finalCleanup(p.processTextLines(doc.Find("pre").First().Text()))
}
