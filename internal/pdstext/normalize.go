// Package pdstext turns raw per-page PDF text into a normalized blob and
// slices named sections out of it.
package pdstext

import (
	"regexp"
	"strings"
)

var (
	hspaceRE = regexp.MustCompile(`[ \t]+`)
	blankRE  = regexp.MustCompile(`\n{3,}`)

	// OCR and typography artifacts unified before whitespace collapsing.
	// The non-breaking space must be folded into a regular space here or
	// the horizontal-whitespace pass would miss it.
	glyphs = strings.NewReplacer(
		"\r\n", "\n",
		"\r", "\n",
		"\u00a0", " ",
		"º", "°",
		"–", "-",
		"—", "-",
		"²", "2",
	)
)

// Normalize joins page texts with a single newline, preserving page order,
// then collapses runs of spaces/tabs to one space, runs of 3+ newlines to a
// single blank line, and unifies OCR glyph variants. Unreadable pages are
// expected to arrive as empty strings; Normalize itself never fails.
func Normalize(pages []string) string {
	raw := strings.Join(pages, "\n")
	raw = glyphs.Replace(raw)
	raw = hspaceRE.ReplaceAllString(raw, " ")
	raw = blankRE.ReplaceAllString(raw, "\n\n")
	return raw
}
