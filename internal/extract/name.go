package extract

import (
	"regexp"
	"strings"

	"github.com/TheCodeHarbor/valvoline-pds-api/constants"
)

// headWindow bounds the heading scan to the top of the document.
const headWindow = 2000

var brandLineRE = regexp.MustCompile(`(?i)^(?:` + strings.Join(constants.BrandPrefixes, "|") + `)\b`)

// ProductName resolves the product name with an ordered fallback chain:
// a brand-prefixed heading line near the top of the text, then the document
// metadata title, then the filename stem of the document identifier. The
// stem fallback is universal, so the result is never empty for a non-empty
// identifier.
func ProductName(text, metaTitle, documentID string) string {
	head := text
	if len(head) > headWindow {
		head = head[:headWindow]
	}
	for _, ln := range strings.Split(head, "\n") {
		s := strings.TrimSpace(ln)
		if s == "" {
			continue
		}
		if brandLineRE.MatchString(s) {
			return collapse(s)
		}
	}

	if t := collapse(metaTitle); t != "" {
		return t
	}

	return collapse(constants.FileStem(documentID))
}
