package extract

import (
	"regexp"
	"strings"
)

// Version patterns, tried in order: a labeled revision marker, then the two
// bare issue-code shapes seen on older sheets.
var versionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Revision|Rev\.?|Version)\s*[: ]\s*([A-Za-z0-9./ -]{2,})`),
	regexp.MustCompile(`\b(\d{3}/\d+[A-Za-z]?)\b`),
	regexp.MustCompile(`\b(\d{2,4}/\d{1,2}[A-Za-z]?)\b`),
}

// Version returns the document revision, or false when no pattern matches.
// The captured token is trimmed and " / " is collapsed to "/".
func Version(text string) (string, bool) {
	for _, p := range versionPatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v := strings.ReplaceAll(strings.TrimSpace(m[1]), " / ", "/")
		return collapse(v), true
	}
	return "", false
}
