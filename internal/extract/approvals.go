package extract

import (
	"regexp"
	"strings"

	"github.com/TheCodeHarbor/valvoline-pds-api/constants"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/pdstext"
)

const (
	approvalsWindow = 1500
	approvalsPrefix = 3000
)

var (
	approvalTokenRE = regexp.MustCompile(`(?i)\b(` + strings.Join(constants.ApprovalTokens, "|") + `)\b`)

	// Most specific heading first; a bare standards token anywhere in the
	// text is the last-resort anchor.
	approvalAnchors = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Approvals?\s*&?\s*/?\s*Specifications?`),
		regexp.MustCompile(`(?i)Specifications?`),
		regexp.MustCompile(`(?i)Performance(?: levels?)?`),
		regexp.MustCompile(`(?i)Meets (?:or exceeds )?the requirements of`),
		approvalTokenRE,
	}
	approvalStops = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Typical (?:properties|characteristics|values|data)`),
		regexp.MustCompile(`(?i)Health|Safety|Handling`),
		regexp.MustCompile(`(?i)Storage`),
	}

	// An unrecognized all-caps line marks the next section heading. Short
	// uppercase approval entries ("API SN", "JASO MA2") have the same shape,
	// so the header cut is applied per line and skips lines carrying an
	// approval token instead of being a plain stop pattern.
	headerLineRE = regexp.MustCompile(`^[A-Z][A-Z ]{3,}$`)

	itemSplitRE = regexp.MustCompile(`[;\n•-]\s*`)
)

// Approvals extracts the approvals/specifications list. The heading section
// is segmented first; if no anchor matches, a fixed-size prefix of the text
// is scanned instead. Candidate items are split on newline, bullet,
// semicolon and hyphen boundaries and kept only when they contain a known
// standards-body or OEM token. The result is deduplicated under
// case-insensitive comparison, preserving first-seen order, and is empty
// (never nil) when nothing qualifies.
func Approvals(text string) []string {
	blob := text
	if sec, ok := pdstext.Segment(text, approvalAnchors, approvalStops, approvalsWindow); ok {
		blob = sec.Text
	} else if len(blob) > approvalsPrefix {
		blob = blob[:approvalsPrefix]
	}
	blob = cutAtHeader(blob)

	seen := make(map[string]struct{})
	out := []string{}
	for _, part := range itemSplitRE.Split(blob, -1) {
		item := collapse(part)
		if item == "" || !approvalTokenRE.MatchString(item) {
			continue
		}
		key := strings.ToLower(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// cutAtHeader truncates blob at the first all-caps header line that is not
// itself an approval entry.
func cutAtHeader(blob string) string {
	pos := 0
	for pos < len(blob) {
		end := strings.IndexByte(blob[pos:], '\n')
		if end < 0 {
			end = len(blob)
		} else {
			end += pos
		}
		line := blob[pos:end]
		if headerLineRE.MatchString(line) && !approvalTokenRE.MatchString(line) {
			return blob[:pos]
		}
		pos = end + 1
	}
	return blob
}
