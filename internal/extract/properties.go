package extract

import (
	"regexp"
	"strings"

	"github.com/TheCodeHarbor/valvoline-pds-api/constants"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/pdstext"
)

const propertiesWindow = 3000

var (
	propertyAnchors = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Typical (?:properties|characteristics|values|data)`),
	}
	propertyStops = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Approvals?|Specifications?|Performance`),
		regexp.MustCompile(`(?i)Health|Safety|Handling|Storage`),
		regexp.MustCompile(`\n[A-Z ]{4,}\n`),
	}

	propertyNameRE = regexp.MustCompile(`(?i)^(?:` + strings.Join(constants.PropertyNames, "|") + `)\b`)
	testMethodRE   = regexp.MustCompile(`(?i)\b(?:` + strings.Join(constants.TestMethodBodies, "|") + `)\b[ -]*(?:[A-Za-z]{0,3}-?\d+(?:[./-]\d+)*[A-Za-z]?)?`)
)

// parser states for the line-pair scan
type tableState int

const (
	stateScan tableState = iota
	stateExpectValue
)

// Properties parses the typical-properties table. The table section is
// segmented first (full text when no anchor matches), then scanned line by
// line with a two-state machine: a line matching the property-name
// vocabulary is only consumed together with a following line that carries a
// recognized test-method token; otherwise the candidate is discarded and
// the following line is re-examined as a name line. If the pair scan emits
// nothing, a loose single-pattern pass over a small set of well-known
// labels runs instead. Ordinals are reassigned densely 1..N at the end.
func Properties(text string) []PropertyRow {
	section := text
	if sec, ok := pdstext.Segment(text, propertyAnchors, propertyStops, propertiesWindow); ok {
		section = sec.Text
	}

	rows := scanLinePairs(nonEmptyLines(section))
	if len(rows) == 0 {
		rows = looseScan(section)
	}
	for i := range rows {
		rows[i].Ordinal = i + 1
	}
	return rows
}

func scanLinePairs(lines []string) []PropertyRow {
	rows := []PropertyRow{}
	state := stateScan
	name := ""

	i := 0
	for i < len(lines) {
		line := lines[i]
		switch state {
		case stateScan:
			if propertyNameRE.MatchString(line) {
				name = line
				state = stateExpectValue
			}
			i++
		case stateExpectValue:
			loc := testMethodRE.FindStringIndex(line)
			if loc == nil {
				// No method line follows: drop the candidate and re-examine
				// this same line as a potential name line.
				state = stateScan
				continue
			}
			rows = append(rows, PropertyRow{
				PropertyName: name,
				TestMethod:   strings.ToUpper(collapse(line[loc[0]:loc[1]])),
				Value:        collapse(line[:loc[0]] + " " + line[loc[1]:]),
			})
			state = stateScan
			i++
		}
	}
	return rows
}

// looseLabels is the secondary pass: one "label...: value" pattern per
// well-known property, at most one row each, in this order.
var looseLabels = []struct {
	label string
	re    *regexp.Regexp
}{
	{"Viscosity", regexp.MustCompile(`(Viscosity[^:\n]*)[:.]\s*([^\n]+)`)},
	{"Viscosity Index", regexp.MustCompile(`(Viscosity Index)[:.]\s*([^\n]+)`)},
	{"Pour Point", regexp.MustCompile(`(Pour Point[^:\n]*)[:.]\s*([^\n]+)`)},
	{"Flash Point", regexp.MustCompile(`(Flash Point[^:\n]*)[:.]\s*([^\n]+)`)},
	{"Specific Gravity", regexp.MustCompile(`(Specific Gravity[^:\n]*)[:.]\s*([^\n]+)`)},
	{"TBN", regexp.MustCompile(`(TBN[^:\n]*)[:.]\s*([^\n]+)`)},
}

func looseScan(section string) []PropertyRow {
	rows := []PropertyRow{}
	for _, l := range looseLabels {
		m := l.re.FindStringSubmatch(section)
		if m == nil {
			continue
		}
		rows = append(rows, PropertyRow{
			PropertyName: collapse(m[1]),
			Value:        collapse(m[2]),
		})
	}
	return rows
}

func nonEmptyLines(s string) []string {
	raw := strings.Split(s, "\n")
	out := make([]string, 0, len(raw))
	for _, ln := range raw {
		if t := strings.TrimSpace(ln); t != "" {
			out = append(out, t)
		}
	}
	return out
}
