// Package render turns extraction records into the markdown reply strings
// the API serves.
package render

import (
	"fmt"
	"strings"

	"github.com/TheCodeHarbor/valvoline-pds-api/constants"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/extract"
)

type labels struct {
	comparison string
	property   string
	revision   string
	approvals  string
}

var localeLabels = map[string]labels{
	"no": {comparison: "Sammenligning", property: "Egenskap", revision: "Rev.", approvals: "Godkjenninger / spesifikasjoner"},
	"en": {comparison: "Comparison", property: "Property", revision: "Rev.", approvals: "Approvals / specifications"},
}

func labelsFor(locale string) labels {
	if l, ok := localeLabels[locale]; ok {
		return l
	}
	return localeLabels["no"]
}

// Summary renders a single product's record.
func Summary(rec extract.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Product:** %s\n\n", rec.ProductName)
	fmt.Fprintf(&b, "**Revision:** %s\n\n", rec.Version)
	fmt.Fprintf(&b, "**Approvals / Specifications:**\n- %s\n\n", strings.Join(rec.Approvals, "; "))
	b.WriteString("**Typical properties:**\n")
	for _, p := range rec.Properties {
		if p.TestMethod != "" {
			fmt.Fprintf(&b, "- %s: %s (%s)\n", p.PropertyName, p.Value, p.TestMethod)
		} else {
			fmt.Fprintf(&b, "- %s: %s\n", p.PropertyName, p.Value)
		}
	}
	return b.String()
}

// Comparison renders a two-product property table. Rows follow product A's
// property order; B's values are aligned by normalized property name, with
// "—" for properties B does not report.
func Comparison(a, b extract.Record, locale string) string {
	l := labelsFor(locale)

	nameA := displayName(a)
	nameB := displayName(b)

	mapB := make(map[string]extract.PropertyRow, len(b.Properties))
	for _, p := range b.Properties {
		mapB[propKey(p.PropertyName)] = p
	}

	lines := []string{
		fmt.Sprintf("**%s:** %s (%s %s) vs %s (%s %s)", l.comparison, nameA, l.revision, a.Version, nameB, l.revision, b.Version),
		"",
		fmt.Sprintf("| %s | %s | %s |", l.property, nameA, nameB),
		"|---|---|---|",
	}
	for _, p := range a.Properties {
		valA := withMethod(p.Value, p.TestMethod)
		valB := "—"
		if q, ok := mapB[propKey(p.PropertyName)]; ok {
			valB = withMethod(q.Value, q.TestMethod)
		}
		lines = append(lines, fmt.Sprintf("| %s | %s | %s |", p.PropertyName, valA, valB))
	}

	lines = append(lines, "", fmt.Sprintf("**%s:**", l.approvals))
	if len(a.Approvals) > 0 {
		lines = append(lines, "- "+nameA+": "+strings.Join(a.Approvals, "; "))
	}
	if len(b.Approvals) > 0 {
		lines = append(lines, "- "+nameB+": "+strings.Join(b.Approvals, "; "))
	}
	return strings.Join(lines, "\n")
}

func displayName(rec extract.Record) string {
	if rec.ProductName != "" {
		return rec.ProductName
	}
	return constants.FileStem(rec.DocumentID)
}

func withMethod(value, method string) string {
	if method == "" {
		return value
	}
	return fmt.Sprintf("%s (%s)", value, method)
}

func propKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
