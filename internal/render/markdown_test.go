package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TheCodeHarbor/valvoline-pds-api/internal/extract"
)

func sampleRecord() extract.Record {
	return extract.Record{
		DocumentID:  "/data/synpower_env.pdf",
		ProductName: "SynPower ENV C2 5W-30",
		Version:     "306/06b",
		Approvals:   []string{"ACEA C2", "API SN"},
		Properties: []extract.PropertyRow{
			{Ordinal: 1, PropertyName: "Viscosity @ 100°C", TestMethod: "ASTM D-445", Value: "17.5"},
			{Ordinal: 2, PropertyName: "Pour Point", Value: "-39"},
		},
	}
}

func TestSummary(t *testing.T) {
	got := Summary(sampleRecord())
	assert.Contains(t, got, "**Product:** SynPower ENV C2 5W-30")
	assert.Contains(t, got, "**Revision:** 306/06b")
	assert.Contains(t, got, "ACEA C2; API SN")
	assert.Contains(t, got, "- Viscosity @ 100°C: 17.5 (ASTM D-445)")
	// No method recorded, so no parenthesis.
	assert.Contains(t, got, "- Pour Point: -39")
	// Every property line ends in a newline, the last one included.
	assert.True(t, strings.HasSuffix(got, "- Pour Point: -39\n"))
}

func TestComparisonAlignsByPropertyName(t *testing.T) {
	a := sampleRecord()
	b := extract.Record{
		DocumentID:  "/data/maxlife.pdf",
		ProductName: "MaxLife 10W-40",
		Version:     "120/01",
		Properties: []extract.PropertyRow{
			{Ordinal: 1, PropertyName: "viscosity  @ 100°C", Value: "14.2"},
		},
	}

	got := Comparison(a, b, "en")
	assert.Contains(t, got, "**Comparison:** SynPower ENV C2 5W-30 (Rev. 306/06b) vs MaxLife 10W-40 (Rev. 120/01)")
	assert.Contains(t, got, "| Property | SynPower ENV C2 5W-30 | MaxLife 10W-40 |")
	// Spacing and case differences do not break row alignment.
	assert.Contains(t, got, "| Viscosity @ 100°C | 17.5 (ASTM D-445) | 14.2 |")
	// B does not report a pour point.
	assert.Contains(t, got, "| Pour Point | -39 | — |")
}

func TestComparisonDefaultsToNorwegianLabels(t *testing.T) {
	got := Comparison(sampleRecord(), sampleRecord(), "")
	assert.Contains(t, got, "**Sammenligning:**")
	assert.Contains(t, got, "| Egenskap |")
	assert.Contains(t, got, "Godkjenninger / spesifikasjoner")
}

func TestComparisonFallsBackToFilenameStem(t *testing.T) {
	a := sampleRecord()
	a.ProductName = ""
	got := Comparison(a, sampleRecord(), "en")
	assert.True(t, strings.Contains(got, "synpower_env"))
}
