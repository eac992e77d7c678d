package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/TheCodeHarbor/valvoline-pds-api/internal/extract"
)

func TestRecordXLSX(t *testing.T) {
	rec := extract.Record{
		DocumentID:  "/data/synpower_env.pdf",
		ProductName: "SynPower ENV C2 5W-30",
		Version:     "306/06b",
		Approvals:   []string{"ACEA C2", "API SN"},
		Properties: []extract.PropertyRow{
			{Ordinal: 1, PropertyName: "Viscosity @ 100°C", TestMethod: "ASTM D-445", Value: "17.5"},
			{Ordinal: 2, PropertyName: "Pour Point", Value: "-39"},
		},
	}

	data, err := NewService(nil).RecordXLSX(rec)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue("Typical Properties", cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Product", get("A1"))
	assert.Equal(t, "SynPower ENV C2 5W-30", get("B1"))
	assert.Equal(t, "306/06b", get("B2"))
	assert.Equal(t, "ACEA C2; API SN", get("B3"))
	assert.Equal(t, "/data/synpower_env.pdf", get("B4"))

	assert.Equal(t, "#", get("A6"))
	assert.Equal(t, "Property", get("B6"))
	assert.Equal(t, "Test Method", get("C6"))
	assert.Equal(t, "Value", get("D6"))

	assert.Equal(t, "1", get("A7"))
	assert.Equal(t, "Viscosity @ 100°C", get("B7"))
	assert.Equal(t, "ASTM D-445", get("C7"))
	assert.Equal(t, "17.5", get("D7"))
	assert.Equal(t, "", get("C8"))
	assert.Equal(t, "-39", get("D8"))
}

func TestComparisonXLSXAlignsRows(t *testing.T) {
	a := extract.Record{
		DocumentID:  "/data/a.pdf",
		ProductName: "SynPower ENV C2 5W-30",
		Version:     "306/06b",
		Properties: []extract.PropertyRow{
			{Ordinal: 1, PropertyName: "Viscosity @ 100°C", Value: "17.5"},
			{Ordinal: 2, PropertyName: "Pour Point", Value: "-39"},
		},
	}
	b := extract.Record{
		DocumentID: "/data/EUR_Val_MaxLife_10W40.pdf",
		Version:    "120/01",
		Properties: []extract.PropertyRow{
			{Ordinal: 1, PropertyName: "viscosity  @ 100°C", Value: "14.2"},
		},
	}

	data, err := NewService(nil).ComparisonXLSX(a, b)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue("Comparison", cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "SynPower ENV C2 5W-30", get("B1"))
	// No product name extracted for b, so the filename stem stands in.
	assert.Equal(t, "EUR_Val_MaxLife_10W40", get("C1"))
	assert.Equal(t, "306/06b", get("B2"))
	assert.Equal(t, "120/01", get("C2"))

	assert.Equal(t, "Property", get("A6"))
	assert.Equal(t, "Viscosity @ 100°C", get("A7"))
	assert.Equal(t, "17.5", get("B7"))
	assert.Equal(t, "14.2", get("C7"))
	assert.Equal(t, "Pour Point", get("A8"))
	assert.Equal(t, "", get("C8"))
}

func TestRecordXLSXEmptyRecord(t *testing.T) {
	data, err := NewService(nil).RecordXLSX(extract.Record{DocumentID: "x.pdf"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Typical Properties", "A6")
	require.NoError(t, err)
	assert.Equal(t, "#", v)
}
