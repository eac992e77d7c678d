// Package export produces XLSX workbooks from extraction records.
package export

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/TheCodeHarbor/valvoline-pds-api/constants"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/extract"
)

// Service renders extraction records to spreadsheet bytes.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

const propertiesSheet = "Typical Properties"

// RecordXLSX returns a workbook for one record: a product info block
// followed by the typical-properties table.
func (s *Service) RecordXLSX(rec extract.Record) ([]byte, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", propertiesSheet); err != nil {
		return nil, err
	}

	info := [][2]string{
		{"Product", rec.ProductName},
		{"Revision", rec.Version},
		{"Approvals", strings.Join(rec.Approvals, "; ")},
		{"Source", rec.DocumentID},
	}
	for i, kv := range info {
		keyCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valCell, _ := excelize.CoordinatesToCellName(2, i+1)
		_ = f.SetCellValue(propertiesSheet, keyCell, kv[0])
		_ = f.SetCellValue(propertiesSheet, valCell, kv[1])
	}

	headerRow := len(info) + 2
	headers := []string{"#", "Property", "Test Method", "Value"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(propertiesSheet, cell, h)
	}

	row := headerRow + 1
	for _, p := range rec.Properties {
		values := []any{p.Ordinal, p.PropertyName, p.TestMethod, p.Value}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(propertiesSheet, cell, v)
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Debug("export.record_xlsx", "document", rec.DocumentID, "rows", len(rec.Properties))
	return buf.Bytes(), nil
}

const comparisonSheet = "Comparison"

// ComparisonXLSX returns a workbook comparing two records. Rows follow
// record a's property order; b's values are aligned by normalized property
// name and left blank where b reports nothing.
func (s *Service) ComparisonXLSX(a, b extract.Record) ([]byte, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", comparisonSheet); err != nil {
		return nil, err
	}

	nameA := displayName(a)
	nameB := displayName(b)
	info := [][3]string{
		{"Product", nameA, nameB},
		{"Revision", a.Version, b.Version},
		{"Approvals", strings.Join(a.Approvals, "; "), strings.Join(b.Approvals, "; ")},
		{"Source", a.DocumentID, b.DocumentID},
	}
	for i, row := range info {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			_ = f.SetCellValue(comparisonSheet, cell, v)
		}
	}

	headerRow := len(info) + 2
	for j, h := range []string{"Property", nameA, nameB} {
		cell, _ := excelize.CoordinatesToCellName(j+1, headerRow)
		_ = f.SetCellValue(comparisonSheet, cell, h)
	}

	byName := make(map[string]extract.PropertyRow, len(b.Properties))
	for _, p := range b.Properties {
		byName[propKey(p.PropertyName)] = p
	}

	row := headerRow + 1
	for _, p := range a.Properties {
		valB := ""
		if q, ok := byName[propKey(p.PropertyName)]; ok {
			valB = q.Value
		}
		for j, v := range []string{p.PropertyName, p.Value, valB} {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			_ = f.SetCellValue(comparisonSheet, cell, v)
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Debug("export.comparison_xlsx", "document_a", a.DocumentID, "document_b", b.DocumentID)
	return buf.Bytes(), nil
}

func displayName(rec extract.Record) string {
	if rec.ProductName != "" {
		return rec.ProductName
	}
	return constants.FileStem(rec.DocumentID)
}

func propKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
