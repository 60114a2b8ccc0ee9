package calculator

import (
	"fmt"
	"io"

	"profitlogic/internal/model"
	"profitlogic/internal/parser"
	"profitlogic/internal/service/excel"
)

// ParseBatchTable reads batch rows; headers match lowercased and trimmed.
// Malformed numeric cells become 0; negative mileage and prices clamp to 0.
func ParseBatchTable(t *parser.Table) ([]model.BatchRow, error) {
	cols := parser.NewColumnIndex(t.Header, parser.NormalizeColumnNameLower)
	if err := cols.Require(parser.TableBatch, parser.BatchColumns); err != nil {
		return nil, err
	}

	rows := make([]model.BatchRow, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, model.BatchRow{
			VIN:       cols.Value(r, "vin"),
			Year:      parser.ParseInt(cols.Value(r, "year")),
			Make:      cols.Value(r, "make"),
			Model:     cols.Value(r, "model"),
			Mileage:   max(parser.ParseInt(cols.Value(r, "mileage")), 0),
			Retail:    max(parser.ParseCurrency(cols.Value(r, "retail")), 0),
			Appraisal: max(parser.ParseCurrency(cols.Value(r, "appraisal")), 0),
		})
	}
	return rows, nil
}

// ReadBatchFile loads a .csv or .xlsx batch upload
func ReadBatchFile(reader io.Reader, filename string) ([]model.BatchRow, error) {
	p := excel.NewParser()
	if err := p.LoadFile(reader, filename); err != nil {
		return nil, fmt.Errorf("load batch file: %w", err)
	}
	t, err := p.Table()
	if err != nil {
		return nil, err
	}
	return ParseBatchTable(t)
}
