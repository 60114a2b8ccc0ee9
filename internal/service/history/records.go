package history

import (
	"profitlogic/internal/model"
	"profitlogic/internal/parser"
)

// ParseRecords converts a sales log table into sale records.
// Currency cells coerce to 0 on bad input; unparseable dates stay zero and are dropped by Aggregate.
func ParseRecords(t *parser.Table) ([]model.SaleRecord, error) {
	idx := parser.NewColumnIndex(t.Header, parser.NormalizeColumnName)
	if err := idx.Require(parser.TableSalesHistory, parser.SalesHistoryColumns); err != nil {
		return nil, err
	}

	hasFI := idx.Has(parser.ColumnFIGross)
	hasBack := idx.Has(parser.ColumnBackGross)

	records := make([]model.SaleRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		r := model.SaleRecord{
			Make:       idx.Value(row, "Make"),
			Model:      idx.Value(row, "Model"),
			DealType:   idx.Value(row, "Deal Type"),
			FrontGross: parser.ParseCurrency(idx.Value(row, "Front Gross")),
			TotalGross: parser.ParseCurrency(idx.Value(row, "Total Gross")),
			SoldPrice:  parser.ParseCurrency(idx.Value(row, "Sold Price")),
		}
		if d, ok := parser.ParseDate(idx.Value(row, "Sold Date")); ok {
			r.SoldDate = d
		}
		if d, ok := parser.ParseDate(idx.Value(row, "Received Date")); ok {
			r.ReceivedDate = d
		}
		if hasFI {
			r.FIGross = parser.ParseCurrency(idx.Value(row, parser.ColumnFIGross))
		}
		if hasBack {
			r.BackGross = parser.ParseCurrency(idx.Value(row, parser.ColumnBackGross))
		}
		records = append(records, r)
	}
	return records, nil
}
