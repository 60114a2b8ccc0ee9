package parser

import (
	"fmt"
	"strings"
	"time"
)

// TableKind which upload a table is being read as
type TableKind string

const (
	TableSalesHistory TableKind = "sales_history"
	TableBatch        TableKind = "batch"
)

// SalesHistoryColumns required sales log headers, matched exactly after trimming
var SalesHistoryColumns = []string{
	"Sold Date", "Received Date", "Make", "Model", "Front Gross", "Total Gross", "Deal Type", "Sold Price",
}

// Optional sales log currency headers
const (
	ColumnFIGross   = "F&I Products Gross"
	ColumnBackGross = "Back Gross"
)

// BatchColumns required batch headers, matched lowercased
var BatchColumns = []string{"vin", "year", "make", "model", "mileage", "retail", "appraisal"}

// MissingColumnsError an upload lacks required headers
type MissingColumnsError struct {
	Kind    TableKind
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing expected columns: %s", strings.Join(e.Columns, ", "))
}

// Table header plus data rows of a tabular upload
type Table struct {
	Header []string
	Rows   [][]string
}

// ImportReport per-upload parse statistics
type ImportReport struct {
	Filename     string        `json:"filename"`
	TotalRows    int           `json:"totalRows"`
	ImportedRows int           `json:"importedRows"`
	SkippedRows  int           `json:"skippedRows"` // filtered or unparseable
	Duration     time.Duration `json:"duration"`
}
