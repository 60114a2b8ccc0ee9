package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"profitlogic/internal/model"
)

// Format export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts "csv" or "xlsx"; empty means csv
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType MIME type for the format
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// BatchColumns export header, in order
var BatchColumns = []string{
	"Priority", "Alert", "Year", "Make", "Model", "Mileage",
	"Base Retail", "Mileage Impact", "Adjusted Retail", "Max Buy", "Room",
	"Front Gross", "Front Margin", "Total Deal", "Turn Days", "Data Source", "Status",
}

const (
	resultsSheet = "Batch Results"
	summarySheet = "Summary"
)

// AlertLabel export text for a mileage alert
func AlertLabel(a model.MileageAlert) string {
	switch a {
	case model.MileageAlertOverThreshold:
		return "100K+ CLIFF"
	case model.MileageAlertNearThreshold:
		return "NEAR 100K"
	default:
		return ""
	}
}

// StatusLabel export text for a budget status
func StatusLabel(s model.BudgetStatus) string {
	if s == model.OverBudget {
		return "OVER BUDGET"
	}
	return "UNDER BUDGET"
}

// SourceLabel export text for a turn data source
func SourceLabel(s model.TurnSource) string {
	if s == model.SourceDealerHistorical {
		return "YOUR Data"
	}
	return "Industry Averages"
}

// FormatMarginPct 0.1234 -> "12.3%"
func FormatMarginPct(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct*100)
}

// FormatTurnDays 31.6 -> "32d"
func FormatTurnDays(days float64) string {
	return fmt.Sprintf("%.0fd", days)
}

// FormatMoney 1234.5 -> "$1,234.50"
func FormatMoney(v float64) string {
	s := humanize.FormatFloat("#,###.##", math.Abs(v))
	if v < 0 {
		return "-$" + s
	}
	return "$" + s
}

func cents(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// Exporter writes batch reports as CSV or workbook
type Exporter struct{}

// NewExporter creates an exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes report to w in the given format
func (e *Exporter) Export(w io.Writer, format Format, report *model.BatchReport) error {
	switch format {
	case FormatCSV:
		return e.WriteCSV(w, report)
	case FormatXLSX:
		f, err := e.Workbook(report)
		if err != nil {
			return err
		}
		defer f.Close()
		return f.Write(w)
	default:
		return ErrUnknownFormat
	}
}

func batchRecord(r model.BatchResult) []string {
	a := r.Appraisal
	return []string{
		string(a.Priority),
		AlertLabel(a.MileageAlert),
		strconv.Itoa(r.Row.Year),
		r.Row.Make,
		r.Row.Model,
		strconv.Itoa(r.Row.Mileage),
		cents(r.Row.Retail).StringFixed(2),
		cents(a.MileageImpact).StringFixed(2),
		cents(a.AdjustedRetail).StringFixed(2),
		cents(a.MaxBuy).StringFixed(2),
		cents(r.Room).StringFixed(2),
		cents(a.FrontGross).StringFixed(2),
		FormatMarginPct(a.FrontMarginPct),
		cents(r.TotalDeal).StringFixed(2),
		FormatTurnDays(a.TurnDays),
		SourceLabel(a.TurnDataSource),
		StatusLabel(r.Status),
	}
}

// WriteCSV writes the header and one record per result
func (e *Exporter) WriteCSV(w io.Writer, report *model.BatchReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(BatchColumns); err != nil {
		return err
	}
	for _, r := range report.Results {
		if err := cw.Write(batchRecord(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Workbook builds a results sheet plus a summary sheet
func (e *Exporter) Workbook(report *model.BatchReport) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return nil, err
	}

	for i, h := range BatchColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(resultsSheet, cell, h)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetRowStyle(resultsSheet, 1, 1, headerStyle)

	for i, r := range report.Results {
		a := r.Appraisal
		row := []interface{}{
			string(a.Priority),
			AlertLabel(a.MileageAlert),
			r.Row.Year,
			r.Row.Make,
			r.Row.Model,
			r.Row.Mileage,
			cents(r.Row.Retail).InexactFloat64(),
			cents(a.MileageImpact).InexactFloat64(),
			cents(a.AdjustedRetail).InexactFloat64(),
			cents(a.MaxBuy).InexactFloat64(),
			cents(r.Room).InexactFloat64(),
			cents(a.FrontGross).InexactFloat64(),
			FormatMarginPct(a.FrontMarginPct),
			cents(r.TotalDeal).InexactFloat64(),
			FormatTurnDays(a.TurnDays),
			SourceLabel(a.TurnDataSource),
			StatusLabel(r.Status),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(resultsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	for i, line := range SummaryLines(report.Summary) {
		row := []interface{}{line.Label, line.Value}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(summarySheet, "A", "A", 24)
	f.SetColWidth(summarySheet, "B", "B", 18)

	return f, nil
}

// SummaryLine one labelled figure of a batch summary
type SummaryLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SummaryLines human-readable batch summary
func SummaryLines(s model.BatchSummary) []SummaryLine {
	return []SummaryLine{
		{"Vehicle Count", humanize.Comma(int64(s.VehicleCount))},
		{"Avg Turn", FormatTurnDays(s.AvgTurn)},
		{"Under / Over Budget", fmt.Sprintf("%d / %d", s.UnderBudget, s.OverBudget)},
		{"100K+ Alerts", strconv.Itoa(s.OverThreshold)},
		{"Value Added", FormatMoney(s.ValueAdded)},
		{"Value Deducted", FormatMoney(s.ValueDeducted)},
		{"Net Mileage Impact", FormatMoney(s.NetMileageImpact)},
		{"Total Front Gross", FormatMoney(s.TotalFrontGross)},
		{"Avg Front Margin %", FormatMarginPct(s.AvgFrontMarginPct)},
	}
}
