package excel

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"profitlogic/internal/model"
)

func sampleReport() *model.BatchReport {
	return &model.BatchReport{
		ID:     "r1",
		Config: model.DefaultPricingConfig(),
		Results: []model.BatchResult{
			{
				Row: model.BatchRow{VIN: "5XYPK4A63C", Year: 2020, Make: "Kia", Model: "Sportage", Mileage: 105000, Retail: 15000, Appraisal: 11000},
				Appraisal: model.AppraisalResult{
					MileageImpact:  -2995.010859375,
					AdjustedRetail: 12004.989140625,
					MaxBuy:         8199.39044375,
					FrontGross:     -1360.010859375,
					FrontMarginPct: -0.11328713782611508,
					TurnDays:       56,
					TurnDataSource: model.SourceIndustryDefault,
					Priority:       model.PriorityMedium,
					MileageAlert:   model.MileageAlertOverThreshold,
				},
				Room:      -2800.60955625,
				TotalDeal: -160.010859375,
				Status:    model.OverBudget,
			},
			{
				Row: model.BatchRow{VIN: "KM8R54AP1L", Year: 2023, Make: "Hyundai", Model: "Tucson", Mileage: 12000, Retail: 29000, Appraisal: 24000},
				Appraisal: model.AppraisalResult{
					MileageImpact:  1300.5,
					AdjustedRetail: 30300.5,
					MaxBuy:         24299.44,
					FrontGross:     3935.5,
					FrontMarginPct: 0.12988234517582217,
					TurnDays:       29.6,
					TurnDataSource: model.SourceDealerHistorical,
					Priority:       model.PriorityHigh,
					MileageAlert:   model.MileageAlertNone,
				},
				Room:      299.44,
				TotalDeal: 5135.5,
				Status:    model.UnderBudget,
			},
		},
		Summary: model.BatchSummary{
			VehicleCount:      2,
			AvgTurn:           42.8,
			UnderBudget:       1,
			OverBudget:        1,
			OverThreshold:     1,
			ValueAdded:        1300.5,
			ValueDeducted:     -2995.010859375,
			NetMileageImpact:  -1694.510859375,
			TotalFrontGross:   2575.489140625,
			AvgFrontMarginPct: 0.008297603674853547,
		},
	}
}

func TestExporter_WriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExporter().Export(&buf, FormatCSV, sampleReport()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Len(t, records[0], 17)
	assert.Equal(t, "Front Margin", records[0][12])
	assert.Equal(t, "Turn Days", records[0][14])

	assert.Equal(t, []string{
		"MEDIUM", "100K+ CLIFF", "2020", "Kia", "Sportage", "105000",
		"15000.00", "-2995.01", "12004.99", "8199.39", "-2800.61",
		"-1360.01", "-11.3%", "-160.01", "56d", "Industry Averages", "OVER BUDGET",
	}, records[1])

	tucson := records[2]
	assert.Empty(t, tucson[1])
	assert.Equal(t, "13.0%", tucson[12])
	assert.Equal(t, "30d", tucson[14])
	assert.Equal(t, "YOUR Data", tucson[15])
	assert.Equal(t, "UNDER BUDGET", tucson[16])
}

func TestExporter_Workbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExporter().Export(&buf, FormatXLSX, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(resultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Priority", rows[0][0])
	assert.Equal(t, "Status", rows[0][16])
	assert.Equal(t, "HIGH", rows[2][0])
	assert.Equal(t, "Hyundai", rows[2][3])
	assert.Equal(t, "13.0%", rows[2][12])

	v, _ := f.GetCellValue(resultsSheet, "J3")
	assert.Equal(t, "24299.44", v)

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	assert.Equal(t, "1 / 1", summary[2][1])
	assert.Equal(t, "-$1,694.51", summary[6][1])
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatCSV, "csv": FormatCSV, "xlsx": FormatXLSX} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatMoney(1234.5))
	assert.Equal(t, "-$0.50", FormatMoney(-0.5))
	assert.Equal(t, "38d", FormatTurnDays(37.5))
	assert.Equal(t, "12.0%", FormatMarginPct(0.12))
	assert.Equal(t, "NEAR 100K", AlertLabel(model.MileageAlertNearThreshold))
}
