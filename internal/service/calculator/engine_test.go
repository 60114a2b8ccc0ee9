package calculator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profitlogic/internal/model"
	"profitlogic/internal/parser"
	"profitlogic/internal/service/market"
	"profitlogic/internal/service/store"
	"profitlogic/internal/service/vin"
)

func clock2025() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func year2025() int { return 2025 }

func newTestEngine(s *store.SessionStore) *Engine {
	return NewEngine(s,
		market.NewSynthetic(10, year2025),
		vin.NewStaticDecoder(year2025),
		Options{Workers: 2, Now: clock2025},
	)
}

func TestAppraise_EndToEnd(t *testing.T) {
	cfg := model.DefaultPricingConfig()
	cfg.MarginTargetPct = 10
	cfg.ReconCost = 1500
	appraisal := 16000.0

	res := Appraise(Inputs{
		Vehicle:        model.VehicleAppraisalRequest{Make: "Chevrolet", Model: "Equinox", Year: 2021, Mileage: 45000, Price: 22000},
		ReferenceMiles: ExpectedMileage(2021, 2025),
		AppraisalPrice: &appraisal,
		CurrentYear:    2025,
		Config:         cfg,
		TurnDays:       38,
		TurnSource:     model.SourceIndustryDefault,
	})

	assert.InDelta(t, 0.0783009375, res.CPMUsed, 1e-12)
	assert.InDelta(t, 234.9028125, res.MileageImpact, 1e-6)
	assert.InDelta(t, 22234.9028125, res.AdjustedRetail, 1e-6)
	assert.InDelta(t, 17646.41253125, res.MaxBuy, 1e-6)
	assert.InDelta(t, 3869.9028125, res.FrontGross, 1e-6)
	assert.InDelta(t, 3869.9028125/22234.9028125, res.FrontMarginPct, 1e-12)
	assert.Equal(t, model.PriorityMedium, res.Priority)
	assert.Equal(t, model.MileageAlertNone, res.MileageAlert)
}

func TestAppraise_NoOfferPricesAtMaxBuy(t *testing.T) {
	cfg := model.DefaultPricingConfig()
	res := Appraise(Inputs{
		Vehicle:        model.VehicleAppraisalRequest{Year: 2024, Mileage: 20000, Price: 30000},
		ReferenceMiles: 20000,
		CurrentYear:    2025,
		Config:         cfg,
		TurnDays:       25,
	})
	assert.InDelta(t, cfg.MarginTarget(), res.FrontMarginPct, 1e-12)
	assert.Equal(t, model.PriorityHigh, res.Priority)
}

func TestEngine_AppraiseBatch_Sample(t *testing.T) {
	s := store.NewSessionStore(model.DefaultPricingConfig())
	e := newTestEngine(s)

	report, err := e.AppraiseBatch(context.Background(), model.SampleBatchRows())
	require.NoError(t, err)
	require.Len(t, report.Results, 5)
	assert.NotEmpty(t, report.ID)

	want := []struct {
		model    string
		priority model.Priority
		alert    model.MileageAlert
		status   model.BudgetStatus
		turn     float64
	}{
		{"Equinox", model.PriorityMedium, model.MileageAlertNone, model.UnderBudget, 38},
		{"Accord", model.PriorityMedium, model.MileageAlertNearThreshold, model.OverBudget, 32},
		{"Camry", model.PriorityHigh, model.MileageAlertNone, model.UnderBudget, 26},
		{"Sportage", model.PriorityMedium, model.MileageAlertOverThreshold, model.OverBudget, 56},
		{"Tucson", model.PriorityHigh, model.MileageAlertNone, model.UnderBudget, 30},
	}
	for i, w := range want {
		r := report.Results[i]
		assert.Equal(t, w.model, r.Row.Model)
		assert.Equal(t, w.priority, r.Appraisal.Priority, w.model)
		assert.Equal(t, w.alert, r.Appraisal.MileageAlert, w.model)
		assert.Equal(t, w.status, r.Status, w.model)
		assert.Equal(t, w.turn, r.Appraisal.TurnDays, w.model)
		assert.Equal(t, model.SourceIndustryDefault, r.Appraisal.TurnDataSource, w.model)
	}

	equinox := report.Results[0]
	assert.InDelta(t, 17201.714475, equinox.Appraisal.MaxBuy, 1e-6)
	assert.InDelta(t, 1201.714475, equinox.Room, 1e-6)
	assert.InDelta(t, 3869.9028125+1200, equinox.TotalDeal, 1e-6)

	sum := report.Summary
	assert.Equal(t, 5, sum.VehicleCount)
	assert.InDelta(t, 36.4, sum.AvgTurn, 1e-9)
	assert.Equal(t, 3, sum.UnderBudget)
	assert.Equal(t, 2, sum.OverBudget)
	assert.Equal(t, 1, sum.OverThreshold)
	assert.InDelta(t, 2548.7090625, sum.ValueAdded, 1e-6)
	assert.InDelta(t, -4465.8939703125, sum.ValueDeducted, 1e-6)
	assert.InDelta(t, sum.ValueAdded+sum.ValueDeducted, sum.NetMileageImpact, 1e-9)
}

func TestEngine_AppraiseBatch_DealerHistoryOverrides(t *testing.T) {
	s := store.NewSessionStore(model.DefaultPricingConfig())
	s.ReplaceHistory(&model.SalesSummary{Breakdown: []model.ModelSummary{
		{Key: model.NewModelKey("Chevrolet", "Equinox"), UnitsSold: 4, AvgTurn: 20},
	}}, store.HistoryUpload{ID: "u1"})

	report, err := newTestEngine(s).AppraiseBatch(context.Background(), model.SampleBatchRows()[:1])
	require.NoError(t, err)

	a := report.Results[0].Appraisal
	assert.Equal(t, 20.0, a.TurnDays)
	assert.Equal(t, model.SourceDealerHistorical, a.TurnDataSource)
	assert.Equal(t, model.PriorityHigh, a.Priority)
}

func TestEngine_AppraiseBatch_Empty(t *testing.T) {
	report, err := newTestEngine(store.NewSessionStore(model.DefaultPricingConfig())).AppraiseBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.Equal(t, model.BatchSummary{}, report.Summary)
}

func TestEngine_AppraiseBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine(store.NewSessionStore(model.DefaultPricingConfig())).AppraiseBatch(ctx, model.SampleBatchRows())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_AppraiseLookup_DecodesVIN(t *testing.T) {
	e := newTestEngine(store.NewSessionStore(model.DefaultPricingConfig()))

	res, err := e.AppraiseLookup(context.Background(), model.LookupRequest{
		VIN:     "km8j3ca46lu123456",
		Model:   "Tucson",
		Mileage: 40000,
	})
	require.NoError(t, err)

	require.NotNil(t, res.Decoded)
	assert.Equal(t, "Hyundai", res.Vehicle.Make)
	assert.Equal(t, 2020, res.Vehicle.Year)
	assert.Equal(t, "KM8J3CA46LU123456", res.Vehicle.VIN)

	assert.Equal(t, 10, res.Market.ListingCount)
	assert.Equal(t, res.Market.AvgPrice, res.Vehicle.Price)
	assert.Equal(t, res.Market.MedianMileage, res.Appraisal.ReferenceMiles)

	assert.Equal(t, 30.0, res.Appraisal.TurnDays)
	assert.Equal(t, model.BannerAggressive, res.Banner)
	assert.InDelta(t, res.Appraisal.MaxBuy, res.Ceiling.MaxBuy, 1e-9)
	assert.InDelta(t, res.Appraisal.AdjustedRetail*0.12, res.Ceiling.MarginDollars, 1e-9)
	assert.Nil(t, res.Room)
	assert.Empty(t, res.Status)

	again, err := e.AppraiseLookup(context.Background(), model.LookupRequest{
		VIN:     "KM8J3CA46LU123456",
		Model:   "Tucson",
		Mileage: 40000,
	})
	require.NoError(t, err)
	assert.Equal(t, res.Market, again.Market)
}

func TestEngine_AppraiseLookup_WithOffer(t *testing.T) {
	e := newTestEngine(store.NewSessionStore(model.DefaultPricingConfig()))
	offer := 1.0

	res, err := e.AppraiseLookup(context.Background(), model.LookupRequest{
		Make: "Kia", Model: "Sportage", Year: 2022, Mileage: 99000, AppraisalPrice: &offer,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Room)
	assert.InDelta(t, res.Appraisal.MaxBuy-1, *res.Room, 1e-9)
	assert.Equal(t, BudgetStatusFor(*res.Room), res.Status)
	assert.Equal(t, model.MileageAlertNearThreshold, res.Appraisal.MileageAlert)
	assert.Equal(t, model.BannerCautious, res.Banner)
}

func TestEngine_AppraiseLookup_ManualValuesWin(t *testing.T) {
	e := newTestEngine(store.NewSessionStore(model.DefaultPricingConfig()))

	res, err := e.AppraiseLookup(context.Background(), model.LookupRequest{
		VIN: "KM8J3CA46LU123456", Make: "Genesis", Model: "GV70", Year: 2024, Mileage: 10000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Genesis", res.Vehicle.Make)
	assert.Equal(t, 2024, res.Vehicle.Year)
}

func TestEngine_AppraiseLookup_Errors(t *testing.T) {
	e := newTestEngine(store.NewSessionStore(model.DefaultPricingConfig()))

	_, err := e.AppraiseLookup(context.Background(), model.LookupRequest{Mileage: 1000})
	assert.True(t, errors.Is(err, ErrMakeModelRequired))

	res, err := e.AppraiseLookup(context.Background(), model.LookupRequest{
		VIN: "TOO-SHORT", Make: "Nissan", Model: "Rogue", Year: 2021, Mileage: 50000,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.DecodeErr)
	assert.Nil(t, res.Decoded)
	assert.Equal(t, 36.0, res.Appraisal.TurnDays)
}

func TestParseBatchTable(t *testing.T) {
	rows, err := ParseBatchTable(&parser.Table{
		Header: []string{" VIN ", "Year", "MAKE", "Model", "Mileage", "Retail", "Appraisal", "Notes"},
		Rows: [][]string{
			{"1G1AL58FX7", "2021", "Chevrolet", "Equinox", "45,000", "$22,000", "16000", "clean"},
			{"JHMCR2F39C", "2019.0", "Honda", "Accord", "n/a", "18500", "", ""},
		},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, model.BatchRow{VIN: "1G1AL58FX7", Year: 2021, Make: "Chevrolet", Model: "Equinox", Mileage: 45000, Retail: 22000, Appraisal: 16000}, rows[0])
	assert.Equal(t, 2019, rows[1].Year)
	assert.Equal(t, 0, rows[1].Mileage)
	assert.Equal(t, 0.0, rows[1].Appraisal)

	_, err = ParseBatchTable(&parser.Table{Header: []string{"vin", "make", "model"}})
	var mce *parser.MissingColumnsError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, []string{"year", "mileage", "retail", "appraisal"}, mce.Columns)
}

func TestParseBatchTable_ClampsNegatives(t *testing.T) {
	rows, err := ParseBatchTable(&parser.Table{
		Header: []string{"vin", "year", "make", "model", "mileage", "retail", "appraisal"},
		Rows: [][]string{
			{"X", "2021", "Kia", "Sportage", "-50000", "-22000", "(16000)"},
		},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].Mileage)
	assert.Equal(t, 0.0, rows[0].Retail)
	assert.Equal(t, 0.0, rows[0].Appraisal)

	report, err := newTestEngine(store.NewSessionStore(model.DefaultPricingConfig())).
		AppraiseBatch(context.Background(), rows)
	require.NoError(t, err)
	res := report.Results[0].Appraisal
	assert.Greater(t, res.MileageImpact, 0.0)
	assert.GreaterOrEqual(t, res.AdjustedRetail, 0.0)
}
