package calculator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"profitlogic/internal/metrics"
	"profitlogic/internal/model"
	"profitlogic/internal/service/market"
	"profitlogic/internal/service/store"
	"profitlogic/internal/service/turnrate"
	"profitlogic/internal/service/vin"
)

// DefaultRadiusMiles comparables search radius when the caller sends none
const DefaultRadiusMiles = 50

var ErrMakeModelRequired = errors.New("make and model are required")

// Inputs everything one pricing pass needs
type Inputs struct {
	Vehicle        model.VehicleAppraisalRequest
	ReferenceMiles float64
	// AppraisalPrice known offer; nil prices the deal at max buy
	AppraisalPrice *float64
	CurrentYear    int
	Config         model.PricingConfig
	TurnDays       float64
	TurnSource     model.TurnSource
}

// Appraise runs CPM, mileage adjustment, ceiling bid and classification for one vehicle
func Appraise(in Inputs) model.AppraisalResult {
	cfg := in.Config
	v := in.Vehicle

	cpm := EstimateCPM(v.Price, v.Year, in.CurrentYear, cfg)
	impact := MileageImpact(in.ReferenceMiles, float64(v.Mileage), cpm)
	adjusted := AdjustedRetail(v.Price, impact)
	maxBuy := MaxBuy(adjusted, cfg)

	offer := maxBuy
	if in.AppraisalPrice != nil {
		offer = *in.AppraisalPrice
	}
	frontGross := FrontGross(adjusted, offer, cfg)
	margin := FrontMarginPct(frontGross, adjusted)

	return model.AppraisalResult{
		CPMUsed:        cpm,
		ReferenceMiles: in.ReferenceMiles,
		MileageImpact:  impact,
		AdjustedRetail: adjusted,
		MaxBuy:         maxBuy,
		FrontGross:     frontGross,
		FrontMarginPct: margin,
		TurnDays:       in.TurnDays,
		TurnDataSource: in.TurnSource,
		Priority:       ClassifyPriority(in.TurnDays, margin),
		MileageAlert:   ClassifyMileageAlert(v.Mileage),
	}
}

// Options engine tuning
type Options struct {
	Workers int
	Now     func() time.Time
}

// Engine appraisal pipeline over the session store and collaborators
type Engine struct {
	store    *store.SessionStore
	defaults turnrate.Table
	market   market.Source
	vin      vin.Decoder
	workers  int
	now      func() time.Time
}

// NewEngine creates an appraisal engine; decoder may be nil
func NewEngine(s *store.SessionStore, src market.Source, decoder vin.Decoder, opts Options) *Engine {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		store:    s,
		defaults: turnrate.IndustryDefaults(),
		market:   src,
		vin:      decoder,
		workers:  opts.Workers,
		now:      opts.Now,
	}
}

// CurrentYear year used for vehicle age
func (e *Engine) CurrentYear() int {
	return e.now().Year()
}

// AppraiseBatch prices every row against one session snapshot.
// Results keep input order; the summary is computed after all rows resolve.
func (e *Engine) AppraiseBatch(ctx context.Context, rows []model.BatchRow) (*model.BatchReport, error) {
	start := time.Now()
	snap := e.store.Snapshot()
	resolver := turnrate.NewResolver(snap, e.defaults)
	year := e.CurrentYear()

	results := make([]model.BatchResult, len(rows))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range rows {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = appraiseRow(rows[i], snap.Config, resolver, year)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch appraisal: %w", err)
	}

	for _, r := range results {
		metrics.Appraisals.WithLabelValues("batch", string(r.Appraisal.Priority)).Inc()
	}
	metrics.BatchDuration.Observe(time.Since(start).Seconds())

	return &model.BatchReport{
		ID:      uuid.NewString(),
		Config:  snap.Config,
		Results: results,
		Summary: SummarizeBatch(results),
	}, nil
}

func appraiseRow(row model.BatchRow, cfg model.PricingConfig, resolver *turnrate.Resolver, year int) model.BatchResult {
	turnDays, source := resolver.Resolve(row.Make, row.Model)
	appraisal := row.Appraisal

	res := Appraise(Inputs{
		Vehicle: model.VehicleAppraisalRequest{
			VIN:     row.VIN,
			Make:    row.Make,
			Model:   row.Model,
			Year:    row.Year,
			Mileage: row.Mileage,
			Price:   row.Retail,
		},
		ReferenceMiles: ExpectedMileage(row.Year, year),
		AppraisalPrice: &appraisal,
		CurrentYear:    year,
		Config:         cfg,
		TurnDays:       turnDays,
		TurnSource:     source,
	})

	room := Room(res.MaxBuy, row.Appraisal)
	return model.BatchResult{
		Row:       row,
		Appraisal: res,
		Room:      room,
		TotalDeal: res.FrontGross + cfg.BelowLineAmount(),
		Status:    BudgetStatusFor(room),
	}
}

// SummarizeBatch totals over priced rows
func SummarizeBatch(results []model.BatchResult) model.BatchSummary {
	s := model.BatchSummary{VehicleCount: len(results)}
	if len(results) == 0 {
		return s
	}

	var turnSum, marginSum float64
	for _, r := range results {
		a := r.Appraisal
		turnSum += a.TurnDays
		marginSum += a.FrontMarginPct
		s.TotalFrontGross += a.FrontGross

		if r.Status == model.UnderBudget {
			s.UnderBudget++
		} else {
			s.OverBudget++
		}
		if a.MileageAlert == model.MileageAlertOverThreshold {
			s.OverThreshold++
		}
		switch {
		case a.MileageImpact > 0:
			s.ValueAdded += a.MileageImpact
		case a.MileageImpact < 0:
			s.ValueDeducted += a.MileageImpact
		}
	}

	n := float64(len(results))
	s.AvgTurn = turnSum / n
	s.AvgFrontMarginPct = marginSum / n
	s.NetMileageImpact = s.ValueAdded + s.ValueDeducted
	return s
}

// AppraiseLookup single vehicle appraisal against synthetic market comparables.
// Caller-supplied make/model/year win; decoded VIN values fill blanks only.
func (e *Engine) AppraiseLookup(ctx context.Context, req model.LookupRequest) (*model.LookupResult, error) {
	year := e.CurrentYear()
	out := &model.LookupResult{}

	makeName := strings.TrimSpace(req.Make)
	modelName := strings.TrimSpace(req.Model)
	vehicleYear := req.Year
	vinText := strings.TrimSpace(req.VIN)

	if vinText != "" && e.vin != nil {
		decoded, err := e.vin.Decode(ctx, vinText)
		if err != nil {
			log.Printf("[LOOKUP] VIN %s not decoded: %v", vinText, err)
			out.DecodeErr = err.Error()
		} else {
			out.Decoded = &decoded
			vinText = decoded.VIN
			if makeName == "" && decoded.Make != vin.UnknownMake {
				makeName = decoded.Make
			}
			if modelName == "" {
				modelName = decoded.Model
			}
			if vehicleYear == 0 {
				vehicleYear = decoded.ModelYear
			}
		}
	}
	if makeName == "" || modelName == "" {
		return out, ErrMakeModelRequired
	}
	if vehicleYear == 0 {
		vehicleYear = year
	}

	radius := req.RadiusMiles
	if radius == 0 {
		radius = DefaultRadiusMiles
	}
	listings, err := e.market.Comparables(ctx, model.MarketQuery{
		VIN:         vinText,
		Make:        makeName,
		Model:       modelName,
		Year:        vehicleYear,
		Mileage:     req.Mileage,
		RadiusMiles: radius,
	})
	if err != nil {
		return out, fmt.Errorf("market comparables: %w", err)
	}
	out.Market = market.Summarize(listings)

	snap := e.store.Snapshot()
	cfg := snap.Config
	turnDays, source := turnrate.NewResolver(snap, e.defaults).Resolve(makeName, modelName)

	out.Vehicle = model.VehicleAppraisalRequest{
		VIN:     vinText,
		Make:    makeName,
		Model:   modelName,
		Year:    vehicleYear,
		Mileage: req.Mileage,
		Price:   out.Market.AvgPrice,
	}
	out.Appraisal = Appraise(Inputs{
		Vehicle:        out.Vehicle,
		ReferenceMiles: out.Market.MedianMileage,
		AppraisalPrice: req.AppraisalPrice,
		CurrentYear:    year,
		Config:         cfg,
		TurnDays:       turnDays,
		TurnSource:     source,
	})
	out.Banner = ClassifyDecisionBanner(cfg.MarginTarget(), turnDays)
	out.Ceiling = Breakdown(out.Appraisal.AdjustedRetail, cfg)

	if req.AppraisalPrice != nil {
		room := Room(out.Appraisal.MaxBuy, *req.AppraisalPrice)
		out.Room = &room
		out.Status = BudgetStatusFor(room)
	}

	metrics.Appraisals.WithLabelValues("lookup", string(out.Appraisal.Priority)).Inc()
	return out, nil
}
