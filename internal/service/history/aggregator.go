package history

import (
	"errors"
	"sort"
	"strings"

	"profitlogic/internal/model"
)

// MaxDaysToSell turn times above this are treated as data errors
const MaxDaysToSell = 365

// ErrNoRetailDeals the log parsed but nothing survived filtering
var ErrNoRetailDeals = errors.New("no valid retail deals found in the file")

// FilterStats why records were dropped
type FilterStats struct {
	Input        int `json:"input"`
	NonRetail    int `json:"nonRetail"`
	MissingDates int `json:"missingDates"`
	OutOfRange   int `json:"outOfRange"` // days to sell outside 0..365
	Kept         int `json:"kept"`
}

type groupSums struct {
	summary  model.ModelSummary
	turnSum  float64
	frontSum float64
	totalSum float64
}

// Aggregate filters sale records to valid retail deals and summarizes them per make/model.
// Records are grouped by normalized key; the first spelling seen is kept for display.
func Aggregate(records []model.SaleRecord) (*model.SalesSummary, FilterStats, error) {
	stats := FilterStats{Input: len(records)}
	groups := make(map[model.ModelKey]*groupSums)
	summary := &model.SalesSummary{}

	var turnSum float64
	for _, r := range records {
		if !strings.EqualFold(strings.TrimSpace(r.DealType), model.DealTypeRetail) {
			stats.NonRetail++
			continue
		}
		if r.SoldDate.IsZero() || r.ReceivedDate.IsZero() {
			stats.MissingDates++
			continue
		}
		days := r.DaysToSell()
		if days < 0 || days > MaxDaysToSell {
			stats.OutOfRange++
			continue
		}
		stats.Kept++

		key := model.NewModelKey(r.Make, r.Model)
		g, ok := groups[key]
		if !ok {
			g = &groupSums{
				summary: model.ModelSummary{
					Key:   key,
					Make:  strings.TrimSpace(r.Make),
					Model: strings.TrimSpace(r.Model),
				},
			}
			groups[key] = g
		}
		g.summary.UnitsSold++
		g.turnSum += float64(days)
		g.frontSum += r.FrontGross
		g.totalSum += r.TotalGross

		summary.TotalSales++
		summary.TotalFrontGross += r.FrontGross
		summary.TotalGross += r.TotalGross
		turnSum += float64(days)
	}

	if summary.TotalSales == 0 {
		return nil, stats, ErrNoRetailDeals
	}

	n := float64(summary.TotalSales)
	summary.AvgTurn = turnSum / n
	summary.AvgFrontGross = summary.TotalFrontGross / n

	summary.Breakdown = make([]model.ModelSummary, 0, len(groups))
	for _, g := range groups {
		units := float64(g.summary.UnitsSold)
		g.summary.AvgTurn = g.turnSum / units
		g.summary.AvgFrontGross = g.frontSum / units
		g.summary.AvgTotalGross = g.totalSum / units
		summary.Breakdown = append(summary.Breakdown, g.summary)
	}
	sort.Slice(summary.Breakdown, func(i, j int) bool {
		a, b := summary.Breakdown[i], summary.Breakdown[j]
		if a.Make != b.Make {
			return a.Make < b.Make
		}
		return a.Model < b.Model
	})

	return summary, stats, nil
}
