package market

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"sort"

	"profitlogic/internal/model"
	"profitlogic/internal/service/turnrate"
)

// Source comparable listings provider
type Source interface {
	Comparables(ctx context.Context, q model.MarketQuery) ([]model.Listing, error)
}

const (
	defaultListingCount = 10
	minListingPrice     = 5000
	minListingMileage   = 1000
	priceSpread         = 3000
	mileageSpread       = 20000
)

var cities = []string{"Local City", "Neighboring Town", "Metro Area"}

// Synthetic deterministic placeholder listings derived from the MSRP table.
// The same query always yields the same listings.
type Synthetic struct {
	count       int
	currentYear func() int
}

// NewSynthetic creates a synthetic source producing count listings per query
func NewSynthetic(count int, currentYear func() int) *Synthetic {
	if count <= 0 {
		count = defaultListingCount
	}
	return &Synthetic{count: count, currentYear: currentYear}
}

// BasePrice depreciated MSRP for the query's make/model/year
func (s *Synthetic) BasePrice(q model.MarketQuery) float64 {
	age := s.currentYear() - q.Year
	if age < 0 {
		age = 0
	}
	msrp := turnrate.BaseMSRP(model.NewModelKey(q.Make, q.Model))
	return msrp * math.Pow(0.85, float64(age))
}

// Comparables implements Source
func (s *Synthetic) Comparables(_ context.Context, q model.MarketQuery) ([]model.Listing, error) {
	rng := rand.New(rand.NewSource(seedFor(q)))
	base := s.BasePrice(q)

	listings := make([]model.Listing, 0, s.count)
	for i := 0; i < s.count; i++ {
		listings = append(listings, model.Listing{
			Dealer:    fmt.Sprintf("Competitor %d", i+1),
			City:      cities[rng.Intn(len(cities))],
			Price:     math.Max(minListingPrice, base+float64(rng.Intn(2*priceSpread+1)-priceSpread)),
			Mileage:   max(minListingMileage, q.Mileage+rng.Intn(2*mileageSpread+1)-mileageSpread),
			DOM:       5 + rng.Intn(96),
			Certified: rng.Intn(2) == 1,
		})
	}
	return listings, nil
}

func seedFor(q model.MarketQuery) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s%s%s%d", q.VIN, q.Make, q.Model, q.Year)
	return int64(h.Sum64())
}

// Summarize aggregates listings into the figures the pricing core uses
func Summarize(listings []model.Listing) model.MarketSnapshot {
	snap := model.MarketSnapshot{
		ListingCount: len(listings),
		Listings:     listings,
	}
	if len(listings) == 0 {
		return snap
	}

	var priceSum, domSum float64
	miles := make([]int, 0, len(listings))
	snap.MinPrice = listings[0].Price
	snap.MaxPrice = listings[0].Price
	for _, l := range listings {
		priceSum += l.Price
		domSum += float64(l.DOM)
		miles = append(miles, l.Mileage)
		snap.MinPrice = math.Min(snap.MinPrice, l.Price)
		snap.MaxPrice = math.Max(snap.MaxPrice, l.Price)
	}

	n := float64(len(listings))
	snap.AvgPrice = priceSum / n
	snap.AvgDOM = domSum / n
	snap.MedianMileage = median(miles)
	return snap
}

func median(values []int) float64 {
	sort.Ints(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		return float64(values[mid-1]+values[mid]) / 2
	}
	return float64(values[mid])
}
