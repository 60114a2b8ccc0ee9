package calculator

import (
	"math"

	"profitlogic/internal/model"
)

const (
	// CPMFloor lowest cost-per-mile ever returned
	CPMFloor = 0.03
	// CPMAgeDecay yearly decay applied to the base rate
	CPMAgeDecay = 0.85
	// MilesPerYear expected annual mileage for the batch reference
	MilesPerYear = 12000
)

// BaseCPM price-tiered cost-per-mile; lower tier bounds are inclusive
func BaseCPM(price float64) float64 {
	switch {
	case price < 15000:
		return 0.10
	case price < 45000:
		return 0.15
	case price < 80000:
		return 0.20
	default:
		return 0.30
	}
}

// EstimateCPM depreciation rate per mile for a vehicle price and age
func EstimateCPM(price float64, vehicleYear, currentYear int, cfg model.PricingConfig) float64 {
	base := cfg.ManualCPM
	if cfg.CPMMode != model.CPMModeManual {
		base = BaseCPM(price)
	}

	age := currentYear - vehicleYear
	if age < 0 {
		age = 0
	}

	return math.Max(base*math.Pow(CPMAgeDecay, float64(age)), CPMFloor)
}

// ExpectedMileage age-based reference mileage; age is at least one year
func ExpectedMileage(vehicleYear, currentYear int) float64 {
	age := currentYear - vehicleYear
	if age < 1 {
		age = 1
	}
	return float64(age * MilesPerYear)
}

// MileageImpact signed retail adjustment.
// Positive when the vehicle has fewer miles than the reference.
func MileageImpact(referenceMileage, actualMileage, cpm float64) float64 {
	return (referenceMileage - actualMileage) * cpm
}

// AdjustedRetail base price plus mileage impact, no floor
func AdjustedRetail(basePrice, impact float64) float64 {
	return basePrice + impact
}
