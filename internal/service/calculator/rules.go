package calculator

import "profitlogic/internal/model"

const (
	mileageCliff     = 100000
	mileageNearCliff = 95000
)

// ClassifyPriority acquisition priority from turn speed and front margin.
// HIGH is checked before LOW; anything else is MEDIUM.
func ClassifyPriority(turnDays, frontMarginPct float64) model.Priority {
	if turnDays <= 30 && frontMarginPct >= 0.12 {
		return model.PriorityHigh
	}
	if turnDays >= 60 && frontMarginPct < 0.08 {
		return model.PriorityLow
	}
	return model.PriorityMedium
}

// ClassifyMileageAlert flags vehicles at or near the 100K cliff
func ClassifyMileageAlert(mileage int) model.MileageAlert {
	switch {
	case mileage >= mileageCliff:
		return model.MileageAlertOverThreshold
	case mileage >= mileageNearCliff:
		return model.MileageAlertNearThreshold
	default:
		return model.MileageAlertNone
	}
}

// ClassifyDecisionBanner buy recommendation for a single lookup
func ClassifyDecisionBanner(marginTarget, turnDays float64) model.DecisionBanner {
	if marginTarget >= 0.12 && turnDays <= 45 {
		return model.BannerAggressive
	}
	if marginTarget < 0.08 || turnDays > 60 {
		return model.BannerPass
	}
	return model.BannerCautious
}
