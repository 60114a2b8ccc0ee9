package calculator

import "profitlogic/internal/model"

// MaxBuy ceiling bid that still meets the margin target after costs
func MaxBuy(adjustedRetail float64, cfg model.PricingConfig) float64 {
	return adjustedRetail*(1-cfg.MarginTarget()) - cfg.Recon() - cfg.BuyFees
}

// FrontGross profit before F&I for a known appraisal price
func FrontGross(adjustedRetail, appraisalPrice float64, cfg model.PricingConfig) float64 {
	return adjustedRetail - appraisalPrice - cfg.Recon() - cfg.BuyFees
}

// FrontMarginPct front gross over adjusted retail; 0 when retail is not positive
func FrontMarginPct(frontGross, adjustedRetail float64) float64 {
	if adjustedRetail <= 0 {
		return 0
	}
	return frontGross / adjustedRetail
}

// Room headroom between max buy and the appraisal price
func Room(maxBuy, appraisalPrice float64) float64 {
	return maxBuy - appraisalPrice
}

// BudgetStatusFor classifies room
func BudgetStatusFor(room float64) model.BudgetStatus {
	if room >= 0 {
		return model.UnderBudget
	}
	return model.OverBudget
}

// Breakdown itemizes the max buy derivation
func Breakdown(adjustedRetail float64, cfg model.PricingConfig) model.CeilingBreakdown {
	return model.CeilingBreakdown{
		AdjustedRetail:  adjustedRetail,
		MarginTargetPct: cfg.MarginTargetPct,
		MarginDollars:   adjustedRetail * cfg.MarginTarget(),
		ReconCost:       cfg.Recon(),
		BuyFees:         cfg.BuyFees,
		MaxBuy:          MaxBuy(adjustedRetail, cfg),
	}
}
