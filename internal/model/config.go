package model

// CPMMode how the cost-per-mile base rate is chosen
type CPMMode string

const (
	CPMModeAuto   CPMMode = "AUTO"   // tiered by price
	CPMModeManual CPMMode = "MANUAL" // fixed rate from ManualCPM
)

// DefaultBuyFees fixed acquisition fee constant
const DefaultBuyFees = 865

// MarginTargetOptions allowed margin targets, in percent
var MarginTargetOptions = []int{5, 8, 10, 12, 14, 16, 18}

// ReconCostOptions allowed reconditioning costs, in dollars
var ReconCostOptions = []int{1000, 1500, 2000}

// PricingConfig session pricing configuration
type PricingConfig struct {
	MarginTargetPct int     `json:"marginTargetPct" toml:"margin_target_pct" validate:"oneof=5 8 10 12 14 16 18"`
	ReconCost       int     `json:"reconCost" toml:"recon_cost" validate:"oneof=1000 1500 2000"`
	BuyFees         float64 `json:"buyFees" toml:"-"`
	BelowLine       int     `json:"belowLine" toml:"below_line" validate:"gte=0,lte=5000"`
	CPMMode         CPMMode `json:"cpmMode" toml:"cpm_mode" validate:"oneof=AUTO MANUAL"`
	ManualCPM       float64 `json:"manualCpm" toml:"manual_cpm" validate:"gte=0.05,lte=0.5"`
}

// DefaultPricingConfig session defaults
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		MarginTargetPct: 12,
		ReconCost:       1500,
		BuyFees:         DefaultBuyFees,
		BelowLine:       1200,
		CPMMode:         CPMModeAuto,
		ManualCPM:       0.15,
	}
}

// MarginTarget margin target as a fraction
func (c PricingConfig) MarginTarget() float64 {
	return float64(c.MarginTargetPct) / 100
}

// Recon reconditioning cost as a float
func (c PricingConfig) Recon() float64 {
	return float64(c.ReconCost)
}

// BelowLineAmount below-the-line income as a float
func (c PricingConfig) BelowLineAmount() float64 {
	return float64(c.BelowLine)
}

// PricingConfigPatch partial update; nil fields are left unchanged
type PricingConfigPatch struct {
	MarginTargetPct *int     `json:"marginTargetPct"`
	ReconCost       *int     `json:"reconCost"`
	BelowLine       *int     `json:"belowLine"`
	CPMMode         *CPMMode `json:"cpmMode"`
	ManualCPM       *float64 `json:"manualCpm"`
}

// Apply returns a copy of c with the patch applied
func (p PricingConfigPatch) Apply(c PricingConfig) PricingConfig {
	if p.MarginTargetPct != nil {
		c.MarginTargetPct = *p.MarginTargetPct
	}
	if p.ReconCost != nil {
		c.ReconCost = *p.ReconCost
	}
	if p.BelowLine != nil {
		c.BelowLine = *p.BelowLine
	}
	if p.CPMMode != nil {
		c.CPMMode = *p.CPMMode
	}
	if p.ManualCPM != nil {
		c.ManualCPM = *p.ManualCPM
	}
	return c
}
