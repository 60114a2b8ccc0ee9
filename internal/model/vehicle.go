package model

import (
	"regexp"
	"strings"
)

// ModelKey normalized make/model lookup key
type ModelKey struct {
	Make  string
	Model string
}

var keySpaceRe = regexp.MustCompile(`\s+`)

// KeySeparator joins the make and model parts of a rendered key
const KeySeparator = "_"

// NewModelKey builds a key from raw make/model text.
// Both parts are trimmed, lowercased and inner whitespace runs become KeySeparator.
func NewModelKey(makeName, modelName string) ModelKey {
	return ModelKey{
		Make:  normalizeKeyPart(makeName),
		Model: normalizeKeyPart(modelName),
	}
}

func normalizeKeyPart(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return keySpaceRe.ReplaceAllString(s, KeySeparator)
}

// String renders the key as make_model
func (k ModelKey) String() string {
	return k.Make + KeySeparator + k.Model
}

// VehicleAppraisalRequest vehicle under evaluation
type VehicleAppraisalRequest struct {
	VIN     string  `json:"vin,omitempty"`
	Make    string  `json:"make"`
	Model   string  `json:"model"`
	Year    int     `json:"year"`
	Mileage int     `json:"mileage"`
	Price   float64 `json:"price"` // market or retail price
}

// Priority acquisition priority tier
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// MileageAlert high-mileage risk flag
type MileageAlert string

const (
	MileageAlertNone          MileageAlert = "NONE"
	MileageAlertNearThreshold MileageAlert = "NEAR_THRESHOLD"
	MileageAlertOverThreshold MileageAlert = "OVER_THRESHOLD"
)

// DecisionBanner single-lookup buy recommendation
type DecisionBanner string

const (
	BannerAggressive DecisionBanner = "AGGRESSIVE"
	BannerCautious   DecisionBanner = "CAUTIOUS"
	BannerPass       DecisionBanner = "PASS"
)

// BudgetStatus appraisal offer relative to max buy
type BudgetStatus string

const (
	UnderBudget BudgetStatus = "UNDER_BUDGET"
	OverBudget  BudgetStatus = "OVER_BUDGET"
)

// TurnSource provenance of a turn-days value
type TurnSource string

const (
	SourceDealerHistorical TurnSource = "DEALER_HISTORICAL"
	SourceIndustryDefault  TurnSource = "INDUSTRY_DEFAULT"
)

// AppraisalResult derived pricing outcome for one vehicle
type AppraisalResult struct {
	CPMUsed        float64      `json:"cpmUsed"`
	ReferenceMiles float64      `json:"referenceMiles"` // market median or age-expected mileage
	MileageImpact  float64      `json:"mileageImpact"`  // positive adds value
	AdjustedRetail float64      `json:"adjustedRetail"`
	MaxBuy         float64      `json:"maxBuy"`
	FrontGross     float64      `json:"frontGross"`
	FrontMarginPct float64      `json:"frontMarginPct"`
	TurnDays       float64      `json:"turnDays"`
	TurnDataSource TurnSource   `json:"turnDataSource"`
	Priority       Priority     `json:"priority"`
	MileageAlert   MileageAlert `json:"mileageAlert"`
}
