package model

// MarketQuery comparables search parameters
type MarketQuery struct {
	VIN         string `json:"vin"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
	Mileage     int    `json:"mileage"`
	RadiusMiles int    `json:"radiusMiles"`
}

// Listing one comparable listing
type Listing struct {
	Dealer    string  `json:"dealer"`
	City      string  `json:"city"`
	Price     float64 `json:"price"`
	Mileage   int     `json:"mileage"`
	DOM       int     `json:"dom"` // days on market
	Certified bool    `json:"certified"`
}

// MarketSnapshot aggregate of comparable listings
type MarketSnapshot struct {
	ListingCount  int       `json:"listingCount"`
	AvgPrice      float64   `json:"avgPrice"`
	MedianMileage float64   `json:"medianMileage"`
	AvgDOM        float64   `json:"avgDom"`
	MinPrice      float64   `json:"minPrice"`
	MaxPrice      float64   `json:"maxPrice"`
	Listings      []Listing `json:"listings"`
}

// DecodedVIN vehicle identity from a VIN decode
type DecodedVIN struct {
	VIN       string `json:"vin"`
	Make      string `json:"make"`
	Model     string `json:"model"`
	ModelYear int    `json:"modelYear"`
}

// LookupRequest single VIN appraisal input
type LookupRequest struct {
	VIN            string   `json:"vin"`
	Make           string   `json:"make"`
	Model          string   `json:"model"`
	Year           int      `json:"year"`
	Mileage        int      `json:"mileage" validate:"gte=0"`
	RadiusMiles    int      `json:"radiusMiles" validate:"omitempty,oneof=25 50 100 200"`
	AppraisalPrice *float64 `json:"appraisalPrice,omitempty" validate:"omitempty,gte=0"`
}

// CeilingBreakdown how max buy is derived from adjusted retail
type CeilingBreakdown struct {
	AdjustedRetail  float64 `json:"adjustedRetail"`
	MarginTargetPct int     `json:"marginTargetPct"`
	MarginDollars   float64 `json:"marginDollars"`
	ReconCost       float64 `json:"reconCost"`
	BuyFees         float64 `json:"buyFees"`
	MaxBuy          float64 `json:"maxBuy"`
}

// LookupResult single VIN appraisal output
type LookupResult struct {
	Vehicle   VehicleAppraisalRequest `json:"vehicle"`
	Decoded   *DecodedVIN             `json:"decoded,omitempty"`
	DecodeErr string                  `json:"decodeError,omitempty"`
	Market    MarketSnapshot          `json:"market"`
	Appraisal AppraisalResult         `json:"appraisal"`
	Banner    DecisionBanner          `json:"banner"`
	Ceiling   CeilingBreakdown        `json:"ceiling"`
	Room      *float64                `json:"room,omitempty"`
	Status    BudgetStatus            `json:"status,omitempty"`
}
