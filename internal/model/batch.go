package model

// BatchRow one vehicle of a batch appraisal upload
type BatchRow struct {
	VIN       string  `json:"vin"`
	Year      int     `json:"year"`
	Make      string  `json:"make"`
	Model     string  `json:"model"`
	Mileage   int     `json:"mileage" validate:"gte=0"`
	Retail    float64 `json:"retail" validate:"gte=0"`
	Appraisal float64 `json:"appraisal" validate:"gte=0"`
}

// BatchResult priced batch row
type BatchResult struct {
	Row       BatchRow        `json:"row"`
	Appraisal AppraisalResult `json:"appraisal"`
	Room      float64         `json:"room"`
	TotalDeal float64         `json:"totalDeal"` // front gross plus below the line
	Status    BudgetStatus    `json:"status"`
}

// BatchSummary totals computed after every row is priced
type BatchSummary struct {
	VehicleCount      int     `json:"vehicleCount"`
	AvgTurn           float64 `json:"avgTurn"`
	UnderBudget       int     `json:"underBudget"`
	OverBudget        int     `json:"overBudget"`
	OverThreshold     int     `json:"overThreshold"` // 100K+ alerts
	ValueAdded        float64 `json:"valueAdded"`
	ValueDeducted     float64 `json:"valueDeducted"`
	NetMileageImpact  float64 `json:"netMileageImpact"`
	TotalFrontGross   float64 `json:"totalFrontGross"`
	AvgFrontMarginPct float64 `json:"avgFrontMarginPct"`
}

// BatchReport batch appraisal output
type BatchReport struct {
	ID      string        `json:"id"`
	Config  PricingConfig `json:"config"`
	Results []BatchResult `json:"results"`
	Summary BatchSummary  `json:"summary"`
}

// SampleBatchRows built-in sample batch
func SampleBatchRows() []BatchRow {
	return []BatchRow{
		{VIN: "1G1AL58FX7", Year: 2021, Make: "Chevrolet", Model: "Equinox", Mileage: 45000, Retail: 22000, Appraisal: 16000},
		{VIN: "JHMCR2F39C", Year: 2019, Make: "Honda", Model: "Accord", Mileage: 98000, Retail: 18500, Appraisal: 13000},
		{VIN: "4T1B11HK5M", Year: 2022, Make: "Toyota", Model: "Camry", Mileage: 25000, Retail: 26000, Appraisal: 20000},
		{VIN: "5XYPK4A63C", Year: 2020, Make: "Kia", Model: "Sportage", Mileage: 105000, Retail: 15000, Appraisal: 11000},
		{VIN: "KM8R54AP1L", Year: 2023, Make: "Hyundai", Model: "Tucson", Mileage: 12000, Retail: 29000, Appraisal: 24000},
	}
}
