package model

import (
	"math"
	"time"
)

// DealTypeRetail the only deal type counted toward turn and gross averages
const DealTypeRetail = "RETAIL"

// SaleRecord one row of a dealer sales log
type SaleRecord struct {
	SoldDate     time.Time `json:"soldDate"`
	ReceivedDate time.Time `json:"receivedDate"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	DealType     string    `json:"dealType"`
	FrontGross   float64   `json:"frontGross"`
	TotalGross   float64   `json:"totalGross"`
	SoldPrice    float64   `json:"soldPrice"`
	FIGross      float64   `json:"fiGross,omitempty"`   // F&I products gross, optional column
	BackGross    float64   `json:"backGross,omitempty"` // optional column
}

// DaysToSell whole days between receipt and sale, floored
func (r SaleRecord) DaysToSell() int {
	return int(math.Floor(r.SoldDate.Sub(r.ReceivedDate).Hours() / 24))
}

// ModelSummary per make/model aggregate
type ModelSummary struct {
	Key           ModelKey `json:"-"`
	Make          string   `json:"make"`
	Model         string   `json:"model"`
	UnitsSold     int      `json:"unitsSold"`
	AvgTurn       float64  `json:"avgTurn"`
	AvgFrontGross float64  `json:"avgFrontGross"`
	AvgTotalGross float64  `json:"avgTotalGross"`
}

// SalesSummary dealer performance summary for an uploaded log
type SalesSummary struct {
	TotalSales      int            `json:"totalSales"`
	TotalFrontGross float64        `json:"totalFrontGross"`
	TotalGross      float64        `json:"totalGross"`
	AvgTurn         float64        `json:"avgTurn"`
	AvgFrontGross   float64        `json:"avgFrontGross"`
	Breakdown       []ModelSummary `json:"breakdown"`
}

// TurnTable builds the dealer turn-days table from the breakdown
func (s *SalesSummary) TurnTable() map[ModelKey]float64 {
	out := make(map[ModelKey]float64, len(s.Breakdown))
	for _, m := range s.Breakdown {
		out[m.Key] = m.AvgTurn
	}
	return out
}
