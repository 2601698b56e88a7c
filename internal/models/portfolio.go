// Package models defines data structures for FolioX
package models

import "time"

// DefaultAssetType is assumed when a holding or catalogue entry carries no type.
const DefaultAssetType = "STOCK"

// Holding represents one portfolio position as reported by the portfolio ledger.
type Holding struct {
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name,omitempty"`
	Type         string    `json:"type,omitempty"` // e.g. "STOCK", "CRYPTO"; empty means STOCK
	Quantity     int       `json:"quantity"`
	BuyPrice     float64   `json:"buyPrice"`
	CurrentPrice float64   `json:"currentPrice"`
	ProfitLoss   float64   `json:"profitLoss,omitempty"`
	High         float64   `json:"high,omitempty"`
	Low          float64   `json:"low,omitempty"`
	Volume       int64     `json:"volume,omitempty"`
	BuyTimestamp time.Time `json:"buyTimestamp,omitempty"`
}

// AssetType returns the holding's category, defaulting to STOCK when absent.
func (h Holding) AssetType() string {
	if h.Type == "" {
		return DefaultAssetType
	}
	return h.Type
}

// MarketValue returns currentPrice × quantity.
func (h Holding) MarketValue() float64 {
	return h.CurrentPrice * float64(h.Quantity)
}

// AllocationEntry is one slice of an allocation breakdown.
// Percent is an integer in [0, 100]; entries across a breakdown are rounded
// independently and are not corrected to sum to exactly 100.
type AllocationEntry struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
}

// PortfolioSummary holds the display-ready numbers derived from one holdings snapshot.
// Recomputed in full on every refresh; never persisted.
type PortfolioSummary struct {
	TotalValue           float64           `json:"totalValue"`
	BySymbol             []AllocationEntry `json:"bySymbol"`
	ByType               []AllocationEntry `json:"byType"`
	DiversificationScore int               `json:"diversificationScore"`
}

// GrowthPoint is one point of the reconstructed total-portfolio-value series.
type GrowthPoint struct {
	Date        time.Time `json:"date"`
	PeriodLabel string    `json:"periodLabel"` // short human label, e.g. "Jan 2026"
	TotalValue  float64   `json:"totalValue"`
}

// Balance is the available cash balance as reported by the balance ledger.
type Balance struct {
	Amount      float64   `json:"amount"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// DashboardSnapshot is the full aggregated view served to the presentation layer.
type DashboardSnapshot struct {
	Holdings  []Holding        `json:"holdings"`
	Summary   PortfolioSummary `json:"summary"`
	Growth    []GrowthPoint    `json:"growth"`
	Balance   *Balance         `json:"balance,omitempty"`
	FetchedAt time.Time        `json:"fetchedAt"`
}
