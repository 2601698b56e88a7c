package models

import "time"

// HistoryPoint is one daily price sample for a single symbol from the
// market-data collaborator. Calendar-day granularity; arrival order is not
// guaranteed sorted.
type HistoryPoint struct {
	Symbol string    `json:"symbol"`
	Type   string    `json:"type,omitempty"`
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Quote is the latest market snapshot for a symbol.
type Quote struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Price     float64   `json:"price"`
	Volume    int64     `json:"volume"`
	Currency  string    `json:"currency"`
	Exchange  string    `json:"exchange"`
	Timestamp time.Time `json:"timestamp"`
}

// CatalogueAsset is one row of the asset catalogue.
type CatalogueAsset struct {
	Symbol      string    `json:"symbol"`
	Name        string    `json:"name"`
	Type        string    `json:"type,omitempty"`
	Open        float64   `json:"open"`
	High        float64   `json:"high"`
	Low         float64   `json:"low"`
	Close       float64   `json:"close"`
	Price       float64   `json:"price"`
	Volume      int64     `json:"volume"`
	Currency    string    `json:"currency,omitempty"`
	Exchange    string    `json:"exchange,omitempty"`
	LastUpdated time.Time `json:"lastUpdated,omitempty"`
}
