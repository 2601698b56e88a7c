// Package portfolio implements the FolioX aggregation pipeline: derived
// metrics over a holdings snapshot and the reconstructed growth series.
package portfolio

import (
	"math"

	"github.com/sumeetk/foliox/internal/models"
)

// Aggregate computes display-ready metrics from a holdings snapshot.
//
// Input hygiene: holdings with a negative or non-finite quantity or price are
// skipped entirely: they contribute to no sum and produce no allocation
// entry. Zero-quantity rows are kept (they carry a 0% share). All degenerate
// cases resolve to defined numeric outputs, never NaN.
//
// Pure function: identical input always yields identical output.
func Aggregate(holdings []models.Holding) models.PortfolioSummary {
	valid := make([]models.Holding, 0, len(holdings))
	for _, h := range holdings {
		if usable(h) {
			valid = append(valid, h)
		}
	}

	var totalValue float64
	weights := make([]float64, len(valid))
	var weightSum float64
	for i, h := range valid {
		v := h.MarketValue()
		totalValue += v

		// Log-weighted share: ln(value+1) compresses the visual dominance of
		// very large positions relative to small ones. Not a linear share.
		w := math.Log(v + 1)
		if w < 0 {
			w = 0
		}
		weights[i] = w
		weightSum += w
	}

	bySymbol := make([]models.AllocationEntry, len(valid))
	for i, h := range valid {
		percent := 0
		if weightSum > 0 {
			percent = roundPercent(100 * weights[i] / weightSum)
		}
		bySymbol[i] = models.AllocationEntry{Label: h.Symbol, Percent: percent}
	}

	byType := allocateByType(valid)

	return models.PortfolioSummary{
		TotalValue:           totalValue,
		BySymbol:             bySymbol,
		ByType:               byType,
		DiversificationScore: diversificationScore(byType),
	}
}

// allocateByType computes the linear quantity share per asset type, grouped
// in first-seen order. Type defaults to STOCK when absent.
func allocateByType(holdings []models.Holding) []models.AllocationEntry {
	order := make([]string, 0)
	qtyByType := make(map[string]int)
	totalQty := 0

	for _, h := range holdings {
		t := h.AssetType()
		if _, seen := qtyByType[t]; !seen {
			order = append(order, t)
		}
		qtyByType[t] += h.Quantity
		totalQty += h.Quantity
	}

	entries := make([]models.AllocationEntry, len(order))
	for i, t := range order {
		percent := 0
		if totalQty > 0 {
			percent = roundPercent(100 * float64(qtyByType[t]) / float64(totalQty))
		}
		entries[i] = models.AllocationEntry{Label: t, Percent: percent}
	}
	return entries
}

// diversificationScore computes normalized Shannon entropy (0–100) over the
// by-type allocation, reading each percent as a probability. With zero or one
// type present the normalizer ln(K) is undefined and the score is 0.
func diversificationScore(byType []models.AllocationEntry) int {
	k := len(byType)
	if k <= 1 {
		return 0
	}

	var entropy float64
	for _, e := range byType {
		p := float64(e.Percent) / 100
		if p > 0 {
			entropy -= p * math.Log(p)
		}
	}

	score := roundPercent(100 * entropy / math.Log(float64(k)))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// roundPercent rounds to the nearest integer, half away from zero.
func roundPercent(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}

// usable reports whether a holding may contribute to aggregation sums.
func usable(h models.Holding) bool {
	if h.Quantity < 0 {
		return false
	}
	if h.CurrentPrice < 0 || math.IsNaN(h.CurrentPrice) || math.IsInf(h.CurrentPrice, 0) {
		return false
	}
	if h.BuyPrice < 0 || math.IsNaN(h.BuyPrice) || math.IsInf(h.BuyPrice, 0) {
		return false
	}
	return true
}
