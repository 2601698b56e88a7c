package portfolio

import (
	"math"
	"reflect"
	"testing"

	"github.com/sumeetk/foliox/internal/models"
)

func holding(symbol, assetType string, qty int, price float64) models.Holding {
	return models.Holding{
		Symbol:       symbol,
		Type:         assetType,
		Quantity:     qty,
		BuyPrice:     price,
		CurrentPrice: price,
	}
}

func TestAggregateEmptyPortfolio(t *testing.T) {
	summary := Aggregate(nil)

	if summary.TotalValue != 0 {
		t.Errorf("Expected total value 0, got %f", summary.TotalValue)
	}
	if len(summary.BySymbol) != 0 {
		t.Errorf("Expected no symbol allocations, got %d", len(summary.BySymbol))
	}
	if len(summary.ByType) != 0 {
		t.Errorf("Expected no type allocations, got %d", len(summary.ByType))
	}
	if summary.DiversificationScore != 0 {
		t.Errorf("Expected diversification score 0, got %d", summary.DiversificationScore)
	}
}

func TestAggregateTotalValue(t *testing.T) {
	holdings := []models.Holding{
		holding("AAPL", "STOCK", 10, 100), // 1000
		holding("BTC", "CRYPTO", 2, 500),  // 1000
	}

	summary := Aggregate(holdings)

	if summary.TotalValue != 2000 {
		t.Errorf("Expected total value 2000, got %f", summary.TotalValue)
	}
}

func TestAggregateSingleTypeScoreIsZero(t *testing.T) {
	holdings := []models.Holding{
		holding("AAPL", "STOCK", 10, 100),
		holding("GOOG", "STOCK", 5, 200),
	}

	summary := Aggregate(holdings)

	if summary.DiversificationScore != 0 {
		t.Errorf("Single asset type must score 0, got %d", summary.DiversificationScore)
	}
	if len(summary.ByType) != 1 || summary.ByType[0].Label != "STOCK" {
		t.Errorf("Expected one STOCK type entry, got %v", summary.ByType)
	}
	if summary.ByType[0].Percent != 100 {
		t.Errorf("Single type must hold 100%%, got %d", summary.ByType[0].Percent)
	}
}

func TestAggregateTwoEqualTypesScoreIsHundred(t *testing.T) {
	holdings := []models.Holding{
		holding("AAPL", "STOCK", 5, 100),
		holding("BTC", "CRYPTO", 5, 100),
	}

	summary := Aggregate(holdings)

	if summary.DiversificationScore != 100 {
		t.Errorf("Two equal-quantity types must score 100, got %d", summary.DiversificationScore)
	}
	for _, e := range summary.ByType {
		if e.Percent != 50 {
			t.Errorf("Expected 50%% per type, got %s=%d", e.Label, e.Percent)
		}
	}
}

func TestAggregateLogWeightedSymbolShares(t *testing.T) {
	// Values 100 vs 10000. A linear split would be ~1/99; log weighting
	// compresses it to ln(101)/ln(10001) ≈ 33/67.
	holdings := []models.Holding{
		holding("AAPL", "STOCK", 1, 100),
		holding("GOOG", "STOCK", 1, 10000),
	}

	summary := Aggregate(holdings)

	shares := map[string]int{}
	for _, e := range summary.BySymbol {
		shares[e.Label] = e.Percent
	}

	if shares["AAPL"] != 33 {
		t.Errorf("Expected AAPL at 33%%, got %d", shares["AAPL"])
	}
	if shares["GOOG"] != 67 {
		t.Errorf("Expected GOOG at 67%%, got %d", shares["GOOG"])
	}
}

func TestAggregateZeroQuantityKeptAtZeroPercent(t *testing.T) {
	holdings := []models.Holding{
		holding("AAPL", "STOCK", 10, 100),
		holding("GOOG", "STOCK", 0, 500),
	}

	summary := Aggregate(holdings)

	if len(summary.BySymbol) != 2 {
		t.Fatalf("Zero-quantity holding must keep its allocation entry, got %d entries", len(summary.BySymbol))
	}
	for _, e := range summary.BySymbol {
		if e.Label == "GOOG" && e.Percent != 0 {
			t.Errorf("Zero-value holding must carry 0%%, got %d", e.Percent)
		}
	}
	if summary.TotalValue != 1000 {
		t.Errorf("Expected total value 1000, got %f", summary.TotalValue)
	}
}

func TestAggregateAllZeroValuesNoNaN(t *testing.T) {
	holdings := []models.Holding{
		holding("AAPL", "STOCK", 0, 100),
		holding("GOOG", "STOCK", 0, 200),
	}

	summary := Aggregate(holdings)

	for _, e := range summary.BySymbol {
		if e.Percent != 0 {
			t.Errorf("Zero weight sum must yield 0%% shares, got %s=%d", e.Label, e.Percent)
		}
	}
	for _, e := range summary.ByType {
		if e.Percent != 0 {
			t.Errorf("Zero total quantity must yield 0%% type shares, got %s=%d", e.Label, e.Percent)
		}
	}
	if summary.DiversificationScore != 0 {
		t.Errorf("Expected score 0, got %d", summary.DiversificationScore)
	}
}

func TestAggregateSkipsCorruptHoldings(t *testing.T) {
	holdings := []models.Holding{
		holding("AAPL", "STOCK", 10, 100),
		holding("BAD1", "STOCK", -5, 100),
		holding("BAD2", "STOCK", 10, math.NaN()),
		holding("BAD3", "STOCK", 10, math.Inf(1)),
		holding("BAD4", "STOCK", 10, -50),
	}

	summary := Aggregate(holdings)

	if summary.TotalValue != 1000 {
		t.Errorf("Corrupt holdings must not contribute, expected 1000, got %f", summary.TotalValue)
	}
	if len(summary.BySymbol) != 1 || summary.BySymbol[0].Label != "AAPL" {
		t.Errorf("Corrupt holdings must not appear in allocations, got %v", summary.BySymbol)
	}
}

func TestAggregateDefaultsTypeToStock(t *testing.T) {
	holdings := []models.Holding{
		holding("AAPL", "", 10, 100),
		holding("MSFT", "STOCK", 10, 100),
	}

	summary := Aggregate(holdings)

	if len(summary.ByType) != 1 {
		t.Fatalf("Untyped holdings must group under STOCK, got %v", summary.ByType)
	}
	if summary.ByType[0].Label != models.DefaultAssetType {
		t.Errorf("Expected type %s, got %s", models.DefaultAssetType, summary.ByType[0].Label)
	}
}

func TestAggregateTypeSharesAreQuantityBased(t *testing.T) {
	// CRYPTO is 10x more valuable but holds a quarter of the units.
	holdings := []models.Holding{
		holding("AAPL", "STOCK", 30, 10),
		holding("BTC", "CRYPTO", 10, 100),
	}

	summary := Aggregate(holdings)

	shares := map[string]int{}
	for _, e := range summary.ByType {
		shares[e.Label] = e.Percent
	}

	if shares["STOCK"] != 75 || shares["CRYPTO"] != 25 {
		t.Errorf("Type shares must follow quantity, not value: got %v", shares)
	}
}

func TestAggregateIsDeterministic(t *testing.T) {
	holdings := []models.Holding{
		holding("AAPL", "STOCK", 10, 100),
		holding("BTC", "CRYPTO", 3, 400),
		holding("GLD", "COMMODITY", 7, 50),
	}

	first := Aggregate(holdings)
	second := Aggregate(holdings)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Aggregation must be deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestDiversificationScoreClamped(t *testing.T) {
	// Rounded percents can push entropy slightly past the normalizer.
	score := diversificationScore([]models.AllocationEntry{
		{Label: "A", Percent: 33},
		{Label: "B", Percent: 33},
		{Label: "C", Percent: 34},
	})

	if score < 0 || score > 100 {
		t.Errorf("Score must stay within [0,100], got %d", score)
	}
	if score != 100 {
		t.Errorf("Near-uniform three-way split should round to 100, got %d", score)
	}
}
