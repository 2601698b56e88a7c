package portfolio

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sumeetk/foliox/internal/models"
)

// stubLedger implements the ledger surface the service touches.
type stubLedger struct {
	getHoldings func(ctx context.Context) ([]models.Holding, error)
	getBalance  func(ctx context.Context) (*models.Balance, error)
}

func (s *stubLedger) GetHoldings(ctx context.Context) ([]models.Holding, error) {
	return s.getHoldings(ctx)
}

func (s *stubLedger) GetBalance(ctx context.Context) (*models.Balance, error) {
	if s.getBalance == nil {
		return &models.Balance{Amount: 0}, nil
	}
	return s.getBalance(ctx)
}

func (s *stubLedger) Buy(ctx context.Context, symbol string, quantity int) error  { return nil }
func (s *stubLedger) Sell(ctx context.Context, symbol string, quantity int) error { return nil }
func (s *stubLedger) SellAll(ctx context.Context, symbol string) error            { return nil }
func (s *stubLedger) AddBalance(ctx context.Context, amount float64) (*models.Balance, error) {
	return nil, nil
}
func (s *stubLedger) GetCatalogue(ctx context.Context) ([]models.CatalogueAsset, error) {
	return nil, nil
}
func (s *stubLedger) AddToCatalogue(ctx context.Context, symbol string) (*models.CatalogueAsset, error) {
	return nil, nil
}
func (s *stubLedger) RefreshCatalogueEntry(ctx context.Context, symbol string) error { return nil }
func (s *stubLedger) SearchCatalogue(ctx context.Context, query string) ([]models.CatalogueAsset, error) {
	return nil, nil
}

// stubMarket serves canned histories.
type stubMarket struct {
	getHistory func(ctx context.Context, symbol string) ([]models.HistoryPoint, error)
}

func (s *stubMarket) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	return nil, nil
}

func (s *stubMarket) GetHistory(ctx context.Context, symbol string) ([]models.HistoryPoint, error) {
	if s.getHistory == nil {
		return nil, nil
	}
	return s.getHistory(ctx, symbol)
}

func TestRefreshCommitsSnapshot(t *testing.T) {
	ledger := &stubLedger{
		getHoldings: func(ctx context.Context) ([]models.Holding, error) {
			return []models.Holding{holding("AAPL", "STOCK", 10, 100)}, nil
		},
		getBalance: func(ctx context.Context) (*models.Balance, error) {
			return &models.Balance{Amount: 2500}, nil
		},
	}
	svc := NewService(ledger, &stubMarket{}, nil)

	if svc.Snapshot() != nil {
		t.Fatal("Snapshot must be nil before first refresh")
	}

	snap, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if snap.Summary.TotalValue != 1000 {
		t.Errorf("Expected total value 1000, got %f", snap.Summary.TotalValue)
	}
	if snap.Balance == nil || snap.Balance.Amount != 2500 {
		t.Errorf("Expected balance 2500, got %+v", snap.Balance)
	}
	if svc.Snapshot() != snap {
		t.Error("Committed snapshot must be readable via Snapshot()")
	}
}

func TestRefreshHoldingsFailureIsFatal(t *testing.T) {
	ledger := &stubLedger{
		getHoldings: func(ctx context.Context) ([]models.Holding, error) {
			return nil, fmt.Errorf("ledger down")
		},
	}
	svc := NewService(ledger, &stubMarket{}, nil)

	if _, err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("Holdings fetch failure must fail the refresh")
	}
	if svc.Snapshot() != nil {
		t.Error("Failed refresh must not commit a snapshot")
	}
}

func TestRefreshBalanceFailureIsBestEffort(t *testing.T) {
	ledger := &stubLedger{
		getHoldings: func(ctx context.Context) ([]models.Holding, error) {
			return []models.Holding{holding("AAPL", "STOCK", 1, 100)}, nil
		},
		getBalance: func(ctx context.Context) (*models.Balance, error) {
			return nil, fmt.Errorf("balance unavailable")
		},
	}
	svc := NewService(ledger, &stubMarket{}, nil)

	snap, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Balance failure must not fail the refresh: %v", err)
	}
	if snap.Balance != nil {
		t.Errorf("Expected nil balance, got %+v", snap.Balance)
	}
	if svc.Snapshot() == nil {
		t.Error("Snapshot must still be committed without a balance")
	}
}

func TestRefreshLastWriterWins(t *testing.T) {
	// The first refresh blocks inside the holdings fetch until the second has
	// committed. When it finally finishes, its result is stale and must not
	// replace the later snapshot.
	firstEntered := make(chan struct{})
	releaseFirst := make(chan struct{})
	calls := 0

	ledger := &stubLedger{
		getHoldings: func(ctx context.Context) ([]models.Holding, error) {
			calls++
			if calls == 1 {
				close(firstEntered)
				<-releaseFirst
				return []models.Holding{holding("OLD", "STOCK", 1, 111)}, nil
			}
			return []models.Holding{holding("NEW", "STOCK", 1, 222)}, nil
		},
	}
	svc := NewService(ledger, &stubMarket{}, nil)

	firstDone := make(chan *models.DashboardSnapshot, 1)
	go func() {
		snap, _ := svc.Refresh(context.Background())
		firstDone <- snap
	}()

	<-firstEntered

	second, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Second refresh failed: %v", err)
	}
	if second.Summary.TotalValue != 222 {
		t.Fatalf("Expected second refresh total 222, got %f", second.Summary.TotalValue)
	}

	close(releaseFirst)
	select {
	case <-firstDone:
	case <-time.After(5 * time.Second):
		t.Fatal("First refresh did not finish")
	}

	committed := svc.Snapshot()
	if committed == nil {
		t.Fatal("Expected a committed snapshot")
	}
	if committed.Summary.TotalValue != 222 {
		t.Errorf("Stale refresh overwrote a newer snapshot: total %f", committed.Summary.TotalValue)
	}
}

func TestHoldingsPassthrough(t *testing.T) {
	expected := []models.Holding{holding("AAPL", "STOCK", 3, 10)}
	ledger := &stubLedger{
		getHoldings: func(ctx context.Context) ([]models.Holding, error) {
			return expected, nil
		},
	}
	svc := NewService(ledger, &stubMarket{}, nil)

	holdings, err := svc.Holdings(context.Background())
	if err != nil {
		t.Fatalf("Holdings failed: %v", err)
	}
	if len(holdings) != 1 || holdings[0].Symbol != "AAPL" {
		t.Errorf("Expected passthrough holdings, got %v", holdings)
	}
}
