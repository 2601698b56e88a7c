package portfolio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sumeetk/foliox/internal/common"
	"github.com/sumeetk/foliox/internal/interfaces"
	"github.com/sumeetk/foliox/internal/models"
)

// Service runs the aggregation pipeline over fresh backend data and keeps the
// latest committed dashboard snapshot.
type Service struct {
	ledger       interfaces.LedgerClient
	market       interfaces.MarketDataClient
	logger       *common.Logger
	fetchTimeout time.Duration

	mu           sync.Mutex
	nextGen      uint64
	committedGen uint64
	snapshot     *models.DashboardSnapshot
}

// ServiceOption configures the service
type ServiceOption func(*Service)

// WithFetchTimeout bounds each per-symbol history fetch
func WithFetchTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// NewService creates a new portfolio service
func NewService(ledger interfaces.LedgerClient, market interfaces.MarketDataClient, logger *common.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	s := &Service{
		ledger:       ledger,
		market:       market,
		logger:       logger,
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh pulls a fresh holdings snapshot, aggregates it and rebuilds the
// growth series. A holdings fetch failure is fatal to the cycle and no partial
// aggregation is attempted. The balance is fetched best-effort.
//
// Concurrent refreshes are resolved last-writer-wins by trigger order: the
// snapshot of a refresh triggered earlier never overwrites one triggered
// later, regardless of which finishes first.
func (s *Service) Refresh(ctx context.Context) (*models.DashboardSnapshot, error) {
	s.mu.Lock()
	s.nextGen++
	gen := s.nextGen
	s.mu.Unlock()

	start := time.Now()
	s.logger.Debug().Uint64("gen", gen).Msg("Refresh triggered")

	holdings, err := s.ledger.GetHoldings(ctx)
	if err != nil {
		return nil, fmt.Errorf("holdings fetch failed: %w", err)
	}

	summary := Aggregate(holdings)
	growth := BuildGrowthSeries(ctx, holdings, s.market.GetHistory, s.fetchTimeout, s.logger)

	snap := &models.DashboardSnapshot{
		Holdings:  holdings,
		Summary:   summary,
		Growth:    growth,
		FetchedAt: time.Now(),
	}

	if balance, err := s.ledger.GetBalance(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Balance fetch failed, snapshot has no balance")
	} else {
		snap.Balance = balance
	}

	s.mu.Lock()
	committed := gen > s.committedGen
	if committed {
		s.committedGen = gen
		s.snapshot = snap
	}
	s.mu.Unlock()

	if !committed {
		s.logger.Debug().Uint64("gen", gen).Msg("Discarding stale refresh result")
	}

	s.logger.Info().
		Uint64("gen", gen).
		Int("holdings", len(holdings)).
		Int("growthPoints", len(growth)).
		Float64("totalValue", summary.TotalValue).
		Dur("elapsed", time.Since(start)).
		Msg("Refresh complete")

	return snap, nil
}

// Snapshot returns the latest committed snapshot, or nil before first refresh.
func (s *Service) Snapshot() *models.DashboardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Holdings returns the raw holdings list without derived metrics.
func (s *Service) Holdings(ctx context.Context) ([]models.Holding, error) {
	return s.ledger.GetHoldings(ctx)
}

// Ensure Service implements PortfolioService
var _ interfaces.PortfolioService = (*Service)(nil)
