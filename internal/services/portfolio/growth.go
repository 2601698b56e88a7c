package portfolio

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/sumeetk/foliox/internal/common"
	"github.com/sumeetk/foliox/internal/models"
)

// HistoryProvider fetches the daily closing-price series for one symbol.
type HistoryProvider func(ctx context.Context, symbol string) ([]models.HistoryPoint, error)

const (
	// fetchConcurrency bounds how many history requests run at once.
	fetchConcurrency = 8

	// DefaultFetchTimeout bounds a single symbol's history fetch; a hang is
	// treated as a failure for that symbol only.
	DefaultFetchTimeout = 10 * time.Second
)

// BuildGrowthSeries reconstructs the chronological total-portfolio-value
// series from per-symbol price histories.
//
// One history request is issued per holding, concurrently. A failed or
// timed-out fetch contributes an empty history and is logged; it never aborts
// the other symbols. Each returned (date, close) sample adds close × quantity
// into that date's bucket, so a date covered by only some symbols still yields
// a valid partial total. The result is sorted ascending by date; if nothing
// returned any history the result is nil.
func BuildGrowthSeries(ctx context.Context, holdings []models.Holding, provider HistoryProvider, fetchTimeout time.Duration, logger *common.Logger) []models.GrowthPoint {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}

	fetched := make([]models.Holding, 0, len(holdings))
	for _, h := range holdings {
		if usable(h) && h.Quantity > 0 {
			fetched = append(fetched, h)
		}
	}
	if len(fetched) == 0 {
		return nil
	}

	// Fan-out: each goroutine writes only its own slot, so the fetch phase
	// shares no mutable state. The merge runs after the join point.
	histories := make([][]models.HistoryPoint, len(fetched))
	sem := make(chan struct{}, fetchConcurrency)
	var wg sync.WaitGroup

	for i, h := range fetched {
		wg.Add(1)
		go func(i int, h models.Holding) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
			defer cancel()

			points, err := provider(fetchCtx, h.Symbol)
			if err != nil {
				logger.Warn().Err(err).Str("symbol", h.Symbol).Msg("History fetch failed, symbol contributes no data")
				return
			}
			histories[i] = points
		}(i, h)
	}
	wg.Wait()

	return mergeHistories(fetched, histories)
}

// mergeHistories buckets every sample's close × quantity by calendar date and
// emits the sorted series.
func mergeHistories(holdings []models.Holding, histories [][]models.HistoryPoint) []models.GrowthPoint {
	totals := make(map[time.Time]float64)

	for i, h := range holdings {
		qty := float64(h.Quantity)
		for _, p := range histories[i] {
			if p.Close < 0 || math.IsNaN(p.Close) || math.IsInf(p.Close, 0) {
				continue
			}
			day := p.Date.Truncate(24 * time.Hour)
			totals[day] += p.Close * qty
		}
	}

	if len(totals) == 0 {
		return nil
	}

	points := make([]models.GrowthPoint, 0, len(totals))
	for day, value := range totals {
		points = append(points, models.GrowthPoint{
			Date:        day,
			PeriodLabel: day.Format("Jan 2006"),
			TotalValue:  value,
		})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	return points
}
