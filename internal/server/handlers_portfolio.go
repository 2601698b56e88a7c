package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sumeetk/foliox/internal/services/portfolio"
)

// handleDashboard returns the full dashboard snapshot, refreshing the
// aggregation pipeline on demand.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snapshot, err := s.app.PortfolioService.Refresh(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Dashboard refresh failed")
		WriteError(w, http.StatusBadGateway, "Failed to load dashboard: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, snapshot)
}

// handleDashboardRefresh forces a refresh cycle and returns the new snapshot.
func (s *Server) handleDashboardRefresh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	snapshot, err := s.app.PortfolioService.Refresh(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Forced refresh failed")
		WriteError(w, http.StatusBadGateway, "Refresh failed: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, snapshot)
}

// handlePortfolioAssets returns the raw holdings list without derived metrics.
func (s *Server) handlePortfolioAssets(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	holdings, err := s.app.PortfolioService.Holdings(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Holdings fetch failed")
		WriteError(w, http.StatusBadGateway, "Failed to fetch holdings: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, holdings)
}

// handlePortfolioGrowth returns the date-bucketed growth series from the
// latest snapshot, refreshing if none has been committed yet.
func (s *Server) handlePortfolioGrowth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snapshot := s.app.PortfolioService.Snapshot()
	if snapshot == nil {
		fresh, err := s.app.PortfolioService.Refresh(r.Context())
		if err != nil {
			s.logger.Error().Err(err).Msg("Growth refresh failed")
			WriteError(w, http.StatusBadGateway, "Failed to build growth series: "+err.Error())
			return
		}
		snapshot = fresh
	}

	WriteJSON(w, http.StatusOK, snapshot.Growth)
}

// handleGrowthChart renders the growth series as a PNG line chart.
func (s *Server) handleGrowthChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snapshot := s.app.PortfolioService.Snapshot()
	if snapshot == nil {
		fresh, err := s.app.PortfolioService.Refresh(r.Context())
		if err != nil {
			s.logger.Error().Err(err).Msg("Chart refresh failed")
			WriteError(w, http.StatusBadGateway, "Failed to build growth series: "+err.Error())
			return
		}
		snapshot = fresh
	}

	png, err := portfolio.RenderGrowthChart(snapshot.Growth)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, "Cannot render chart: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handlePortfolioTrade dispatches the trade mutations:
//
//	PUT    /api/portfolio/{symbol}/buy/{qty}
//	PUT    /api/portfolio/{symbol}/sell/{qty}
//	DELETE /api/portfolio/{symbol}
func (s *Server) handlePortfolioTrade(w http.ResponseWriter, r *http.Request) {
	parts := PathSegments(r, "/api/portfolio/")

	switch {
	case len(parts) == 1:
		if !RequireMethod(w, r, http.MethodDelete) {
			return
		}
		s.sellAll(w, r, parts[0])

	case len(parts) == 3:
		if !RequireMethod(w, r, http.MethodPut) {
			return
		}
		s.trade(w, r, parts[0], parts[1], parts[2])

	default:
		WriteError(w, http.StatusNotFound, "Unknown portfolio route")
	}
}

func (s *Server) trade(w http.ResponseWriter, r *http.Request, symbol, action, rawQty string) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	qty, err := strconv.Atoi(rawQty)
	if err != nil || qty <= 0 {
		WriteError(w, http.StatusBadRequest, "Quantity must be a positive integer")
		return
	}

	switch action {
	case "buy":
		err = s.app.Ledger.Buy(r.Context(), symbol, qty)
	case "sell":
		err = s.app.Ledger.Sell(r.Context(), symbol, qty)
	default:
		WriteError(w, http.StatusNotFound, "Unknown trade action: "+action)
		return
	}

	if err != nil {
		s.logger.Error().Err(err).
			Str("symbol", symbol).
			Str("action", action).
			Int("quantity", qty).
			Msg("Trade failed")
		WriteError(w, http.StatusBadGateway, "Trade failed: "+err.Error())
		return
	}

	s.logger.Info().
		Str("symbol", symbol).
		Str("action", action).
		Int("quantity", qty).
		Msg("Trade executed")

	s.refreshAfterTrade()

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"symbol":   symbol,
		"action":   action,
		"quantity": rawQty,
	})
}

func (s *Server) sellAll(w http.ResponseWriter, r *http.Request, symbol string) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	if err := s.app.Ledger.SellAll(r.Context(), symbol); err != nil {
		s.logger.Error().Err(err).Str("symbol", symbol).Msg("Sell-all failed")
		WriteError(w, http.StatusBadGateway, "Sell-all failed: "+err.Error())
		return
	}

	s.logger.Info().Str("symbol", symbol).Msg("Position liquidated")

	s.refreshAfterTrade()

	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"symbol": symbol,
		"action": "sell-all",
	})
}

// refreshAfterTrade rebuilds the snapshot in the background so the next
// dashboard read reflects the mutation. The trade response does not wait.
func (s *Server) refreshAfterTrade() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		if _, err := s.app.PortfolioService.Refresh(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("Post-trade refresh failed")
		}
	}()
}
