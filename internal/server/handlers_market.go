package server

import (
	"net/http"
	"strings"
)

// handleMarketQuote returns the latest market snapshot for a symbol.
// GET /api/market/quote/{symbol}
func (s *Server) handleMarketQuote(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	parts := PathSegments(r, "/api/market/quote/")
	if len(parts) != 1 {
		WriteError(w, http.StatusBadRequest, "Symbol is required")
		return
	}
	symbol := strings.ToUpper(parts[0])

	quote, err := s.app.MarketData.GetQuote(r.Context(), symbol)
	if err != nil {
		s.logger.Error().Err(err).Str("symbol", symbol).Msg("Quote fetch failed")
		WriteError(w, http.StatusBadGateway, "Failed to fetch quote: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, quote)
}

// handleMarketHistory returns the daily closing-price series for a symbol.
// GET /api/market/history/{symbol}
func (s *Server) handleMarketHistory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	parts := PathSegments(r, "/api/market/history/")
	if len(parts) != 1 {
		WriteError(w, http.StatusBadRequest, "Symbol is required")
		return
	}
	symbol := strings.ToUpper(parts[0])

	history, err := s.app.MarketData.GetHistory(r.Context(), symbol)
	if err != nil {
		s.logger.Error().Err(err).Str("symbol", symbol).Msg("History fetch failed")
		WriteError(w, http.StatusBadGateway, "Failed to fetch history: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, history)
}
