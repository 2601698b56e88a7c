package server

import (
	"net/http"
	"strings"
)

// handleCatalogue returns all catalogue entries.
func (s *Server) handleCatalogue(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	assets, err := s.app.Ledger.GetCatalogue(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Catalogue fetch failed")
		WriteError(w, http.StatusBadGateway, "Failed to fetch catalogue: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, assets)
}

// handleCatalogueSearch searches catalogue entries by name or symbol prefix.
// GET /api/catalogue/search?q=
func (s *Server) handleCatalogueSearch(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		WriteError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	assets, err := s.app.Ledger.SearchCatalogue(r.Context(), query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("Catalogue search failed")
		WriteError(w, http.StatusBadGateway, "Catalogue search failed: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, assets)
}

// handleCatalogueEntry handles per-symbol catalogue mutations:
//
//	POST /api/catalogue/{symbol}  register a new symbol
//	PUT  /api/catalogue/{symbol}  re-quote an existing entry
func (s *Server) handleCatalogueEntry(w http.ResponseWriter, r *http.Request) {
	parts := PathSegments(r, "/api/catalogue/")
	if len(parts) != 1 {
		WriteError(w, http.StatusNotFound, "Unknown catalogue route")
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(parts[0]))
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	switch r.Method {
	case http.MethodPost:
		asset, err := s.app.Ledger.AddToCatalogue(r.Context(), symbol)
		if err != nil {
			s.logger.Error().Err(err).Str("symbol", symbol).Msg("Catalogue add failed")
			WriteError(w, http.StatusBadGateway, "Failed to add to catalogue: "+err.Error())
			return
		}
		s.logger.Info().Str("symbol", symbol).Msg("Catalogue entry added")
		WriteJSON(w, http.StatusCreated, asset)

	case http.MethodPut:
		if err := s.app.Ledger.RefreshCatalogueEntry(r.Context(), symbol); err != nil {
			s.logger.Error().Err(err).Str("symbol", symbol).Msg("Catalogue refresh failed")
			WriteError(w, http.StatusBadGateway, "Failed to refresh catalogue entry: "+err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "symbol": symbol})

	default:
		RequireMethod(w, r, http.MethodPost, http.MethodPut)
	}
}
