package server

import (
	"net/http"
	"strconv"
)

// handleBalance returns the available cash balance.
func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	balance, err := s.app.Ledger.GetBalance(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Balance fetch failed")
		WriteError(w, http.StatusBadGateway, "Failed to fetch balance: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, balance)
}

// handleBalanceAdd adds funds to the cash balance.
// POST /api/balance/add/{amount}
func (s *Server) handleBalanceAdd(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	parts := PathSegments(r, "/api/balance/add/")
	if len(parts) != 1 {
		WriteError(w, http.StatusBadRequest, "Amount is required")
		return
	}

	amount, err := strconv.ParseFloat(parts[0], 64)
	if err != nil || amount <= 0 {
		WriteError(w, http.StatusBadRequest, "Amount must be a positive number")
		return
	}

	balance, err := s.app.Ledger.AddBalance(r.Context(), amount)
	if err != nil {
		s.logger.Error().Err(err).Float64("amount", amount).Msg("Balance add failed")
		WriteError(w, http.StatusBadGateway, "Failed to add balance: "+err.Error())
		return
	}

	s.logger.Info().Float64("amount", amount).Msg("Balance added")
	WriteJSON(w, http.StatusOK, balance)
}
