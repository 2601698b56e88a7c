// Package server provides the HTTP API for FolioX
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sumeetk/foliox/internal/app"
	"github.com/sumeetk/foliox/internal/common"
)

// Server wraps the HTTP server and the application it serves.
type Server struct {
	app        *app.App
	logger     *common.Logger
	httpServer *http.Server
}

// NewServer creates a new HTTP server for the given application.
func NewServer(a *app.App) *Server {
	s := &Server{
		app:    a,
		logger: a.Logger,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port),
		Handler:      applyMiddleware(mux, a.Logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Dashboard
	mux.HandleFunc("/api/dashboard", s.handleDashboard)
	mux.HandleFunc("/api/dashboard/refresh", s.handleDashboardRefresh)

	// Portfolio
	mux.HandleFunc("/api/portfolio/assets", s.handlePortfolioAssets)
	mux.HandleFunc("/api/portfolio/growth", s.handlePortfolioGrowth)
	mux.HandleFunc("/api/portfolio/growth/chart.png", s.handleGrowthChart)
	mux.HandleFunc("/api/portfolio/", s.handlePortfolioTrade)

	// Balance
	mux.HandleFunc("/api/balance", s.handleBalance)
	mux.HandleFunc("/api/balance/add/", s.handleBalanceAdd)

	// Catalogue
	mux.HandleFunc("/api/catalogue", s.handleCatalogue)
	mux.HandleFunc("/api/catalogue/search", s.handleCatalogueSearch)
	mux.HandleFunc("/api/catalogue/", s.handleCatalogueEntry)

	// Market data passthrough
	mux.HandleFunc("/api/market/quote/", s.handleMarketQuote)
	mux.HandleFunc("/api/market/history/", s.handleMarketHistory)

	// AI chat
	mux.HandleFunc("/api/chat", s.handleChat)
}

// Start begins listening for HTTP requests. Blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info().
		Str("addr", s.httpServer.Addr).
		Msg("Starting FolioX HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the fully wrapped handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
