// Package app wires configuration, clients and services into a running FolioX instance.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/sumeetk/foliox/internal/clients/assistant"
	"github.com/sumeetk/foliox/internal/clients/ledger"
	"github.com/sumeetk/foliox/internal/clients/marketdata"
	"github.com/sumeetk/foliox/internal/common"
	"github.com/sumeetk/foliox/internal/interfaces"
	assistantsvc "github.com/sumeetk/foliox/internal/services/assistant"
	"github.com/sumeetk/foliox/internal/services/portfolio"
)

// App holds all initialized clients and services.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Ledger           interfaces.LedgerClient
	MarketData       interfaces.MarketDataClient
	PortfolioService interfaces.PortfolioService
	AssistantService interfaces.AssistantService
}

// NewApp initializes all clients and services.
// configPath may be empty, in which case FOLIOX_CONFIG and the default
// location are tried.
func NewApp(configPath string) (*App, error) {
	if configPath == "" {
		configPath = os.Getenv("FOLIOX_CONFIG")
	}
	if configPath == "" {
		configPath = "config/foliox.toml"
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	ledgerClient := ledger.NewClient(
		ledger.WithBaseURL(config.Clients.Ledger.BaseURL),
		ledger.WithRateLimit(config.Clients.Ledger.RateLimit),
		ledger.WithTimeout(config.Clients.Ledger.GetTimeout()),
		ledger.WithLogger(logger),
	)

	marketClient := marketdata.NewClient(
		marketdata.WithBaseURL(config.Clients.MarketData.BaseURL),
		marketdata.WithRateLimit(config.Clients.MarketData.RateLimit),
		marketdata.WithTimeout(config.Clients.MarketData.GetTimeout()),
		marketdata.WithLogger(logger),
	)

	portfolioService := portfolio.NewService(ledgerClient, marketClient, logger,
		portfolio.WithFetchTimeout(config.Clients.MarketData.GetFetchTimeout()),
	)

	// The assistant is optional: without an API key the chat endpoint reports
	// itself unavailable instead of failing startup.
	var aiClient interfaces.AssistantClient
	if apiKey, err := common.ResolveAPIKey("gemini_api_key", config.Clients.Gemini.APIKey); err != nil {
		logger.Warn().Msg("Gemini API key not configured - AI assistant will be unavailable")
	} else {
		client, err := assistant.NewClient(context.Background(), apiKey,
			assistant.WithModel(config.Clients.Gemini.Model),
			assistant.WithLogger(logger),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client - AI assistant will be unavailable")
		} else {
			aiClient = client
		}
	}

	assistantService := assistantsvc.NewService(aiClient, portfolioService, logger)

	return &App{
		Config:           config,
		Logger:           logger,
		Ledger:           ledgerClient,
		MarketData:       marketClient,
		PortfolioService: portfolioService,
		AssistantService: assistantService,
	}, nil
}
