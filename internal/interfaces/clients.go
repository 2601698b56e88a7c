// Package interfaces defines service contracts for FolioX
package interfaces

import (
	"context"

	"github.com/sumeetk/foliox/internal/models"
)

// LedgerClient provides access to the portfolio, balance and catalogue backend.
type LedgerClient interface {
	// GetHoldings retrieves the current portfolio snapshot
	GetHoldings(ctx context.Context) ([]models.Holding, error)

	// Buy purchases quantity units of symbol
	Buy(ctx context.Context, symbol string, quantity int) error

	// Sell sells quantity units of symbol. Selling one unit sells one unit;
	// full liquidation is only ever the explicit SellAll command.
	Sell(ctx context.Context, symbol string, quantity int) error

	// SellAll liquidates the whole position for symbol
	SellAll(ctx context.Context, symbol string) error

	// GetBalance retrieves the available cash balance
	GetBalance(ctx context.Context) (*models.Balance, error)

	// AddBalance adds amount to the cash balance
	AddBalance(ctx context.Context, amount float64) (*models.Balance, error)

	// GetCatalogue retrieves all assets in the catalogue
	GetCatalogue(ctx context.Context) ([]models.CatalogueAsset, error)

	// AddToCatalogue registers a new symbol in the catalogue
	AddToCatalogue(ctx context.Context, symbol string) (*models.CatalogueAsset, error)

	// RefreshCatalogueEntry re-quotes an existing catalogue entry
	RefreshCatalogueEntry(ctx context.Context, symbol string) error

	// SearchCatalogue searches catalogue entries by name or symbol prefix
	SearchCatalogue(ctx context.Context, query string) ([]models.CatalogueAsset, error)
}

// MarketDataClient provides access to the market-data collaborator.
type MarketDataClient interface {
	// GetQuote retrieves the latest market snapshot for a symbol
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)

	// GetHistory retrieves the daily closing-price series for a symbol.
	// Unknown symbols yield an empty series, not an error.
	GetHistory(ctx context.Context, symbol string) ([]models.HistoryPoint, error)
}

// AssistantClient provides access to the AI model backing the chat assistant.
type AssistantClient interface {
	// GenerateContent generates AI content from a prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
