// Package ledger provides a client for the FolioX portfolio/balance/catalogue backend
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/sumeetk/foliox/internal/common"
	"github.com/sumeetk/foliox/internal/interfaces"
	"github.com/sumeetk/foliox/internal/models"
)

const (
	DefaultBaseURL   = "http://localhost:8081"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// Client implements the LedgerClient interface
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new ledger client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a backend error response
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ledger API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// do performs a rate-limited request and decodes a JSON response into result.
// A nil result discards the body (mutation endpoints answer with plain text).
func (c *Client) do(ctx context.Context, method, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("method", method).Str("url", c.baseURL+path).Msg("Ledger API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if result == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// holdingResponse is the ledger wire format for one portfolio row.
type holdingResponse struct {
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Quantity     int      `json:"quantity"`
	BuyPrice     float64  `json:"buyPrice"`
	CurrentPrice float64  `json:"currentPrice"`
	ProfitLoss   float64  `json:"profitLoss"`
	High         float64  `json:"high"`
	Low          float64  `json:"low"`
	Volume       int64    `json:"volume"`
	BuyTimestamp flexTime `json:"buyTimestamp"`
}

// GetHoldings retrieves the current portfolio snapshot
func (c *Client) GetHoldings(ctx context.Context) ([]models.Holding, error) {
	var rows []holdingResponse
	if err := c.do(ctx, http.MethodGet, "/portfolio/assets", nil, &rows); err != nil {
		return nil, err
	}

	holdings := make([]models.Holding, len(rows))
	for i, r := range rows {
		holdings[i] = models.Holding{
			Symbol:       r.Symbol,
			Name:         r.Name,
			Type:         r.Type,
			Quantity:     r.Quantity,
			BuyPrice:     r.BuyPrice,
			CurrentPrice: r.CurrentPrice,
			ProfitLoss:   r.ProfitLoss,
			High:         r.High,
			Low:          r.Low,
			Volume:       r.Volume,
			BuyTimestamp: time.Time(r.BuyTimestamp),
		}
	}
	return holdings, nil
}

// Buy purchases quantity units of symbol
func (c *Client) Buy(ctx context.Context, symbol string, quantity int) error {
	path := fmt.Sprintf("/portfolio/%s/buy/%d", url.PathEscape(symbol), quantity)
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// Sell sells quantity units of symbol
func (c *Client) Sell(ctx context.Context, symbol string, quantity int) error {
	path := fmt.Sprintf("/portfolio/%s/sell/%d", url.PathEscape(symbol), quantity)
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// SellAll liquidates the whole position for symbol
func (c *Client) SellAll(ctx context.Context, symbol string) error {
	path := fmt.Sprintf("/portfolio/%s", url.PathEscape(symbol))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// balanceResponse is the ledger wire format for the cash balance.
type balanceResponse struct {
	Amount      float64  `json:"amount"`
	LastUpdated flexTime `json:"lastUpdated"`
}

func (r balanceResponse) toModel() *models.Balance {
	return &models.Balance{
		Amount:      r.Amount,
		LastUpdated: time.Time(r.LastUpdated),
	}
}

// GetBalance retrieves the available cash balance
func (c *Client) GetBalance(ctx context.Context) (*models.Balance, error) {
	var resp balanceResponse
	if err := c.do(ctx, http.MethodGet, "/balance", nil, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// AddBalance adds amount to the cash balance
func (c *Client) AddBalance(ctx context.Context, amount float64) (*models.Balance, error) {
	path := "/balance/add/" + strconv.FormatFloat(amount, 'f', -1, 64)

	var resp balanceResponse
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// catalogueResponse is the ledger wire format for one catalogue row.
type catalogueResponse struct {
	Symbol      string   `json:"symbol"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Open        float64  `json:"open"`
	High        float64  `json:"high"`
	Low         float64  `json:"low"`
	Close       float64  `json:"close"`
	Price       float64  `json:"price"`
	Volume      int64    `json:"volume"`
	Currency    string   `json:"currency"`
	Exchange    string   `json:"exchange"`
	LastUpdated flexTime `json:"lastUpdated"`
}

func (r catalogueResponse) toModel() models.CatalogueAsset {
	return models.CatalogueAsset{
		Symbol:      r.Symbol,
		Name:        r.Name,
		Type:        r.Type,
		Open:        r.Open,
		High:        r.High,
		Low:         r.Low,
		Close:       r.Close,
		Price:       r.Price,
		Volume:      r.Volume,
		Currency:    r.Currency,
		Exchange:    r.Exchange,
		LastUpdated: time.Time(r.LastUpdated),
	}
}

// GetCatalogue retrieves all assets in the catalogue
func (c *Client) GetCatalogue(ctx context.Context) ([]models.CatalogueAsset, error) {
	var rows []catalogueResponse
	if err := c.do(ctx, http.MethodGet, "/api/catalogue", nil, &rows); err != nil {
		return nil, err
	}

	assets := make([]models.CatalogueAsset, len(rows))
	for i, r := range rows {
		assets[i] = r.toModel()
	}
	return assets, nil
}

// AddToCatalogue registers a new symbol in the catalogue
func (c *Client) AddToCatalogue(ctx context.Context, symbol string) (*models.CatalogueAsset, error) {
	path := "/api/catalogue/" + url.PathEscape(symbol)

	var resp catalogueResponse
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	asset := resp.toModel()
	return &asset, nil
}

// RefreshCatalogueEntry re-quotes an existing catalogue entry
func (c *Client) RefreshCatalogueEntry(ctx context.Context, symbol string) error {
	path := "/api/catalogue/" + url.PathEscape(symbol)
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// SearchCatalogue searches catalogue entries by name or symbol prefix
func (c *Client) SearchCatalogue(ctx context.Context, query string) ([]models.CatalogueAsset, error) {
	params := url.Values{}
	params.Set("q", query)

	var rows []catalogueResponse
	if err := c.do(ctx, http.MethodGet, "/api/catalogue/search", params, &rows); err != nil {
		return nil, err
	}

	assets := make([]models.CatalogueAsset, len(rows))
	for i, r := range rows {
		assets[i] = r.toModel()
	}
	return assets, nil
}

// Ensure Client implements LedgerClient
var _ interfaces.LedgerClient = (*Client)(nil)
