// Package marketdata provides a client for the FolioX market-data service
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/sumeetk/foliox/internal/common"
	"github.com/sumeetk/foliox/internal/interfaces"
	"github.com/sumeetk/foliox/internal/models"
)

const (
	DefaultBaseURL   = "http://localhost:5000"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the MarketDataClient interface
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

// NewClient creates a new market-data client
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
	return fmt.Sprintf("market-data API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Market-data API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// quoteResponse is the wire format for a market quote.
type quoteResponse struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Price     float64 `json:"price"`
	Volume    int64   `json:"volume"`
	Currency  string  `json:"currency"`
	Exchange  string  `json:"exchange"`
	Timestamp string  `json:"timestamp"`
}

// GetQuote retrieves the latest market snapshot for a symbol
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	path := "/api/market/quote/" + url.PathEscape(symbol)

	var resp quoteResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}

	return &models.Quote{
		Symbol:    resp.Symbol,
		Name:      resp.Name,
		Type:      resp.Type,
		Open:      resp.Open,
		High:      resp.High,
		Low:       resp.Low,
		Close:     resp.Close,
		Price:     resp.Price,
		Volume:    resp.Volume,
		Currency:  resp.Currency,
		Exchange:  resp.Exchange,
		Timestamp: parseTimestamp(resp.Timestamp),
	}, nil
}

// historyPointResponse is the wire format for one daily price sample.
type historyPointResponse struct {
	Symbol string  `json:"symbol"`
	Type   string  `json:"type"`
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// GetHistory retrieves the daily closing-price series for a symbol.
// Unknown symbols answer with an empty array, which maps to an empty slice.
// Samples with unparseable dates are dropped.
func (c *Client) GetHistory(ctx context.Context, symbol string) ([]models.HistoryPoint, error) {
	path := "/api/market/history/" + url.PathEscape(symbol)

	var rows []historyPointResponse
	if err := c.get(ctx, path, &rows); err != nil {
		return nil, err
	}

	points := make([]models.HistoryPoint, 0, len(rows))
	for _, r := range rows {
		date, err := time.Parse("2006-01-02", strings.TrimSpace(r.Date))
		if err != nil {
			c.logger.Warn().Str("symbol", symbol).Str("date", r.Date).Msg("Dropping history sample with bad date")
			continue
		}
		points = append(points, models.HistoryPoint{
			Symbol: r.Symbol,
			Type:   r.Type,
			Date:   date,
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		})
	}
	return points, nil
}

// parseTimestamp parses the quote timestamp, which arrives as an ISO string
// with milliseconds and no zone.
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02T15:04:05.999", "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
