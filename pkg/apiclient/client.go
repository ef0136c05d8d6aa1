package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stocktracker/internal/market/view"
	"stocktracker/pkg/market"
)

// ErrServer is wrapped by every non-2xx response.
var ErrServer = errors.New("server error")

// StocksPage is the body of GET /api/stocks.
type StocksPage struct {
	view.Page
	Filter    market.Filter  `json:"filter"`
	Sort      market.SortKey `json:"sort"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Loading   bool           `json:"loading"`
	Error     string         `json:"error,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

// RESTClient talks to a running stocktracker server.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *RESTClient) HTTPClient() *http.Client {
	return c.httpClient
}

// GetStocks fetches one page of the derived view for q.
func (c *RESTClient) GetStocks(ctx context.Context, q view.Query) (*StocksPage, error) {
	params := url.Values{}
	params.Set("filter", string(q.Filter))
	params.Set("sort", string(q.Sort))
	params.Set("page", strconv.Itoa(q.Page))

	var page StocksPage
	if err := c.do(ctx, http.MethodGet, "/api/stocks?"+params.Encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetOverview fetches the market-wide summary.
func (c *RESTClient) GetOverview(ctx context.Context) (view.MarketOverview, error) {
	var ov view.MarketOverview
	err := c.do(ctx, http.MethodGet, "/api/overview", &ov)
	return ov, err
}

// Refresh asks the server to reload its stock data and blocks until it has.
func (c *RESTClient) Refresh(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/refresh", nil)
}

func (c *RESTClient) do(ctx context.Context, method, path string, out any) error {
	// Construct the request with context for timeout/cancel support
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		var e errorBody
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return fmt.Errorf("%w (%d): %s", ErrServer, resp.StatusCode, e.Error)
		}
		return fmt.Errorf("%w (%d): %s", ErrServer, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
