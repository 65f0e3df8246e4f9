package marketdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/mira-markets/mira-engine/pkg/types"
	"go.uber.org/zap"
)

// Client is an HTTP client for the markets and news APIs. Both endpoints
// return direct JSON arrays.
type Client struct {
	marketsURL string
	newsURL    string
	limit      int
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientConfig holds market-data client configuration.
type ClientConfig struct {
	MarketsURL string
	NewsURL    string
	Limit      int // maximum markets to fetch per cycle; 0 uses the API default
	Logger     *zap.Logger
}

// NewClient creates a new market-data client.
func NewClient(cfg *ClientConfig) *Client {
	return &Client{
		marketsURL: cfg.MarketsURL,
		newsURL:    cfg.NewsURL,
		limit:      cfg.Limit,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: cfg.Logger,
	}
}

// FetchAllMarkets fetches the current set of active markets.
func (c *Client) FetchAllMarkets(ctx context.Context) ([]types.Market, error) {
	start := time.Now()
	defer func() {
		FetchDurationSeconds.WithLabelValues("markets").Observe(time.Since(start).Seconds())
	}()

	params := url.Values{}
	params.Add("closed", "false")
	params.Add("active", "true")
	if c.limit > 0 {
		params.Add("limit", strconv.Itoa(c.limit))
	}

	requestURL := fmt.Sprintf("%s/markets?%s", c.marketsURL, params.Encode())

	var markets []types.Market
	err := c.getJSON(ctx, requestURL, &markets)
	if err != nil {
		FetchErrorsTotal.WithLabelValues("markets").Inc()
		return nil, fmt.Errorf("fetch markets: %w", err)
	}

	MarketsFetchedTotal.Add(float64(len(markets)))

	c.logger.Debug("fetched-markets", zap.Int("count", len(markets)))

	return markets, nil
}

// FetchLatestNews fetches the latest news items.
func (c *Client) FetchLatestNews(ctx context.Context) ([]types.NewsItem, error) {
	start := time.Now()
	defer func() {
		FetchDurationSeconds.WithLabelValues("news").Observe(time.Since(start).Seconds())
	}()

	requestURL := fmt.Sprintf("%s/news", c.newsURL)

	var news []types.NewsItem
	err := c.getJSON(ctx, requestURL, &news)
	if err != nil {
		FetchErrorsTotal.WithLabelValues("news").Inc()
		return nil, fmt.Errorf("fetch news: %w", err)
	}

	c.logger.Debug("fetched-news", zap.Int("count", len(news)))

	return news, nil
}

func (c *Client) getJSON(ctx context.Context, requestURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "mira-engine/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	err = json.Unmarshal(body, out)
	if err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
