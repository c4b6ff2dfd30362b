package gag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/metrics"
	domain "github.com/Harlandx/Grow-a-Garden-Notification-System/pkg/types"
)

const (
	// DefaultBaseURL is the public Grow A Garden API endpoint.
	DefaultBaseURL = "https://gagapi.onrender.com"

	defaultUserAgent = "GAGBot/1.0 (Go Client)"
	defaultTimeout   = 10 * time.Second
)

// StockClient implements Client against the Grow A Garden REST API.
type StockClient struct {
	baseURL     string
	userAgent   string
	client      *http.Client
	rateLimiter *RateLimiter
	log         *slog.Logger
	nowFunc     func() time.Time
}

// StockOption configures the StockClient.
type StockOption func(*StockClient)

// WithBaseURL overrides the default API endpoint.
func WithBaseURL(u string) StockOption {
	return func(c *StockClient) {
		c.baseURL = u
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) StockOption {
	return func(c *StockClient) {
		c.userAgent = ua
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) StockOption {
	return func(c *StockClient) {
		c.client = hc
	}
}

// WithRateLimiter injects a limiter enforcing the upstream per-minute
// contract. When set, every FetchAll() call goes through Wait() first.
func WithRateLimiter(r *RateLimiter) StockOption {
	return func(c *StockClient) {
		c.rateLimiter = r
	}
}

// WithStockLogger sets a custom logger.
func WithStockLogger(l *slog.Logger) StockOption {
	return func(c *StockClient) {
		c.log = l
	}
}

// NewStockClient creates a new Grow A Garden API client.
func NewStockClient(opts ...StockOption) *StockClient {
	c := &StockClient{
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		client:    &http.Client{Timeout: defaultTimeout},
		log:       slog.Default(),
		nowFunc:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAll implements Client.FetchAll with a single GET of /alldata.
func (c *StockClient) FetchAll(ctx context.Context) (*domain.Snapshot, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyBudgetExhausted) {
				metrics.DailyBudgetHits.Inc()
			}
			return nil, &FetchError{Kind: KindRateLimited, Err: err}
		}
	}

	metrics.UpstreamCallsTotal.Inc()

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+"/alldata", http.NoBody,
	)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(fmt.Errorf("reading response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyStatus(resp.StatusCode, body)
	}

	var apiResp allDataResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, &FetchError{
			Kind: KindParseError,
			Err:  fmt.Errorf("parsing stock payload: %w", err),
		}
	}

	return &domain.Snapshot{
		Items:     toItems(apiResp, c.log),
		FetchedAt: c.nowFunc(),
	}, nil
}

func classifyTransportError(err error) *FetchError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return &FetchError{Kind: KindTimeout, Err: err}
	}
	return &FetchError{Kind: KindNetwork, Err: err}
}

func classifyStatus(status int, body []byte) *FetchError {
	err := fmt.Errorf("upstream returned %d: %s", status, truncate(body, 200))
	switch {
	case status == http.StatusTooManyRequests:
		return &FetchError{Kind: KindRateLimited, Status: status, Err: err}
	case status >= 500:
		return &FetchError{Kind: KindServerError, Status: status, Err: err}
	default:
		return &FetchError{Kind: KindNetwork, Status: status, Err: err}
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
