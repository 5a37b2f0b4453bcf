package swiggy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mmcdole/tiffin/internal/config"
	"github.com/mmcdole/tiffin/internal/domain"
)

const defaultTimeout = 20 * time.Second

// Client fetches the restaurant listing from the Swiggy directory API
type Client struct {
	listURL    string
	lat        float64
	lng        float64
	sections   [2]int
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a listing client from source configuration
func NewClient(cfg config.SourceConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	sections := DefaultSections
	if len(cfg.Sections) == 2 {
		sections = [2]int{cfg.Sections[0], cfg.Sections[1]}
	}

	return &Client{
		listURL:   cfg.URL,
		lat:       cfg.Lat,
		lng:       cfg.Lng,
		sections:  sections,
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchListing issues one request and returns both restaurant sections
// concatenated. Every failure is reported as domain.ErrFetchFailed.
func (c *Client) FetchListing(ctx context.Context) (domain.Collection, error) {
	body, err := c.doRequest(ctx, c.listQuery())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}

	first, second, err := ExtractSections(body, c.sections)
	if err != nil {
		c.logger.Error("unexpected listing shape", "error", err, "sections", c.sections)
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}

	restaurants, err := MapRestaurants(first, second)
	if err != nil {
		c.logger.Error("invalid restaurant entry", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}

	c.logger.Info("fetched restaurant listing",
		"count", len(restaurants),
		"section1", len(first),
		"section2", len(second),
	)
	return restaurants, nil
}

func (c *Client) listQuery() url.Values {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(c.lat, 'f', 5, 64))
	query.Set("lng", strconv.FormatFloat(c.lng, 'f', 5, 64))
	query.Set("is-seo-homepage-enabled", "true")
	query.Set("page_type", "DESKTOP_WEB_LISTING")
	return query
}

// doRequest performs a single GET. No retries: one call per fetch.
func (c *Client) doRequest(ctx context.Context, query url.Values) ([]byte, error) {
	reqURL := c.listURL
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("listing request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("listing request failed", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("listing request error", "status", resp.StatusCode, "body", truncate(string(body), 256))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
