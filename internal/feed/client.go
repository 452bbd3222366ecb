// Package feed fetches current stock items from the upstream stock
// API. The upstream contract is a single HTTP GET returning a flat
// list of (name, quantity, category); provider-specific shapes are
// absorbed by adapters so the normalizer sees one stable record type.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gardenstock/stockwatch/internal/domain"
	"github.com/gardenstock/stockwatch/internal/utils"
)

// maxResponseBytes bounds the feed body read. The real feed is a few
// KB; anything past this is a broken or hostile upstream.
const maxResponseBytes = 4 << 20

// Fetcher retrieves the current stock record list.
type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.StockRecord, error)
}

// Client fetches stock records over HTTP.
type Client struct {
	url     string
	http    *http.Client
	adapter Adapter
}

// NewClient builds a feed client for url. A nil adapter defaults to
// the canonical flat-array shape.
func NewClient(url string, timeout time.Duration, adapter Adapter) *Client {
	if adapter == nil {
		adapter = FlatAdapter{}
	}
	return &Client{
		url:     url,
		http:    &http.Client{Timeout: timeout},
		adapter: adapter,
	}
}

// Fetch performs a single attempt against the feed. No retries: a
// failed cycle waits for the next scheduled poll.
func (c *Client) Fetch(ctx context.Context) ([]domain.StockRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stock feed: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("stock feed returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read stock feed response: %w", err)
	}

	return c.adapter.Parse(body)
}
