// Package upstream talks to the HDL catalog web service.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"corralon_backend/internal/catalog/transport"
	"corralon_backend/platform/apperr"
)

// Operation selects which upstream dataset to fetch.
type Operation int

const (
	// OpClientsSites fetches clients with their sites and price lists.
	OpClientsSites Operation = 1
	// OpSocieties fetches societies and branches.
	OpSocieties Operation = 2
	// OpArticles fetches the full article catalog with prices.
	OpArticles Operation = 3
)

// CacheKey returns the cache key for this operation's snapshot.
func (op Operation) CacheKey() string {
	return fmt.Sprintf("operacion_%d", int(op))
}

func (op Operation) String() string {
	switch op {
	case OpClientsSites:
		return "clients_sites"
	case OpSocieties:
		return "societies"
	case OpArticles:
		return "articles"
	default:
		return "unknown"
	}
}

// Client fetches catalog datasets over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an upstream client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch retrieves one dataset. Network and HTTP-status failures are returned
// as plain errors so the gateway can fall back to sample data. A response
// that arrives but cannot be decoded is returned as a bad gateway error and
// must not be masked by fallback.
func (c *Client) Fetch(ctx context.Context, op Operation) (transport.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return transport.Snapshot{}, fmt.Errorf("build catalog request: %w", err)
	}

	q := req.URL.Query()
	q.Set("operacion", strconv.Itoa(int(op)))
	req.URL.RawQuery = q.Encode()

	resp, err := c.http.Do(req)
	if err != nil {
		return transport.Snapshot{}, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return transport.Snapshot{}, fmt.Errorf("catalog request failed: status %d", resp.StatusCode)
	}

	var snapshot transport.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return transport.Snapshot{}, apperr.Wrap(apperr.KindBadGateway, "invalid catalog response", err).WithOp(op.String())
	}

	snapshot.Source = transport.SourceUpstream
	return snapshot, nil
}
