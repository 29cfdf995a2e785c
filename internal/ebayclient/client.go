package ebayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dealhunter/ebay-hunter/pkg/models"
	"golang.org/x/time/rate"
)

// outboundRatePerSec bounds how fast this process hits the marketplace API,
// independent of and stricter than any per-credential quota the marketplace
// itself enforces.
const outboundRatePerSec = 5

// Client is a thin HTTP wrapper over the marketplace's search and item
// endpoints, normalizing responses into this package's own types. Mirrors
// the teacher's rpcclient.Client wrapper shape: one struct holding a
// transport plus the base URL, one method per remote operation.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a Client pointed at the marketplace's REST base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(outboundRatePerSec), outboundRatePerSec),
	}
}

// Search implements SearchAdapter for a real marketplace endpoint. This
// concrete client lets the worker run end-to-end against a real
// marketplace-shaped HTTP endpoint in production.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search adapter returned %d", resp.StatusCode)
	}

	var out SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &out, nil
}

// FetchDetailResult is the outcome of a single detail GET, distinguishing a
// 429 (caller should rotate credential and retry) from any other failure
// (caller should give up on this listing, per spec §4.2).
type FetchDetailResult struct {
	Detail      *models.ListingDetail
	RateLimited bool
}

// GetItemDetail issues the OAuth-authenticated item detail GET. Non-2xx,
// non-429 responses come back as a result with a nil Detail and
// RateLimited=false, with a nil error — the caller doesn't need to
// distinguish further failure modes.
func (c *Client) GetItemDetail(ctx context.Context, itemID, token string) (*FetchDetailResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/item/"+itemID, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("item detail request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &FetchDetailResult{RateLimited: true}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &FetchDetailResult{}, nil
	}

	var detail models.ListingDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("decode item detail: %w", err)
	}
	return &FetchDetailResult{Detail: &detail}, nil
}
