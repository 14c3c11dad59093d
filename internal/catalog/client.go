// Package catalog is a pass-through client for the external product
// catalog. Responses are relayed as-is: no retries, no caching.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain"
)

// ErrUpstream indicates the catalog service failed or returned a
// non-success status.
var ErrUpstream = errors.New("catalog upstream failure")

type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *log.Logger
}

// New builds a Client for the catalog at baseURL. The timeout bounds
// each request end to end.
func New(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Categories returns all category names.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.get(ctx, "/products/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Products returns the full product list.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.get(ctx, "/products", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Product returns one product by its catalog id.
func (c *Client) Product(ctx context.Context, id int64) (*domain.Product, error) {
	var out domain.Product
	if err := c.get(ctx, fmt.Sprintf("/products/%d", id), &out); err != nil {
		return nil, err
	}
	// The upstream answers an unknown id with an empty 200 body, which
	// decodes to the zero product.
	if out.ID == 0 {
		return nil, fmt.Errorf("%w: product %d: empty response", ErrUpstream, id)
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: build request %s: %v", ErrUpstream, path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Printf("catalog: GET %s error=%v", path, err)
		return fmt.Errorf("%w: get %s: %v", ErrUpstream, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Printf("catalog: GET %s status=%d", path, resp.StatusCode)
		return fmt.Errorf("%w: get %s: status %d", ErrUpstream, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		c.logger.Printf("catalog: GET %s decode error=%v", path, err)
		return fmt.Errorf("%w: decode %s: %v", ErrUpstream, path, err)
	}
	return nil
}
