package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"cartscout-backend/internal/models"
)

// ErrNotFound signals a lookup miss (e.g. a scanned barcode with no matching
// product). It is a presentation concern, not a failure, and is never
// retried.
var ErrNotFound = errors.New("not found")

// Client talks to the upstream grocery pricing API. The upstream owns cart
// persistence and all comparison computation; this client only moves DTOs.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetCart fetches the owner's current cart.
func (c *Client) GetCart(ctx context.Context, ownerKey string) (*models.RemoteCart, error) {
	var cart models.RemoteCart
	path := fmt.Sprintf("/v1/carts/%s", url.PathEscape(ownerKey))
	if err := c.getJSON(ctx, path, &cart); err != nil {
		if errors.Is(err, ErrNotFound) {
			// No cart yet upstream is an empty cart, not an error.
			return &models.RemoteCart{}, nil
		}
		return nil, err
	}
	return &cart, nil
}

// ReplaceCart writes a full replacement of the owner's cart. Every mutation
// goes through here; there are no partial updates.
func (c *Client) ReplaceCart(ctx context.Context, ownerKey string, cart models.NormalizedCart) error {
	body, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart payload: %w", err)
	}

	path := fmt.Sprintf("/v1/carts/%s", url.PathEscape(ownerKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build cart replacement request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to replace cart: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("failed to replace cart: upstream returned %s", resp.Status)
	}
	return nil
}

// GetComparison fetches the ordered per-shop comparison list for the owner's
// hybrid cart.
func (c *Client) GetComparison(ctx context.Context, ownerKey string) ([]models.ShopComparison, error) {
	var shops []models.ShopComparison
	path := fmt.Sprintf("/v1/carts/%s/comparison", url.PathEscape(ownerKey))
	if err := c.getJSON(ctx, path, &shops); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []models.ShopComparison{}, nil
		}
		return nil, err
	}
	return shops, nil
}

// GetHybridCart fetches the merged cart view used for barcode membership
// checks on the product detail screen.
func (c *Client) GetHybridCart(ctx context.Context, ownerKey string) (*models.HybridCart, error) {
	var cart models.HybridCart
	path := fmt.Sprintf("/v1/carts/%s/hybrid", url.PathEscape(ownerKey))
	if err := c.getJSON(ctx, path, &cart); err != nil {
		if errors.Is(err, ErrNotFound) {
			return &models.HybridCart{}, nil
		}
		return nil, err
	}
	return &cart, nil
}

// LookupBarcode resolves a scanned barcode to a product. A miss returns
// ErrNotFound.
func (c *Client) LookupBarcode(ctx context.Context, barcode string) (*models.ProductLookup, error) {
	var lookup models.ProductLookup
	path := fmt.Sprintf("/v1/products/barcode/%s", url.PathEscape(barcode))
	if err := c.getJSON(ctx, path, &lookup); err != nil {
		return nil, err
	}
	return &lookup, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request to %s failed: upstream returned %s", path, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
