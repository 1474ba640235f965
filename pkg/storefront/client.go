// pkg/storefront/client.go
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	fooddom "foodhall/internal/domain/fooditem"
)

// ErrUnauthorized is returned for 401-class answers on cart calls.
var ErrUnauthorized = errors.New("storefront: unauthorized")

// Client is the storefront's HTTP client for the ordering API.
//
// baseURL example:
// - Cloud Run: https://xxxxx.asia-northeast1.run.app
// - local: http://localhost:8080
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type foodListResponse struct {
	Success bool               `json:"success"`
	Data    []fooddom.FoodItem `json:"data"`
}

// FetchFoodList performs GET /api/food/list.
// A response that is not {success:true, data:[...]} counts as structurally
// invalid and is returned as an error; an empty data list is NOT an error
// here (the fetcher's retry policy decides what to do with it).
func (c *Client) FetchFoodList(ctx context.Context) ([]fooddom.FoodItem, error) {
	if c == nil || c.baseURL == "" {
		return nil, fmt.Errorf("storefront: client is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/food/list", nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storefront: food list status=%d", res.StatusCode)
	}

	var out foodListResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("storefront: invalid food list body: %w", err)
	}
	if !out.Success || out.Data == nil {
		return nil, fmt.Errorf("storefront: invalid food list response")
	}

	return out.Data, nil
}

// CartAdd performs POST /api/cart/add for one unit of itemID.
func (c *Client) CartAdd(ctx context.Context, token, itemID string) error {
	return c.cartMutate(ctx, "/api/cart/add", token, itemID)
}

// CartRemove performs POST /api/cart/remove for one unit of itemID.
func (c *Client) CartRemove(ctx context.Context, token, itemID string) error {
	return c.cartMutate(ctx, "/api/cart/remove", token, itemID)
}

type cartGetResponse struct {
	Success  bool           `json:"success"`
	CartData map[string]int `json:"cartData"`
}

// CartGet performs POST /api/cart/get and returns the persisted quantity map.
func (c *Client) CartGet(ctx context.Context, token string) (map[string]int, error) {
	if c == nil || c.baseURL == "" {
		return nil, fmt.Errorf("storefront: client is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/cart/get", strings.NewReader("{}"))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("token", strings.TrimSpace(token))

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))
		return nil, fmt.Errorf("storefront: cart get status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var out cartGetResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("storefront: invalid cart body: %w", err)
	}
	if out.CartData == nil {
		out.CartData = map[string]int{}
	}
	return out.CartData, nil
}

func (c *Client) cartMutate(ctx context.Context, path, token, itemID string) error {
	if c == nil || c.baseURL == "" {
		return fmt.Errorf("storefront: client is not configured")
	}

	payload := map[string]string{"itemId": strings.TrimSpace(itemID)}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("token", strings.TrimSpace(token))

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))
		return fmt.Errorf("storefront: %s status=%d body=%s", path, res.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
