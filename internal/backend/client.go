// Package backend wraps the REST API that owns all durable state. Each
// method issues exactly one request and surfaces any non-2xx response as an
// error; retries and caching belong to the callers.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"stockdesk/internal/domain"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New trims a trailing slash off baseURL so paths can be joined verbatim.
// A zero timeout leaves requests unbounded.
func New(baseURL string, timeout time.Duration) *Client {
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf *bytes.Buffer
	if body != nil {
		buf = &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("backend: encode %s %s: %w", method, path, err)
		}
	}
	var rd *bytes.Buffer
	if buf != nil {
		rd = buf
	} else {
		rd = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("backend: %s %s: status %d", method, path, res.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode %s %s: %w", method, path, err)
	}
	return nil
}

// ---------- Products ----------

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, http.MethodGet, "/products/"+strconv.FormatInt(id, 10), nil, &out)
	return out, err
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, http.MethodPost, "/products", in, &out)
	return out, err
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/products/"+strconv.FormatInt(id, 10), nil, nil)
}

// ---------- Inventory ----------

type InventoryInput struct {
	Product           domain.ProductRef `json:"product"`
	QuantityAvailable int               `json:"quantityAvailable"`
}

func (c *Client) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	var out []domain.InventoryItem
	if err := c.do(ctx, http.MethodGet, "/inventory", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateInventory(ctx context.Context, in InventoryInput) (domain.InventoryItem, error) {
	var out domain.InventoryItem
	err := c.do(ctx, http.MethodPost, "/inventory", in, &out)
	return out, err
}

// GetInventoryByProduct returns nil without error when the product has no
// inventory record.
func (c *Client) GetInventoryByProduct(ctx context.Context, productID int64) (*domain.InventoryItem, error) {
	var out domain.InventoryItem
	err := c.do(ctx, http.MethodGet, "/inventory/product/"+strconv.FormatInt(productID, 10), nil, &out)
	if err != nil {
		return nil, nil
	}
	return &out, nil
}

func (c *Client) UpdateInventoryQuantity(ctx context.Context, id int64, quantity int) (domain.InventoryItem, error) {
	var out domain.InventoryItem
	body := map[string]int{"quantityAvailable": quantity}
	err := c.do(ctx, http.MethodPatch, "/inventory/"+strconv.FormatInt(id, 10), body, &out)
	return out, err
}

func (c *Client) DeleteInventory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/inventory/"+strconv.FormatInt(id, 10), nil, nil)
}

// UpdateStock applies a signed quantity delta to a product's stock level.
func (c *Client) UpdateStock(ctx context.Context, productID int64, quantityChange int) (domain.InventoryItem, error) {
	q := url.Values{}
	q.Set("productId", strconv.FormatInt(productID, 10))
	q.Set("quantityChange", strconv.Itoa(quantityChange))
	var out domain.InventoryItem
	err := c.do(ctx, http.MethodPut, "/inventory/update-stock?"+q.Encode(), nil, &out)
	return out, err
}

// ---------- Orders ----------

type OrderInput struct {
	OrderType   string             `json:"orderType"`
	Status      string             `json:"status"`
	ContactName string             `json:"contactName"`
	OrderDate   time.Time          `json:"orderDate"`
	Notes       string             `json:"notes,omitempty"`
	OrderItems  []domain.OrderItem `json:"orderItems"`
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	var out domain.Order
	err := c.do(ctx, http.MethodGet, "/orders/"+strconv.FormatInt(id, 10), nil, &out)
	return out, err
}

func (c *Client) CreateOrder(ctx context.Context, in OrderInput) (domain.Order, error) {
	var out domain.Order
	err := c.do(ctx, http.MethodPost, "/orders", in, &out)
	return out, err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) (domain.Order, error) {
	var out domain.Order
	body := map[string]string{"status": status}
	err := c.do(ctx, http.MethodPatch, "/orders/"+strconv.FormatInt(id, 10)+"/status", body, &out)
	return out, err
}
