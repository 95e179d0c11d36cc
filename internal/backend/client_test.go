package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stockdesk/internal/backend"
	"stockdesk/internal/domain"
)

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/products" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":3,"name":"Mechanical Keyboard","price":89.99,"category":"Electronics"}]`))
	}))
	defer srv.Close()

	c := backend.New(srv.URL, 5*time.Second)
	products, err := c.ListProducts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 1 || products[0].Name != "Mechanical Keyboard" {
		t.Fatalf("decoded: %+v", products)
	}
}

func TestNon2xxSurfacesAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := backend.New(srv.URL, 5*time.Second)
	_, err := c.ListOrders(context.Background())
	if err == nil {
		t.Fatal("want error on 500")
	}
	if !strings.Contains(err.Error(), "status 500") || !strings.Contains(err.Error(), "/orders") {
		t.Fatalf("error should name the call and status: %v", err)
	}
}

func TestCreateOrderSendsJSON(t *testing.T) {
	var got backend.OrderInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type: %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":42,"orderType":"SALE","status":"PENDING"}`))
	}))
	defer srv.Close()

	c := backend.New(srv.URL, 5*time.Second)
	created, err := c.CreateOrder(context.Background(), backend.OrderInput{
		OrderType:   domain.OrderSale,
		Status:      domain.StatusPending,
		ContactName: "Alice",
		OrderDate:   time.Now(),
		OrderItems: []domain.OrderItem{
			{Product: domain.ProductRef{ID: 3}, Quantity: 2, UnitPrice: 89.99, TotalPrice: 179.98},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID != 42 {
		t.Fatalf("created: %+v", created)
	}
	if got.ContactName != "Alice" || len(got.OrderItems) != 1 || got.OrderItems[0].Product.ID != 3 {
		t.Fatalf("payload: %+v", got)
	}
}

func TestUpdateStockQueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/inventory/update-stock" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("productId") != "3" || q.Get("quantityChange") != "-2" {
			t.Errorf("query: %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"quantityAvailable":8,"product":{"id":3}}`))
	}))
	defer srv.Close()

	c := backend.New(srv.URL, 5*time.Second)
	it, err := c.UpdateStock(context.Background(), 3, -2)
	if err != nil {
		t.Fatal(err)
	}
	if it.QuantityAvailable != 8 {
		t.Fatalf("decoded: %+v", it)
	}
}

func TestUpdateOrderStatusBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/orders/7/status" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["status"] != "SHIPPED" {
			t.Errorf("body: %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"status":"SHIPPED"}`))
	}))
	defer srv.Close()

	c := backend.New(srv.URL, 5*time.Second)
	o, err := c.UpdateOrderStatus(context.Background(), 7, domain.StatusShipped)
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != domain.StatusShipped {
		t.Fatalf("decoded: %+v", o)
	}
}

func TestGetInventoryByProductAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := backend.New(srv.URL, 5*time.Second)
	it, err := c.GetInventoryByProduct(context.Background(), 99)
	if err != nil {
		t.Fatal(err)
	}
	if it != nil {
		t.Fatalf("want nil for missing record, got %+v", it)
	}
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "//") {
			t.Errorf("double slash in path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := backend.New(srv.URL+"/", 5*time.Second)
	if _, err := c.ListInventory(context.Background()); err != nil {
		t.Fatal(err)
	}
}
