package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"stockdesk/internal/backend"
	"stockdesk/internal/cart"
	"stockdesk/internal/domain"
	"stockdesk/internal/http/handlers"
)

// fakeBackend is an in-memory stand-in for the REST API the app talks to.
type fakeBackend struct {
	srv *httptest.Server

	mu            sync.Mutex
	products      []domain.Product
	inventory     []domain.InventoryItem
	orders        []domain.Order
	createdOrders []backend.OrderInput
	lastStatus    string
}

func seedTime() time.Time {
	return time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{
		products: []domain.Product{
			{ID: 3, Name: "Mechanical Keyboard", Description: "Tactile switches", Category: "Electronics", Price: 89.99, CreatedAt: seedTime()},
			{ID: 4, Name: "Office Chair", Description: "Ergonomic and comfy", Category: "Furniture", Price: 199.99, CreatedAt: seedTime()},
			{ID: 5, Name: "USB Cable", Description: "Braided cable", Category: "Electronics", Price: 9.99, CreatedAt: seedTime()},
		},
		inventory: []domain.InventoryItem{
			{ID: 1, Product: domain.Product{ID: 3, Name: "Mechanical Keyboard", Category: "Electronics", Price: 89.99}, QuantityAvailable: 10},
			{ID: 2, Product: domain.Product{ID: 4, Name: "Office Chair", Category: "Furniture", Price: 199.99}, QuantityAvailable: 0},
			{ID: 3, Product: domain.Product{ID: 5, Name: "USB Cable", Category: "Electronics", Price: 9.99}, QuantityAvailable: 2},
		},
		orders: []domain.Order{
			{
				ID: 7, OrderType: domain.OrderSale, Status: domain.StatusCompleted,
				ContactName: "Bob", OrderDate: seedTime(),
				OrderItems: []domain.OrderItem{
					{Product: domain.ProductRef{ID: 3}, Quantity: 2, UnitPrice: 89.99, TotalPrice: 179.98},
				},
			},
		},
	}

	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		writeJSON(w, fb.products)
	})
	mux.HandleFunc("POST /products", func(w http.ResponseWriter, r *http.Request) {
		var in backend.ProductInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		fb.mu.Lock()
		defer fb.mu.Unlock()
		p := domain.Product{
			ID: int64(100 + len(fb.products)), Name: in.Name, Description: in.Description,
			Category: in.Category, Price: in.Price, CreatedAt: time.Now(),
		}
		fb.products = append(fb.products, p)
		writeJSON(w, p)
	})
	mux.HandleFunc("GET /inventory", func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		writeJSON(w, fb.inventory)
	})
	mux.HandleFunc("POST /inventory", func(w http.ResponseWriter, r *http.Request) {
		var in backend.InventoryInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		fb.mu.Lock()
		defer fb.mu.Unlock()
		it := domain.InventoryItem{
			ID:                int64(100 + len(fb.inventory)),
			Product:           domain.Product{ID: in.Product.ID},
			QuantityAvailable: in.QuantityAvailable,
		}
		fb.inventory = append(fb.inventory, it)
		writeJSON(w, it)
	})
	mux.HandleFunc("PUT /inventory/update-stock", func(w http.ResponseWriter, r *http.Request) {
		productID, _ := strconv.ParseInt(r.URL.Query().Get("productId"), 10, 64)
		delta, _ := strconv.Atoi(r.URL.Query().Get("quantityChange"))
		fb.mu.Lock()
		defer fb.mu.Unlock()
		for i, it := range fb.inventory {
			if it.Product.ID == productID {
				fb.inventory[i].QuantityAvailable += delta
				writeJSON(w, fb.inventory[i])
				return
			}
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		writeJSON(w, fb.orders)
	})
	mux.HandleFunc("GET /orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		fb.mu.Lock()
		defer fb.mu.Unlock()
		for _, o := range fb.orders {
			if o.ID == id {
				writeJSON(w, o)
				return
			}
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("POST /orders", func(w http.ResponseWriter, r *http.Request) {
		var in backend.OrderInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		fb.mu.Lock()
		defer fb.mu.Unlock()
		fb.createdOrders = append(fb.createdOrders, in)
		o := domain.Order{
			ID: int64(100 + len(fb.orders)), OrderType: in.OrderType, Status: in.Status,
			ContactName: in.ContactName, OrderDate: in.OrderDate, Notes: in.Notes,
			OrderItems: in.OrderItems,
		}
		fb.orders = append(fb.orders, o)
		writeJSON(w, o)
	})
	mux.HandleFunc("PATCH /orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		fb.mu.Lock()
		defer fb.mu.Unlock()
		fb.lastStatus = body["status"]
		for i, o := range fb.orders {
			if o.ID == id {
				fb.orders[i].Status = body["status"]
				writeJSON(w, fb.orders[i])
				return
			}
		}
		http.NotFound(w, r)
	})

	fb.srv = httptest.NewServer(mux)
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBackend) created() []backend.OrderInput {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := make([]backend.OrderInput, len(fb.createdOrders))
	copy(out, fb.createdOrders)
	return out
}

// newApp wires the same app main builds, pointed at the fake backend.
func newApp(t *testing.T) (*fiber.App, *fakeBackend) {
	t.Helper()
	fb := newFakeBackend(t)
	engine := handlers.NewEngine("../../web/templates")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	deps := handlers.NewDeps(backend.New(fb.srv.URL, 5*time.Second), cart.NewStore(), time.Minute)
	handlers.Register(app, deps)
	return app, fb
}

func postForm(path string, form url.Values, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
