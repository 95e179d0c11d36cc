package handlers

import (
	"time"

	"stockdesk/internal/backend"
	"stockdesk/internal/cart"
	"stockdesk/internal/domain"
	"stockdesk/internal/querycache"
)

// Queries are the cached reads every page goes through. Mutating handlers
// invalidate the keys they touch so the next render re-fetches.
type Queries struct {
	Products  *querycache.Query[[]domain.Product]
	Inventory *querycache.Query[[]domain.InventoryItem]
	Orders    *querycache.Query[[]domain.Order]
}

func NewQueries(be *backend.Client, ttl time.Duration) *Queries {
	return &Queries{
		Products:  querycache.New(ttl, be.ListProducts),
		Inventory: querycache.New(ttl, be.ListInventory),
		Orders:    querycache.New(ttl, be.ListOrders),
	}
}

type Deps struct {
	Dashboard *DashboardHandler
	Product   *ProductHandler
	Inventory *InventoryHandler
	Order     *OrderHandler
	Cart      *CartHandler
	Shop      *ShopHandler
}

func NewDeps(be *backend.Client, carts *cart.Store, cacheTTL time.Duration) *Deps {
	q := NewQueries(be, cacheTTL)
	return &Deps{
		Dashboard: &DashboardHandler{Queries: q},
		Product:   &ProductHandler{Backend: be, Queries: q},
		Inventory: &InventoryHandler{Backend: be, Queries: q},
		Order:     &OrderHandler{Backend: be, Queries: q},
		Cart:      &CartHandler{Backend: be, Queries: q, Carts: carts},
		Shop:      &ShopHandler{Queries: q},
	}
}
