package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockdesk/internal/domain"
	applog "stockdesk/internal/log"
	"stockdesk/internal/views"
)

// ShopHandler renders the customer-facing item grid that feeds the cart.
type ShopHandler struct {
	Queries *Queries
}

type shopCard struct {
	domain.Product
	QuantityAvailable int
	OutOfStock        bool
	LowStock          bool // under 5 left, badge on the card
}

func (h *ShopHandler) Grid(c *fiber.Ctx) error {
	ctx := c.Context()
	loadErr := ""
	products, err := h.Queries.Products.Get(ctx)
	if err != nil {
		applog.Error(c, "shop.load", err, nil)
		products, loadErr = nil, "Could not load the catalog. Please try again."
	}
	inventory, err := h.Queries.Inventory.Get(ctx)
	if err != nil {
		applog.Error(c, "shop.inventory", err, nil)
		inventory, loadErr = nil, "Could not load stock levels. Please try again."
	}

	stock := make(map[int64]int, len(inventory))
	for _, it := range inventory {
		stock[it.Product.ID] = it.QuantityAvailable
	}

	q := views.ProductQuery{
		Search:   c.Query("q"),
		Category: c.Query("category", views.All),
	}
	cards := make([]shopCard, 0, len(products))
	for _, p := range views.FilterProducts(products, q) {
		qty := stock[p.ID]
		cards = append(cards, shopCard{
			Product:           p,
			QuantityAvailable: qty,
			OutOfStock:        qty <= 0,
			LowStock:          qty > 0 && qty < 5,
		})
	}
	data := fiber.Map{
		"Cards":      cards,
		"Categories": views.Categories(products),
		"Query":      q,
	}
	if loadErr != "" {
		data["Err"] = loadErr
	}
	return render(c, "shop", data)
}
