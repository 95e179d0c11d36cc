package handlers

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"stockdesk/internal/backend"
	"stockdesk/internal/domain"
	applog "stockdesk/internal/log"
	"stockdesk/internal/validate"
	"stockdesk/internal/views"
)

type InventoryHandler struct {
	Backend *backend.Client
	Queries *Queries
}

type inventoryRow struct {
	domain.InventoryItem
	Status           domain.StockStatus
	StatusLabel      string
	LastUpdatedLabel string
}

func inventoryQueryOf(c *fiber.Ctx) views.InventoryQuery {
	return views.InventoryQuery{
		Search:   c.Query("q"),
		Category: c.Query("category", views.All),
		Stock:    c.Query("stock", views.All),
		Sort:     c.Query("sort", "name"),
		Dir:      views.SortDir(validate.SortDir(c.Query("dir"), "asc")),
	}
}

func (h *InventoryHandler) page(c *fiber.Ctx, extra fiber.Map) error {
	ctx := c.Context()
	loadErr := ""
	items, err := h.Queries.Inventory.Get(ctx)
	if err != nil {
		applog.Error(c, "inventory.load", err, nil)
		items, loadErr = nil, "Could not load inventory. Please try again."
	}
	products, err := h.Queries.Products.Get(ctx)
	if err != nil {
		applog.Error(c, "inventory.products.load", err, nil)
		products, loadErr = nil, "Could not load products. Please try again."
	}

	q := inventoryQueryOf(c)
	rows := make([]inventoryRow, 0, len(items))
	for _, it := range views.FilterInventory(items, q) {
		st := domain.StockStatusOf(it.QuantityAvailable)
		last := "Never"
		if it.LastUpdated != nil {
			last = it.LastUpdated.Format("Jan 2, 2006")
		}
		rows = append(rows, inventoryRow{InventoryItem: it, Status: st, StatusLabel: st.Label(), LastUpdatedLabel: last})
	}

	// The product picker offers only products with no inventory record yet.
	tracked := make(map[int64]bool, len(items))
	for _, it := range items {
		tracked[it.Product.ID] = true
	}
	var available []domain.Product
	for _, p := range products {
		if !tracked[p.ID] {
			available = append(available, p)
		}
	}

	params := url.Values{}
	if q.Search != "" {
		params.Set("q", q.Search)
	}
	if q.Category != views.All {
		params.Set("category", q.Category)
	}
	if q.Stock != views.All {
		params.Set("stock", q.Stock)
	}
	data := fiber.Map{
		"Rows":              rows,
		"Categories":        views.InventoryCategories(items),
		"AvailableProducts": available,
		"Query":             q,
		"SortLinks":         sortLinks("/inventory", params, q.Sort, q.Dir, views.Asc, "name", "category", "quantity", "price"),
	}
	if loadErr != "" {
		data["Err"] = loadErr
	}
	for k, v := range extra {
		data[k] = v
	}
	if extra != nil {
		if _, bad := extra["FormErrors"]; bad {
			return c.Status(fiber.StatusBadRequest).Render("inventory", data)
		}
	}
	return render(c, "inventory", data)
}

func (h *InventoryHandler) List(c *fiber.Ctx) error {
	return h.page(c, nil)
}

// Create adds an inventory record. The one-record-per-product rule is
// approximated against a fresh snapshot; the backend remains the authority.
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	form, errs := validate.InventoryFormOf(c.FormValue("productId"), c.FormValue("quantityAvailable"))
	if !errs.Ok() {
		applog.Security(c, "inventory.create.invalid", map[string]any{"fields": len(errs)})
		return h.page(c, fiber.Map{"FormErrors": errs, "FormOpen": true})
	}

	fresh, err := h.Backend.ListInventory(c.Context())
	if err != nil {
		applog.Error(c, "inventory.create.snapshot", err, nil)
		return redirectErr(c, "/inventory", "Could not verify inventory. Please try again.")
	}
	for _, it := range fresh {
		if it.Product.ID == form.ProductID {
			applog.Security(c, "inventory.create.duplicate", map[string]any{"product_id": form.ProductID})
			return h.page(c, fiber.Map{
				"FormErrors": validate.FieldErrors{"productId": "This product already has an inventory record."},
				"FormOpen":   true,
			})
		}
	}

	created, err := h.Backend.CreateInventory(c.Context(), backend.InventoryInput{
		Product:           domain.ProductRef{ID: form.ProductID},
		QuantityAvailable: form.QuantityAvailable,
	})
	if err != nil {
		applog.Error(c, "inventory.create", err, map[string]any{"product_id": form.ProductID})
		return redirectErr(c, "/inventory", "Could not add the inventory record. Please try again.")
	}
	h.Queries.Inventory.Invalidate()
	applog.Audit(c, "inventory.create", map[string]any{"inventory_id": created.ID, "product_id": form.ProductID})
	return redirectMsg(c, "/inventory", "Inventory record added")
}

// Adjust applies a signed stock delta through the backend's update-stock
// operation.
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid product id")
	}
	delta, err := strconv.Atoi(strings.TrimSpace(c.FormValue("delta")))
	if err != nil || delta == 0 {
		return c.Status(fiber.StatusBadRequest).SendString("invalid delta")
	}
	if _, err := h.Backend.UpdateStock(c.Context(), productID, delta); err != nil {
		applog.Error(c, "inventory.adjust", err, map[string]any{"product_id": productID, "delta": delta})
		return redirectErr(c, "/inventory", "Could not update stock. Please try again.")
	}
	h.Queries.Inventory.Invalidate()
	applog.Audit(c, "inventory.adjust", map[string]any{"product_id": productID, "delta": delta})
	return redirectMsg(c, "/inventory", "Stock updated")
}

func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid inventory id")
	}
	if err := h.Backend.DeleteInventory(c.Context(), id); err != nil {
		applog.Error(c, "inventory.delete", err, map[string]any{"inventory_id": id})
		return redirectErr(c, "/inventory", "Could not delete the record. Please try again.")
	}
	h.Queries.Inventory.Invalidate()
	applog.Audit(c, "inventory.delete", map[string]any{"inventory_id": id})
	return redirectMsg(c, "/inventory", "Inventory record deleted")
}
