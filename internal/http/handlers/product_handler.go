package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"stockdesk/internal/backend"
	applog "stockdesk/internal/log"
	"stockdesk/internal/validate"
	"stockdesk/internal/views"
)

type ProductHandler struct {
	Backend *backend.Client
	Queries *Queries
}

func productQueryOf(c *fiber.Ctx) views.ProductQuery {
	return views.ProductQuery{
		Search:   c.Query("q"),
		Category: c.Query("category", views.All),
		Sort:     c.Query("sort", "name"),
		Dir:      views.SortDir(validate.SortDir(c.Query("dir"), "asc")),
	}
}

// List renders the catalog table with search, category filter and sorting
// applied server-side.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	// A failed load still renders the page skeleton, just empty.
	products, err := h.Queries.Products.Get(c.Context())
	if err != nil {
		applog.Error(c, "products.load", err, nil)
		products = nil
	}
	q := productQueryOf(c)
	params := url.Values{}
	if q.Search != "" {
		params.Set("q", q.Search)
	}
	if q.Category != views.All {
		params.Set("category", q.Category)
	}
	data := fiber.Map{
		"Items":      views.FilterProducts(products, q),
		"Categories": views.Categories(products),
		"Query":      q,
		"SortLinks":  sortLinks("/products", params, q.Sort, q.Dir, views.Asc, "name", "category", "price", "createdAt"),
	}
	if err != nil {
		data["Err"] = "Could not load products. Please try again."
	}
	return render(c, "products", data)
}

// Create handles the add-product form. Validation failures re-render the
// table page with the dialog open and per-field messages.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	form, errs := validate.ProductFormOf(
		c.FormValue("name"),
		c.FormValue("description"),
		c.FormValue("category"),
		c.FormValue("price"),
	)
	if !errs.Ok() {
		applog.Security(c, "products.create.invalid", map[string]any{"fields": len(errs)})
		products, err := h.Queries.Products.Get(c.Context())
		if err != nil {
			products = nil
		}
		q := productQueryOf(c)
		return c.Status(fiber.StatusBadRequest).Render("products", fiber.Map{
			"Items":      views.FilterProducts(products, q),
			"Categories": views.Categories(products),
			"Query":      q,
			"SortLinks":  sortLinks("/products", url.Values{}, q.Sort, q.Dir, views.Asc, "name", "category", "price", "createdAt"),
			"Form":       form,
			"FormErrors": errs,
			"FormOpen":   true,
		})
	}

	created, err := h.Backend.CreateProduct(c.Context(), backend.ProductInput{
		Name:        form.Name,
		Description: form.Description,
		Category:    form.Category,
		Price:       form.Price,
	})
	if err != nil {
		applog.Error(c, "products.create", err, nil)
		return redirectErr(c, "/products", "Could not create the product. Please try again.")
	}
	h.Queries.Products.Invalidate()
	applog.Audit(c, "products.create", map[string]any{"product_id": created.ID})
	return redirectMsg(c, "/products", "Product created")
}

// Delete removes a product. The backend owns any cascade into inventory, so
// both caches are dropped.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid product id")
	}
	if err := h.Backend.DeleteProduct(c.Context(), id); err != nil {
		applog.Error(c, "products.delete", err, map[string]any{"product_id": id})
		return redirectErr(c, "/products", "Could not delete the product. Please try again.")
	}
	h.Queries.Products.Invalidate()
	h.Queries.Inventory.Invalidate()
	applog.Audit(c, "products.delete", map[string]any{"product_id": id})
	return redirectMsg(c, "/products", "Product deleted")
}
