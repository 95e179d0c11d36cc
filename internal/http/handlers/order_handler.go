package handlers

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"stockdesk/internal/backend"
	"stockdesk/internal/domain"
	"stockdesk/internal/invoice"
	applog "stockdesk/internal/log"
	"stockdesk/internal/validate"
	"stockdesk/internal/views"
)

type OrderHandler struct {
	Backend *backend.Client
	Queries *Queries
}

type orderRow struct {
	domain.Order
	DateLabel string
	Amount    float64
}

func orderQueryOf(c *fiber.Ctx) views.OrderQuery {
	return views.OrderQuery{
		Search: c.Query("q"),
		Status: c.Query("status", views.All),
		Type:   c.Query("type", views.All),
		Sort:   c.Query("sort", "date"),
		Dir:    views.SortDir(validate.SortDir(c.Query("dir"), "desc")),
	}
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.Queries.Orders.Get(c.Context())
	if err != nil {
		applog.Error(c, "orders.load", err, nil)
		orders = nil
	}
	q := orderQueryOf(c)
	rows := make([]orderRow, 0, len(orders))
	for _, o := range views.FilterOrders(orders, q) {
		rows = append(rows, orderRow{Order: o, DateLabel: o.OrderDate.Format("Jan 2, 2006"), Amount: o.Total()})
	}
	params := url.Values{}
	if q.Search != "" {
		params.Set("q", q.Search)
	}
	if q.Status != views.All {
		params.Set("status", q.Status)
	}
	if q.Type != views.All {
		params.Set("type", q.Type)
	}
	data := fiber.Map{
		"Rows":      rows,
		"Query":     q,
		"Statuses":  []string{domain.StatusPending, domain.StatusCompleted, domain.StatusShipped, domain.StatusCancelled},
		"SortLinks": sortLinks("/orders", params, q.Sort, q.Dir, views.Desc, "id", "date", "amount"),
	}
	if err != nil {
		data["Err"] = "Failed to fetch orders. Please try again later."
	}
	return render(c, "orders", data)
}

// NewForm renders the compose-order page with the product selector.
func (h *OrderHandler) NewForm(c *fiber.Ctx) error {
	products, err := h.Queries.Products.Get(c.Context())
	if err != nil {
		applog.Error(c, "orders.new.load", err, nil)
		return render(c, "order_new", fiber.Map{"Err": "Failed to load products. Please try again."})
	}
	return render(c, "order_new", fiber.Map{"Products": products})
}

// Create submits a composed order. Item totals are fixed at creation time as
// quantity x unit price and sent to the backend as-is.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	form, errs := validate.OrderFormOf(
		c.FormValue("orderType"),
		c.FormValue("contactName"),
		c.FormValue("notes"),
		formValues(c, "productId"),
		formValues(c, "quantity"),
		formValues(c, "unitPrice"),
	)
	if !errs.Ok() {
		applog.Security(c, "orders.create.invalid", map[string]any{"fields": len(errs)})
		products, _ := h.Queries.Products.Get(c.Context())
		return c.Status(fiber.StatusBadRequest).Render("order_new", fiber.Map{
			"Products":   products,
			"Form":       form,
			"FormErrors": errs,
		})
	}

	created, err := h.Backend.CreateOrder(c.Context(), backend.OrderInput{
		OrderType:   form.OrderType,
		Status:      domain.StatusPending,
		ContactName: form.ContactName,
		OrderDate:   time.Now(),
		Notes:       form.Notes,
		OrderItems:  form.Items,
	})
	if err != nil {
		applog.Error(c, "orders.create", err, nil)
		return redirectErr(c, "/orders/new", "An error occurred. Please try again.")
	}
	h.Queries.Orders.Invalidate()
	h.Queries.Inventory.Invalidate()
	applog.Audit(c, "orders.create", map[string]any{"order_id": created.ID, "type": form.OrderType})
	return redirectMsg(c, "/orders", "Order created")
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid order id")
	}
	status, ok := validate.OrderStatus(c.FormValue("status"))
	if !ok {
		applog.Security(c, "orders.status.invalid", map[string]any{"order_id": id, "status": status})
		return c.Status(fiber.StatusBadRequest).SendString("invalid status")
	}
	if _, err := h.Backend.UpdateOrderStatus(c.Context(), id, status); err != nil {
		applog.Error(c, "orders.status", err, map[string]any{"order_id": id})
		return redirectErr(c, "/orders", "Could not update the order status. Please try again.")
	}
	h.Queries.Orders.Invalidate()
	applog.Audit(c, "orders.status", map[string]any{"order_id": id, "status": status})
	return redirectMsg(c, "/orders", "Order status updated")
}

func (h *OrderHandler) loadInvoice(c *fiber.Ctx) (invoice.Invoice, error) {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return invoice.Invoice{}, fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}
	o, err := h.Backend.GetOrder(c.Context(), id)
	if err != nil {
		return invoice.Invoice{}, err
	}
	// Name resolution only; a stale catalog snapshot just degrades labels.
	products, err := h.Queries.Products.Get(c.Context())
	if err != nil {
		products = nil
	}
	return invoice.Build(o, products, time.Now()), nil
}

// View renders the on-screen invoice for one order.
func (h *OrderHandler) View(c *fiber.Ctx) error {
	inv, err := h.loadInvoice(c)
	if err != nil {
		applog.Error(c, "orders.view", err, nil)
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	return render(c, "order", fiber.Map{"Invoice": inv})
}

// Print serves a standalone HTML snapshot that triggers the browser's print
// dialog; meant to be opened in a new tab.
func (h *OrderHandler) Print(c *fiber.Ctx) error {
	inv, err := h.loadInvoice(c)
	if err != nil {
		applog.Error(c, "orders.print", err, nil)
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	return c.Render("invoice_export", fiber.Map{"Invoice": inv, "AutoPrint": true})
}

// Download serves the same snapshot as a downloadable file.
func (h *OrderHandler) Download(c *fiber.Ctx) error {
	inv, err := h.loadInvoice(c)
	if err != nil {
		applog.Error(c, "orders.download", err, nil)
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+invoice.FileName(inv.Order.ID)+`"`)
	return c.Render("invoice_export", fiber.Map{"Invoice": inv, "AutoPrint": false})
}
