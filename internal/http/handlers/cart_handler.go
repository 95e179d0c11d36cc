package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"stockdesk/internal/backend"
	"stockdesk/internal/cart"
	"stockdesk/internal/domain"
	applog "stockdesk/internal/log"
	"stockdesk/internal/validate"
)

type CartHandler struct {
	Backend *backend.Client
	Queries *Queries
	Carts   *cart.Store
}

func (h *CartHandler) ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return sid
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	ct := h.Carts.Get(h.ensureSID(c))
	return render(c, "cart", fiber.Map{
		"Items":        ct.Items(),
		"Total":        ct.Total(),
		"CustomerName": ct.CustomerName(),
	})
}

// Add puts one unit of a product into the session cart. The stock guard is a
// courtesy check against the locally known quantity; the backend stays the
// authority at order time.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("quantity"))
	ct := h.Carts.Get(h.ensureSID(c))

	inventory, err := h.Queries.Inventory.Get(c.Context())
	if err != nil {
		applog.Error(c, "cart.add.inventory", err, nil)
		return redirectErr(c, "/shop", "Could not check stock. Please try again.")
	}
	available := 0
	for _, it := range inventory {
		if it.Product.ID == productID {
			available = it.QuantityAvailable
			break
		}
	}
	if available <= 0 {
		applog.Security(c, "cart.add.outofstock", map[string]any{"product_id": productID})
		return redirectErr(c, "/shop", "This product is out of stock.")
	}
	if ct.Quantity(productID)+qty > available {
		applog.Security(c, "cart.add.overstock", map[string]any{"product_id": productID, "available": available})
		return redirectErr(c, "/shop", "You cannot add more than the available quantity.")
	}

	products, err := h.Queries.Products.Get(c.Context())
	if err != nil {
		applog.Error(c, "cart.add.products", err, nil)
		return redirectErr(c, "/shop", "Could not load the product. Please try again.")
	}
	for _, p := range products {
		if p.ID == productID {
			ct.AddItem(p.ID, p.Name, p.Price, qty)
			return redirectMsg(c, "/shop", p.Name+" added to cart")
		}
	}
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	qty := c.FormValue("quantity")
	n := 0
	if qty != "" {
		// Zero and negative values drop the line, so no clamping here.
		var err error
		n, err = parseInt(qty)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString("invalid quantity")
		}
	}
	h.Carts.Get(h.ensureSID(c)).UpdateQuantity(productID, n)
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	h.Carts.Get(h.ensureSID(c)).RemoveItem(productID)
	return c.Redirect("/cart")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	h.Carts.Get(h.ensureSID(c)).Clear()
	return c.Redirect("/cart")
}

// Checkout turns the cart into a PENDING sale order and clears it on
// success.
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	ct := h.Carts.Get(h.ensureSID(c))
	name := c.FormValue("customerName")
	ct.SetCustomerName(name)

	items := ct.Items()
	if len(items) == 0 {
		return c.Status(fiber.StatusBadRequest).Render("cart", fiber.Map{
			"Items": items, "Total": 0.0, "CustomerName": name,
			"Err": "Please add at least one product to your cart.",
		})
	}
	if len(name) < 2 {
		return c.Status(fiber.StatusBadRequest).Render("cart", fiber.Map{
			"Items": items, "Total": ct.Total(), "CustomerName": name,
			"Err": "Please enter a contact name.",
		})
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, domain.OrderItem{
			Product:    domain.ProductRef{ID: it.ProductID},
			Quantity:   it.Quantity,
			UnitPrice:  it.Price,
			TotalPrice: it.Price * float64(it.Quantity),
		})
	}
	created, err := h.Backend.CreateOrder(c.Context(), backend.OrderInput{
		OrderType:   domain.OrderSale,
		Status:      domain.StatusPending,
		ContactName: name,
		OrderDate:   time.Now(),
		OrderItems:  orderItems,
	})
	if err != nil {
		applog.Error(c, "cart.checkout", err, nil)
		return c.Status(fiber.StatusBadGateway).Render("cart", fiber.Map{
			"Items": items, "Total": ct.Total(), "CustomerName": name,
			"Err": "Could not place the order. Please try again.",
		})
	}
	ct.Clear()
	h.Queries.Orders.Invalidate()
	h.Queries.Inventory.Invalidate()
	applog.Audit(c, "cart.checkout", map[string]any{"order_id": created.ID, "items": len(orderItems)})
	return redirectMsg(c, "/orders", "Order created successfully")
}
