package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Register mounts every route; main and the handler tests wire the same app
// through this.
func Register(app *fiber.App, d *Deps) {
	// Pages
	app.Get("/", d.Dashboard.Home)
	app.Get("/products", d.Product.List)
	app.Get("/inventory", d.Inventory.List)
	app.Get("/orders", d.Order.List)
	app.Get("/orders/new", d.Order.NewForm)
	app.Get("/order/:id", d.Order.View)
	app.Get("/order/:id/print", d.Order.Print)
	app.Get("/order/:id/download", d.Order.Download)
	app.Get("/shop", d.Shop.Grid)
	app.Get("/cart", d.Cart.View)

	// Mutations
	app.Post("/products", d.Product.Create)
	app.Post("/products/:id/delete", d.Product.Delete)
	app.Post("/inventory", d.Inventory.Create)
	app.Post("/inventory/:id/adjust", d.Inventory.Adjust)
	app.Post("/inventory/:id/delete", d.Inventory.Delete)
	app.Post("/orders", d.Order.Create)
	app.Post("/orders/:id/status", d.Order.UpdateStatus)
	app.Post("/cart", d.Cart.Add)
	app.Post("/cart/update", d.Cart.Update)
	app.Post("/cart/remove", d.Cart.Remove)
	app.Post("/cart/clear", d.Cart.Clear)
	app.Post("/checkout", d.Cart.Checkout)

	// API
	api := app.Group("/api/v1")
	api.Get("/metrics", limiter.New(limiter.Config{Max: 20, Expiration: 30 * time.Second}), d.Dashboard.MetricsJSON)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})
}
