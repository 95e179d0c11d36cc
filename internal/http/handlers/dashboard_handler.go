package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "stockdesk/internal/log"
	"stockdesk/internal/views"
)

type DashboardHandler struct {
	Queries *Queries
}

type daySalesRow struct {
	Label   string
	Revenue float64
	Pct     int // bar height relative to the best day
}

type stockSliceRow struct {
	Label string
	Count int
	Pct   int
	Class string
}

// Home renders the metrics cards and the two overview charts.
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	ctx := c.Context()
	products, perr := h.Queries.Products.Get(ctx)
	orders, oerr := h.Queries.Orders.Get(ctx)
	inventory, ierr := h.Queries.Inventory.Get(ctx)
	for _, err := range []error{perr, oerr, ierr} {
		if err != nil {
			applog.Error(c, "dashboard.load", err, nil)
			return render(c, "dashboard", fiber.Map{"Err": "Could not load dashboard data. Please try again."})
		}
	}

	now := time.Now()
	m := views.Metrics(products, orders, inventory, now)

	weekly := views.WeeklySales(orders, now)
	best := 0.0
	for _, d := range weekly {
		if d.Revenue > best {
			best = d.Revenue
		}
	}
	days := make([]daySalesRow, 0, len(weekly))
	for _, d := range weekly {
		pct := 0
		if best > 0 {
			pct = int(d.Revenue / best * 100)
		}
		days = append(days, daySalesRow{Label: d.Label, Revenue: d.Revenue, Pct: pct})
	}

	breakdown := views.StockBreakdown(inventory)
	total := 0
	for _, s := range breakdown {
		total += s.Count
	}
	slices := make([]stockSliceRow, 0, len(breakdown))
	for _, s := range breakdown {
		pct := 0
		if total > 0 {
			pct = s.Count * 100 / total
		}
		slices = append(slices, stockSliceRow{Label: s.Status.Label(), Count: s.Count, Pct: pct, Class: string(s.Status)})
	}

	return render(c, "dashboard", fiber.Map{
		"Metrics":   m,
		"Days":      days,
		"Breakdown": slices,
	})
}

// MetricsJSON serves the same numbers for programmatic use.
func (h *DashboardHandler) MetricsJSON(c *fiber.Ctx) error {
	ctx := c.Context()
	products, err := h.Queries.Products.Get(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "backend unavailable")
	}
	orders, err := h.Queries.Orders.Get(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "backend unavailable")
	}
	inventory, err := h.Queries.Inventory.Get(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "backend unavailable")
	}
	return c.JSON(views.Metrics(products, orders, inventory, time.Now()))
}
