package views

import (
	"time"

	"stockdesk/internal/domain"
)

// placeholderGrowth stands in until month-over-month history is available
// from the backend.
const placeholderGrowth = 18.2

const lowStockThreshold = 10

// Metrics reduces the three already-fetched collections into the dashboard
// cards. Monthly revenue counts COMPLETED orders placed in now's calendar
// month and year.
func Metrics(products []domain.Product, orders []domain.Order, inventory []domain.InventoryItem, now time.Time) domain.DashboardMetrics {
	m := domain.DashboardMetrics{
		TotalProducts: len(products),
		MonthlyGrowth: placeholderGrowth,
	}
	for _, it := range inventory {
		if it.QuantityAvailable < lowStockThreshold {
			m.LowStockItems++
		}
	}
	for _, o := range orders {
		if o.Status != domain.StatusCompleted {
			continue
		}
		m.CompletedOrders++
		if o.OrderDate.Year() == now.Year() && o.OrderDate.Month() == now.Month() {
			m.MonthlyRevenue += o.Total()
		}
	}
	return m
}

type StockSlice struct {
	Status domain.StockStatus
	Count  int
}

// StockBreakdown counts inventory records per stock bucket, in a fixed
// display order for the chart legend.
func StockBreakdown(inventory []domain.InventoryItem) []StockSlice {
	order := []domain.StockStatus{domain.Optimal, domain.LowStock, domain.OutOfStock, domain.OverStock}
	counts := make(map[domain.StockStatus]int, 4)
	for _, it := range inventory {
		counts[domain.StockStatusOf(it.QuantityAvailable)]++
	}
	out := make([]StockSlice, 0, len(order))
	for _, s := range order {
		out = append(out, StockSlice{Status: s, Count: counts[s]})
	}
	return out
}

type DayRevenue struct {
	Label   string // weekday abbreviation
	Revenue float64
}

// WeeklySales buckets COMPLETED order revenue into the last seven calendar
// days, oldest first, today last.
func WeeklySales(orders []domain.Order, now time.Time) []DayRevenue {
	days := make([]DayRevenue, 7)
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		d := now.AddDate(0, 0, i-6)
		key := d.Format("2006-01-02")
		days[i] = DayRevenue{Label: d.Format("Mon")}
		index[key] = i
	}
	for _, o := range orders {
		if o.Status != domain.StatusCompleted {
			continue
		}
		if i, ok := index[o.OrderDate.Format("2006-01-02")]; ok {
			days[i].Revenue += o.Total()
		}
	}
	return days
}
