// Package invoice turns an order into the line-item document the order page
// renders and the print/download exports embed.
package invoice

import (
	"fmt"
	"time"

	"stockdesk/internal/domain"
)

type Line struct {
	ProductID  int64
	Name       string
	Quantity   int
	UnitPrice  float64
	TotalPrice float64
}

type Invoice struct {
	Order       domain.Order
	Lines       []Line
	Subtotal    float64
	GeneratedAt time.Time
}

// Build resolves product names from the given catalog snapshot; items whose
// product is no longer listed fall back to "Product #<id>". Line totals are
// shown as stored on the order, not recomputed.
func Build(o domain.Order, products []domain.Product, now time.Time) Invoice {
	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	inv := Invoice{Order: o, GeneratedAt: now}
	for _, it := range o.OrderItems {
		name, ok := names[it.Product.ID]
		if !ok {
			name = fmt.Sprintf("Product #%d", it.Product.ID)
		}
		inv.Lines = append(inv.Lines, Line{
			ProductID:  it.Product.ID,
			Name:       name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
		inv.Subtotal += it.TotalPrice
	}
	return inv
}

// FileName is the attachment name used by the download export.
func FileName(orderID int64) string {
	return fmt.Sprintf("Invoice-%d.html", orderID)
}
