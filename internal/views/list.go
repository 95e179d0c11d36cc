// Package views derives what the tables and the dashboard show. Everything
// here is a pure function of (collection, query state); recomputing on every
// request is fine at the collection sizes this UI handles.
package views

import (
	"sort"
	"strconv"
	"strings"

	"stockdesk/internal/domain"
)

type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

// All is the selector value meaning "no filter".
const All = "all"

// NextSort implements the header-click rule: clicking the active field flips
// the direction, clicking a new field selects it at the table's default
// direction.
func NextSort(curField string, curDir SortDir, clicked string, def SortDir) (string, SortDir) {
	if curField == clicked {
		if curDir == Asc {
			return clicked, Desc
		}
		return clicked, Asc
	}
	return clicked, def
}

func matches(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func compareText(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// sortBy sorts ascending by less, then reverses for descending, so the two
// directions are exact mirror images even across equal keys.
func sortBy[T any](items []T, dir SortDir, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
	if dir == Desc {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
}

// Categories lists distinct category labels in first-seen order.
func Categories(products []domain.Product) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// ---------- Products ----------

type ProductQuery struct {
	Search   string
	Category string
	Sort     string // name | category | price | createdAt
	Dir      SortDir
}

func (q ProductQuery) withDefaults() ProductQuery {
	if q.Category == "" {
		q.Category = All
	}
	if q.Sort == "" {
		q.Sort = "name"
	}
	if q.Dir == "" {
		q.Dir = Asc
	}
	return q
}

func FilterProducts(products []domain.Product, q ProductQuery) []domain.Product {
	q = q.withDefaults()
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !matches(q.Search, p.Name, p.Description) {
			continue
		}
		if q.Category != All && p.Category != q.Category {
			continue
		}
		out = append(out, p)
	}
	sortBy(out, q.Dir, func(a, b domain.Product) bool {
		switch q.Sort {
		case "category":
			return compareText(a.Category, b.Category) < 0
		case "price":
			return a.Price < b.Price
		case "createdAt":
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return compareText(a.Name, b.Name) < 0
		}
	})
	return out
}

// ---------- Inventory ----------

type InventoryQuery struct {
	Search   string
	Category string
	Stock    string // all | out-of-stock | low-stock | optimal | over-stock
	Sort     string // name | category | quantity | price
	Dir      SortDir
}

func (q InventoryQuery) withDefaults() InventoryQuery {
	if q.Category == "" {
		q.Category = All
	}
	if q.Stock == "" {
		q.Stock = All
	}
	if q.Sort == "" {
		q.Sort = "name"
	}
	if q.Dir == "" {
		q.Dir = Asc
	}
	return q
}

func FilterInventory(items []domain.InventoryItem, q InventoryQuery) []domain.InventoryItem {
	q = q.withDefaults()
	out := make([]domain.InventoryItem, 0, len(items))
	for _, it := range items {
		if !matches(q.Search, it.Product.Name, it.Product.Description) {
			continue
		}
		if q.Category != All && it.Product.Category != q.Category {
			continue
		}
		if q.Stock != All && string(domain.StockStatusOf(it.QuantityAvailable)) != q.Stock {
			continue
		}
		out = append(out, it)
	}
	sortBy(out, q.Dir, func(a, b domain.InventoryItem) bool {
		switch q.Sort {
		case "category":
			return compareText(a.Product.Category, b.Product.Category) < 0
		case "quantity":
			return a.QuantityAvailable < b.QuantityAvailable
		case "price":
			return a.Product.Price < b.Product.Price
		default:
			return compareText(a.Product.Name, b.Product.Name) < 0
		}
	})
	return out
}

// InventoryCategories mirrors Categories for the inventory table, which
// filters on the owning product's category.
func InventoryCategories(items []domain.InventoryItem) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range items {
		if !seen[it.Product.Category] {
			seen[it.Product.Category] = true
			out = append(out, it.Product.Category)
		}
	}
	return out
}

// ---------- Orders ----------

type OrderQuery struct {
	Search string
	Status string // all | PENDING | COMPLETED | SHIPPED | CANCELLED
	Type   string // all | SALE | PURCHASE
	Sort   string // date | amount | id
	Dir    SortDir
}

func (q OrderQuery) withDefaults() OrderQuery {
	if q.Status == "" {
		q.Status = All
	}
	if q.Type == "" {
		q.Type = All
	}
	if q.Sort == "" {
		q.Sort = "date"
	}
	if q.Dir == "" {
		q.Dir = Desc
	}
	return q
}

// FilterOrders searches the contact name and the decimal order id; the
// orders table sorts newest-first by default.
func FilterOrders(orders []domain.Order, q OrderQuery) []domain.Order {
	q = q.withDefaults()
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if !matches(q.Search, o.ContactName, strconv.FormatInt(o.ID, 10)) {
			continue
		}
		if q.Status != All && o.Status != q.Status {
			continue
		}
		if q.Type != All && o.OrderType != q.Type {
			continue
		}
		out = append(out, o)
	}
	sortBy(out, q.Dir, func(a, b domain.Order) bool {
		switch q.Sort {
		case "amount":
			return a.Total() < b.Total()
		case "id":
			return a.ID < b.ID
		default:
			return a.OrderDate.Before(b.OrderDate)
		}
	})
	return out
}
