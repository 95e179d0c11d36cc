package domain

import "time"

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductRef is the shape the backend expects when an entity points at a
// product by id only.
type ProductRef struct {
	ID int64 `json:"id"`
}

type InventoryItem struct {
	ID                int64      `json:"id"`
	Product           Product    `json:"product"`
	QuantityAvailable int        `json:"quantityAvailable"`
	LastUpdated       *time.Time `json:"lastUpdated"`
}

const (
	OrderSale     = "SALE"
	OrderPurchase = "PURCHASE"
)

const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusShipped   = "SHIPPED"
	StatusCancelled = "CANCELLED"
)

type OrderItem struct {
	Product    ProductRef `json:"product"`
	Quantity   int        `json:"quantity"`
	UnitPrice  float64    `json:"unitPrice"`
	TotalPrice float64    `json:"totalPrice"`
}

type Order struct {
	ID          int64       `json:"id"`
	OrderType   string      `json:"orderType"` // SALE | PURCHASE
	Status      string      `json:"status"`    // PENDING | COMPLETED | SHIPPED | CANCELLED
	ContactName string      `json:"contactName"`
	OrderDate   time.Time   `json:"orderDate"`
	Notes       string      `json:"notes,omitempty"`
	OrderItems  []OrderItem `json:"orderItems"`
}

// Total sums the item totals as stored; totalPrice is supplied at creation
// time and is not recomputed here.
func (o Order) Total() float64 {
	sum := 0.0
	for _, it := range o.OrderItems {
		sum += it.TotalPrice
	}
	return sum
}

// CartItem lives only in process memory for the duration of a session.
type CartItem struct {
	ProductID int64
	Name      string
	Price     float64
	Quantity  int
}

type DashboardMetrics struct {
	TotalProducts   int     `json:"totalProducts"`
	CompletedOrders int     `json:"completedOrders"`
	LowStockItems   int     `json:"lowStockItems"`
	MonthlyRevenue  float64 `json:"monthlyRevenue"`
	MonthlyGrowth   float64 `json:"monthlyGrowth"`
}
