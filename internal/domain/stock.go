package domain

type StockStatus string

const (
	OutOfStock StockStatus = "out-of-stock"
	LowStock   StockStatus = "low-stock"
	Optimal    StockStatus = "optimal"
	OverStock  StockStatus = "over-stock"
)

// StockStatusOf buckets a quantity by the fixed thresholds used across the
// inventory views: 0 is out, 1-9 low, 10-40 optimal, 41+ over.
func StockStatusOf(quantity int) StockStatus {
	switch {
	case quantity == 0:
		return OutOfStock
	case quantity < 10:
		return LowStock
	case quantity > 40:
		return OverStock
	default:
		return Optimal
	}
}

func (s StockStatus) Label() string {
	switch s {
	case OutOfStock:
		return "Out of Stock"
	case LowStock:
		return "Low Stock"
	case OverStock:
		return "Overstock"
	default:
		return "Optimal"
	}
}
