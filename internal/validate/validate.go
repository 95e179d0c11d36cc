package validate

import (
	"strconv"
	"strings"
)

// ID parses a positive decimal resource identifier.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Qty parses a cart quantity, clamped to a sane window to avoid abuse.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	}
	return n
}

// OrderType normalizes and checks the order direction enum.
func OrderType(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, s == "SALE" || s == "PURCHASE"
}

// OrderStatus checks the status enum used by the status-update action.
func OrderStatus(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "PENDING", "COMPLETED", "SHIPPED", "CANCELLED":
		return s, true
	}
	return s, false
}

// SortDir normalizes a sort direction, defaulting to the given fallback.
func SortDir(s, def string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return "asc"
	case "desc":
		return "desc"
	}
	return def
}
