package validate

import (
	"strconv"
	"strings"

	"stockdesk/internal/domain"
)

// FieldErrors maps field name to a user-readable message; an empty map means
// the form passed.
type FieldErrors map[string]string

func (e FieldErrors) Ok() bool { return len(e) == 0 }

type ProductForm struct {
	Name        string
	Description string
	Category    string
	Price       float64
}

// ProductFormOf checks the create-product schema: name >= 2 chars,
// description >= 5, category >= 2, price > 0.
func ProductFormOf(name, description, category, price string) (ProductForm, FieldErrors) {
	errs := FieldErrors{}
	f := ProductForm{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Category:    strings.TrimSpace(category),
	}
	if len(f.Name) < 2 {
		errs["name"] = "Product name must be at least 2 characters."
	}
	if len(f.Description) < 5 {
		errs["description"] = "Description must be at least 5 characters."
	}
	if len(f.Category) < 2 {
		errs["category"] = "Category must be at least 2 characters."
	}
	p, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil || p <= 0 {
		errs["price"] = "Price must be a positive number."
	} else {
		f.Price = p
	}
	return f, errs
}

type InventoryForm struct {
	ProductID         int64
	QuantityAvailable int
}

// InventoryFormOf checks the add-inventory schema: a selected product and a
// non-negative integer quantity.
func InventoryFormOf(productID, quantity string) (InventoryForm, FieldErrors) {
	errs := FieldErrors{}
	var f InventoryForm
	id, ok := ID(productID)
	if !ok {
		errs["productId"] = "Please select a product."
	}
	f.ProductID = id
	q, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil || q < 0 {
		errs["quantityAvailable"] = "Quantity must be a non-negative integer."
	} else {
		f.QuantityAvailable = q
	}
	return f, errs
}

type OrderForm struct {
	OrderType   string
	ContactName string
	Notes       string
	Items       []domain.OrderItem
}

// OrderFormOf checks the compose-order schema and builds the order items
// with totalPrice = quantity x unitPrice. The three slices are parallel rows
// from the form.
func OrderFormOf(orderType, contactName, notes string, productIDs, quantities, unitPrices []string) (OrderForm, FieldErrors) {
	errs := FieldErrors{}
	f := OrderForm{
		ContactName: strings.TrimSpace(contactName),
		Notes:       strings.TrimSpace(notes),
	}
	ot, ok := OrderType(orderType)
	if !ok {
		errs["orderType"] = "Order type must be SALE or PURCHASE."
	}
	f.OrderType = ot
	if len(f.ContactName) < 2 {
		errs["contactName"] = "Contact name must be at least 2 characters."
	}
	if len(productIDs) == 0 {
		errs["orderItems"] = "Order must have at least one item."
		return f, errs
	}
	if len(quantities) != len(productIDs) || len(unitPrices) != len(productIDs) {
		errs["orderItems"] = "Order items are incomplete."
		return f, errs
	}
	for i := range productIDs {
		id, ok := ID(productIDs[i])
		if !ok {
			errs["orderItems"] = "Each item needs a product."
			continue
		}
		q, err := strconv.Atoi(strings.TrimSpace(quantities[i]))
		if err != nil || q < 1 {
			errs["orderItems"] = "Each quantity must be a positive integer."
			continue
		}
		p, err := strconv.ParseFloat(strings.TrimSpace(unitPrices[i]), 64)
		if err != nil || p <= 0 {
			errs["orderItems"] = "Each unit price must be positive."
			continue
		}
		f.Items = append(f.Items, domain.OrderItem{
			Product:    domain.ProductRef{ID: id},
			Quantity:   q,
			UnitPrice:  p,
			TotalPrice: float64(q) * p,
		})
	}
	return f, errs
}
