package orders

import (
	"strings"

	"order-dashboard/internal/model"
)

// Filter returns the orders whose ID or any product title contains term,
// compared case-insensitively. An empty term returns orders unmodified.
func Filter(orders []model.Order, term string) []model.Order {
	if term == "" {
		return orders
	}

	needle := strings.ToLower(term)
	filtered := make([]model.Order, 0, len(orders))
	for _, order := range orders {
		if Matches(order, needle) {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

// Matches reports whether the order matches an already lower-cased search term.
func Matches(order model.Order, lowerTerm string) bool {
	if strings.Contains(strings.ToLower(order.OrderID), lowerTerm) {
		return true
	}
	for _, product := range order.Products {
		if strings.Contains(strings.ToLower(product.Title), lowerTerm) {
			return true
		}
	}
	return false
}
