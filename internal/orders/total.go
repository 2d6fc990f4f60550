package orders

import (
	"order-dashboard/internal/model"

	"github.com/shopspring/decimal"
)

// Total sums price * quantity over the line items, rounded to two places.
// Items with a missing price or quantity contribute nothing.
func Total(products []model.Product) decimal.Decimal {
	total := decimal.Zero
	for _, product := range products {
		if line, ok := product.LineTotal(); ok {
			total = total.Add(line)
		}
	}
	return total.Round(2)
}
