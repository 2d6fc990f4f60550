package orders

import (
	"order-dashboard/internal/model"

	"github.com/shopspring/decimal"
)

func intPtr(v int) *int {
	return &v
}

func price(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func product(title, unitPrice string, qty int) model.Product {
	return model.Product{
		Title:    title,
		ASIN:     "B00" + title,
		Quantity: intPtr(qty),
		Price:    price(unitPrice),
	}
}

func sampleOrders() []model.Order {
	return []model.Order{
		{
			OrderID:         "111-ALPHA",
			PurchaseDate:    "2024-03-15T10:30:00Z",
			Products:        []model.Product{product("Wireless Mouse", "25.00", 1)},
			ShippingAddress: model.NewShippingAddress("Seattle", "WA", "98101", "US"),
			PaymentMethod:   "Other",
		},
		{
			OrderID:         "222-BRAVO",
			PurchaseDate:    "2024-03-16T08:00:00Z",
			Products:        []model.Product{product("USB-C Cable", "9.99", 3), product("Laptop Stand", "40.00", 1)},
			ShippingAddress: model.NewShippingAddress("Austin", "TX", "73301", "US"),
			PaymentMethod:   "COD",
		},
		{
			OrderID:         "333-CHARLIE",
			PurchaseDate:    "2024-03-17T12:00:00Z",
			Products:        []model.Product{},
			ShippingAddress: model.NewShippingAddress("Denver", "CO", "80201", "US"),
			PaymentMethod:   "Other",
		},
	}
}
