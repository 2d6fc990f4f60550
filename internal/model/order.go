package model

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// NotAvailable is the display value used for missing or malformed data.
const NotAvailable = "N/A"

// Order represents a marketplace order as returned by GET /orders.
type Order struct {
	OrderID         string          `json:"order_id"`
	PurchaseDate    string          `json:"purchase_date"`
	Products        []Product       `json:"products"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   string          `json:"paymentMethod"`
}

// PurchasedAt parses the purchase date. The second return value is false when
// the date is missing or not a recognised ISO-8601 timestamp.
func (o Order) PurchasedAt() (time.Time, bool) {
	return ParseTimestamp(o.PurchaseDate)
}

// Product represents a single line item within an order.
// Price and Quantity are optional because upstream data is not always complete.
type Product struct {
	Title     string              `json:"title"`
	Brand     string              `json:"brand,omitempty"`
	ASIN      string              `json:"asin"`
	ProductID string              `json:"product_id,omitempty"`
	Quantity  *int                `json:"quantity"`
	Price     decimal.NullDecimal `json:"price"`
}

// UnmarshalJSON decodes a line item. Quantity accepts integral numbers in any
// JSON form ("2", 2.0, 2e0) and price accepts numbers or numeric strings;
// anything else leaves the field unset instead of failing the whole order.
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	aux := struct {
		*plain
		Quantity json.RawMessage `json:"quantity"`
		Price    json.RawMessage `json:"price"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.Quantity = parseQuantity(aux.Quantity)
	p.Price = parsePrice(aux.Price)
	return nil
}

func parseQuantity(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil
		}
	}

	d, err := decimal.NewFromString(text)
	if err != nil || !d.IsInteger() || d.IsNegative() {
		return nil
	}
	q := int(d.IntPart())
	return &q
}

func parsePrice(raw json.RawMessage) decimal.NullDecimal {
	var price decimal.NullDecimal
	if len(bytes.TrimSpace(raw)) == 0 {
		return price
	}
	if err := price.UnmarshalJSON(raw); err != nil {
		return decimal.NullDecimal{}
	}
	return price
}

// DisplayName returns the title, falling back to the product or ASIN identifier.
func (p Product) DisplayName() string {
	if p.Title != "" {
		return p.Title
	}
	if p.ProductID != "" {
		return "Product " + p.ProductID
	}
	return "Product " + p.ASIN
}

// LineTotal returns price * quantity. ok is false when either value is missing.
func (p Product) LineTotal() (total decimal.Decimal, ok bool) {
	if p.Quantity == nil || !p.Price.Valid {
		return decimal.Zero, false
	}
	return p.Price.Decimal.Mul(decimal.NewFromInt(int64(*p.Quantity))), true
}

// OrderDetail represents the response of GET /orders/{id}.
// The backend uses two naming schemes; both are accepted and Date/LineItems
// resolve them with items/order_date taking precedence.
type OrderDetail struct {
	OrderID         string           `json:"order_id"`
	OrderDate       string           `json:"order_date,omitempty"`
	PurchaseDate    string           `json:"purchase_date,omitempty"`
	Items           []Product        `json:"items,omitempty"`
	Products        []Product        `json:"products,omitempty"`
	CustomerName    string           `json:"customer_name,omitempty"`
	ShippingAddress *ShippingAddress `json:"shipping_address,omitempty"`
	PaymentMethod   string           `json:"paymentMethod,omitempty"`
}

// Date returns order_date when present, otherwise purchase_date.
func (d *OrderDetail) Date() string {
	if d.OrderDate != "" {
		return d.OrderDate
	}
	return d.PurchaseDate
}

// LineItems returns items when the field was present, otherwise products.
func (d *OrderDetail) LineItems() []Product {
	if d.Items != nil {
		return d.Items
	}
	if d.Products != nil {
		return d.Products
	}
	return []Product{}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp in any of the layouts the backend emits.
func ParseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
