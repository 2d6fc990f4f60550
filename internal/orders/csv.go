package orders

import (
	"strconv"
	"strings"
	"time"

	"order-dashboard/internal/model"
)

const (
	// CSVContentType is the MIME type of exported order files.
	CSVContentType = "text/csv;charset=utf-8;"

	// DateLayout is the human-readable date format used in exports and views.
	DateLayout = "Jan 2, 2006, 3:04:05 PM"
)

var csvHeader = []string{
	"Order ID",
	"Date",
	"Products",
	"Quantity",
	"Price",
	"Total",
	"Shipping Address",
	"Payment Method",
}

// ExportCSV renders one row per (order, product) pair after a header row.
// Order-level columns repeat on every row of the same order. Rows are
// separated by "\n" with no trailing newline.
func ExportCSV(orders []model.Order, loc *time.Location) []byte {
	if loc == nil {
		loc = time.UTC
	}

	rows := make([]string, 0, len(orders)+1)
	rows = append(rows, strings.Join(csvHeader, ","))

	for _, order := range orders {
		date := quote(FormatDate(order.PurchaseDate, loc))
		total := Total(order.Products).StringFixed(2)
		address := quote(strings.Join(order.ShippingAddress.Values(), ", "))

		for _, product := range order.Products {
			rows = append(rows, strings.Join([]string{
				quoteIfNeeded(order.OrderID),
				date,
				quote(product.Title),
				formatQuantity(product),
				formatPrice(product),
				total,
				address,
				quoteIfNeeded(order.PaymentMethod),
			}, ","))
		}
	}

	return []byte(strings.Join(rows, "\n"))
}

// ExportFilename returns amazon_orders_<YYYY-MM-DD>.csv for the UTC date of now.
func ExportFilename(now time.Time) string {
	return "amazon_orders_" + now.UTC().Format("2006-01-02") + ".csv"
}

// FormatDate renders an ISO-8601 timestamp with DateLayout, or N/A.
func FormatDate(value string, loc *time.Location) string {
	t, ok := model.ParseTimestamp(value)
	if !ok {
		return model.NotAvailable
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DateLayout)
}

func formatQuantity(p model.Product) string {
	if p.Quantity == nil {
		return model.NotAvailable
	}
	return strconv.Itoa(*p.Quantity)
}

func formatPrice(p model.Product) string {
	if !p.Price.Valid {
		return model.NotAvailable
	}
	return p.Price.Decimal.StringFixed(2)
}

// quote always wraps the field in double quotes, doubling embedded quotes.
func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func quoteIfNeeded(field string) string {
	if strings.ContainsAny(field, ",\"\r\n") {
		return quote(field)
	}
	return field
}
