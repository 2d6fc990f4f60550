package model

import "time"

// Empty-table messages shown instead of rows.
const (
	EmptyNoMatches = "No orders match your search"
	EmptyNoOrders  = "No orders found. Sync with Amazon to load orders."
)

// DashboardView is the current page of the orders table.
type DashboardView struct {
	Orders       []OrderRow `json:"orders"`
	SearchTerm   string     `json:"searchTerm"`
	Page         int        `json:"page"`
	PageSize     int        `json:"pageSize"`
	PageCount    int        `json:"pageCount"`
	TotalMatches int        `json:"totalMatches"`
	TotalOrders  int        `json:"totalOrders"`
	Loading      bool       `json:"loading"`
	Syncing      bool       `json:"syncing"`
	EmptyMessage string     `json:"emptyMessage,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// OrderRow is a single row of the orders table.
type OrderRow struct {
	OrderID       string          `json:"orderId"`
	Date          string          `json:"date"`
	ItemCount     int             `json:"itemCount"`
	Items         []LineItemView  `json:"items"`
	Shipping      ShippingSummary `json:"shipping"`
	PaymentMethod string          `json:"paymentMethod"`
	Total         string          `json:"total"`
}

// LineItemView is a display-ready product line. Missing values render as N/A.
type LineItemView struct {
	Name      string `json:"name"`
	Brand     string `json:"brand,omitempty"`
	ASIN      string `json:"asin,omitempty"`
	Quantity  string `json:"quantity"`
	Price     string `json:"price"`
	LineTotal string `json:"lineTotal"`
}

// ShippingSummary is the short form of an address shown in tables and dialogs.
type ShippingSummary struct {
	CityState   string `json:"cityState"`
	PostalCode  string `json:"postalCode"`
	CountryCode string `json:"countryCode"`
}

// DetailView is the state of the order detail dialog.
type DetailView struct {
	State   string           `json:"state"`
	OrderID string           `json:"orderId,omitempty"`
	Loading bool             `json:"loading"`
	Detail  *OrderDetailView `json:"detail,omitempty"`
	Message string           `json:"message,omitempty"`
}

// OrderDetailView is a display-ready order detail record.
type OrderDetailView struct {
	OrderID         string           `json:"orderId"`
	OrderDate       string           `json:"orderDate"`
	CustomerName    string           `json:"customerName,omitempty"`
	PaymentMethod   string           `json:"paymentMethod"`
	Shipping        *ShippingSummary `json:"shipping,omitempty"`
	ShippingMessage string           `json:"shippingMessage,omitempty"`
	Items           []LineItemView   `json:"items"`
	Total           string           `json:"total"`
}

// Detail dialog messages.
const (
	NoDetailsAvailable  = "No order details available"
	NoShippingAvailable = "No shipping information available"
)

// CSVExport is a rendered CSV document ready for download or saving.
type CSVExport struct {
	Filename string
	Data     []byte
	Rows     int
}

// ExportResult describes a CSV export written through a saver.
type ExportResult struct {
	Filename    string `json:"filename"`
	Location    string `json:"location"`
	Destination string `json:"destination"`
	Rows        int    `json:"rows"`
}
