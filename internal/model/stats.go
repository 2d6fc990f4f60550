package model

import "github.com/shopspring/decimal"

// Stats is the aggregate statistics object returned by GET /orders/stats.
// It is passed through to the visualisation views unchanged.
type Stats struct {
	TotalOrders   *int64              `json:"totalOrders,omitempty"`
	TotalRevenue  decimal.NullDecimal `json:"totalRevenue"`
	AvgOrderValue decimal.NullDecimal `json:"avgOrderValue"`
	MonthlyTotals []MonthlyTotal      `json:"monthlyTotals"`
	StatusCounts  []StatusCount       `json:"statusCounts"`
}

// MonthlyTotal is the revenue for a single calendar month.
type MonthlyTotal struct {
	Month string          `json:"month"`
	Year  int             `json:"year"`
	Total decimal.Decimal `json:"total"`
}

// StatusCount is the number of orders in a given fulfilment status.
type StatusCount struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}
