package domain

import "github.com/shopspring/decimal"

// StatusCounts always carries all three statuses, even when zero.
type StatusCounts struct {
	Pending  int
	Approved int
	Rejected int
}

// Analytics is an aggregate over the expenses visible to a caller. Category
// and status totals only contain keys that occurred.
type Analytics struct {
	TotalExpenses  int
	TotalAmount    decimal.Decimal
	CategoryTotals map[Category]decimal.Decimal
	StatusTotals   map[Status]decimal.Decimal
	StatusCounts   StatusCounts
}
