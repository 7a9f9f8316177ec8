package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotals groups transaction amounts for a period into the four
// ledger categories.
type CategoryTotals struct {
	Sales       decimal.Decimal
	Collections decimal.Decimal
	Purchases   decimal.Decimal
	Payments    decimal.Decimal
}

// DailySummary is the category breakdown for a single day.
type DailySummary struct {
	Date   time.Time
	Totals CategoryTotals
}

// MonthlySummary is the category breakdown for a calendar month.
type MonthlySummary struct {
	Month  string // "YYYY-MM"
	Totals CategoryTotals
}
