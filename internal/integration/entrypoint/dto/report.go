package dto

import (
	"time"

	"github.com/veresiye/backend/internal/domain/entity"
	"github.com/veresiye/backend/internal/domain/ledger"
)

// CategoryTotalsResponse is the wire shape of one period's category totals.
type CategoryTotalsResponse struct {
	Sales       string `json:"sales"`
	Collections string `json:"collections"`
	Purchases   string `json:"purchases"`
	Payments    string `json:"payments"`
}

// DailySummaryResponse is one day's totals.
type DailySummaryResponse struct {
	Date string `json:"date"`
	CategoryTotalsResponse
}

// MonthlySummaryResponse is one month's totals.
type MonthlySummaryResponse struct {
	Month string `json:"month"`
	CategoryTotalsResponse
}

// DashboardTotalsResponse is the receivables/payables aggregate.
type DashboardTotalsResponse struct {
	Receivables string `json:"receivables"`
	Payables    string `json:"payables"`
}

// ShareStatementResponse carries an issued statement share token.
type ShareStatementResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func toCategoryTotalsResponse(totals entity.CategoryTotals) CategoryTotalsResponse {
	return CategoryTotalsResponse{
		Sales:       totals.Sales.StringFixed(2),
		Collections: totals.Collections.StringFixed(2),
		Purchases:   totals.Purchases.StringFixed(2),
		Payments:    totals.Payments.StringFixed(2),
	}
}

// ToDailySummaryListResponse converts daily summaries to their wire shape.
func ToDailySummaryListResponse(days []*entity.DailySummary) []DailySummaryResponse {
	responses := make([]DailySummaryResponse, len(days))
	for i, d := range days {
		responses[i] = DailySummaryResponse{
			Date:                   d.Date.Format("2006-01-02"),
			CategoryTotalsResponse: toCategoryTotalsResponse(d.Totals),
		}
	}
	return responses
}

// ToMonthlySummaryListResponse converts monthly summaries to their wire shape.
func ToMonthlySummaryListResponse(months []*entity.MonthlySummary) []MonthlySummaryResponse {
	responses := make([]MonthlySummaryResponse, len(months))
	for i, m := range months {
		responses[i] = MonthlySummaryResponse{
			Month:                  m.Month,
			CategoryTotalsResponse: toCategoryTotalsResponse(m.Totals),
		}
	}
	return responses
}

// ToDashboardTotalsResponse converts aggregate totals to their wire shape.
func ToDashboardTotalsResponse(totals ledger.Totals) DashboardTotalsResponse {
	return DashboardTotalsResponse{
		Receivables: totals.Receivables.StringFixed(2),
		Payables:    totals.Payables.StringFixed(2),
	}
}
