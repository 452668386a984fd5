package models

import (
	"github.com/shopspring/decimal"
)

// DashboardStatistics aggregates a family's transactions by category type.
type DashboardStatistics struct {
	TotalBalance     decimal.Decimal `json:"total_balance"`
	IncomeThisMonth  decimal.Decimal `json:"income_this_month"`
	ExpenseThisMonth decimal.Decimal `json:"expense_this_month"`
}

// StatRow is the minimal projection the statistics query needs: an amount
// and the joined category type.
type StatRow struct {
	Amount       decimal.Decimal
	CategoryType CategoryType
}
