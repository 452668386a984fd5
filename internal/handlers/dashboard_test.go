package handlers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"superfamily/internal/models"
)

func TestReduceStats(t *testing.T) {
	rows := []models.StatRow{
		{Amount: decimal.NewFromInt(100000), CategoryType: models.CategoryIncome},
		{Amount: decimal.NewFromInt(250000), CategoryType: models.CategoryIncome},
		{Amount: decimal.NewFromInt(40000), CategoryType: models.CategoryExpense},
		{Amount: decimal.RequireFromString("9999.99"), CategoryType: models.CategoryExpense},
	}

	income, expense := reduceStats(rows)

	if want := decimal.NewFromInt(350000); !income.Equal(want) {
		t.Errorf("income = %s, want %s", income, want)
	}
	if want := decimal.RequireFromString("49999.99"); !expense.Equal(want) {
		t.Errorf("expense = %s, want %s", expense, want)
	}
}

func TestReduceStats_Empty(t *testing.T) {
	income, expense := reduceStats(nil)

	if !income.IsZero() || !expense.IsZero() {
		t.Errorf("empty rows: income = %s, expense = %s, want zeros", income, expense)
	}
}

func TestMonthBounds(t *testing.T) {
	from, to := monthBounds(time.Date(2024, 2, 15, 13, 45, 0, 0, time.Local))

	wantFrom := time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)
	if !from.Equal(wantFrom) {
		t.Errorf("from = %v, want %v", from, wantFrom)
	}

	// 2024 is a leap year, so February runs through the 29th.
	wantTo := time.Date(2024, 2, 29, 23, 59, 59, 0, time.Local)
	if !to.Equal(wantTo) {
		t.Errorf("to = %v, want %v", to, wantTo)
	}
}

func TestMonthBounds_December(t *testing.T) {
	from, to := monthBounds(time.Date(2024, 12, 31, 23, 0, 0, 0, time.Local))

	if !from.Equal(time.Date(2024, 12, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("from = %v", from)
	}
	if !to.Equal(time.Date(2024, 12, 31, 23, 59, 59, 0, time.Local)) {
		t.Errorf("to = %v", to)
	}
}
