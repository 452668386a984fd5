package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"superfamily/internal/middleware"
	"superfamily/internal/models"
)

type DashboardHandler struct {
	transactionRepo TransactionStore
	userRepo        UserStore
}

func NewDashboardHandler(transactionRepo TransactionStore, userRepo UserStore) *DashboardHandler {
	return &DashboardHandler{transactionRepo: transactionRepo, userRepo: userRepo}
}

// HandleStatistics reports the caller's family balance and the current
// month's income and expense totals. A caller without a family gets zeros
// rather than an error so the dashboard can always render.
func (h *DashboardHandler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token tidak ditemukan")
		return
	}

	user, err := h.userRepo.GetByID(r.Context(), identity.ID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if user.FamilyID == nil {
		writeSuccess(w, http.StatusOK, "Data statistik berhasil diambil", models.DashboardStatistics{})
		return
	}

	from, to := monthBounds(time.Now())

	// The all time and current month aggregates are independent queries,
	// so run them concurrently.
	type result struct {
		rows []models.StatRow
		err  error
	}
	allCh := make(chan result, 1)
	monthCh := make(chan result, 1)

	go func() {
		rows, err := h.transactionRepo.StatRows(r.Context(), *user.FamilyID, nil, nil)
		allCh <- result{rows, err}
	}()
	go func() {
		rows, err := h.transactionRepo.StatRows(r.Context(), *user.FamilyID, &from, &to)
		monthCh <- result{rows, err}
	}()

	all, month := <-allCh, <-monthCh
	if all.err != nil {
		log.Printf("Dashboard statistics error: %v", all.err)
		writeServerError(w, all.err)
		return
	}
	if month.err != nil {
		log.Printf("Dashboard statistics error: %v", month.err)
		writeServerError(w, month.err)
		return
	}

	allIncome, allExpense := reduceStats(all.rows)
	monthIncome, monthExpense := reduceStats(month.rows)

	writeSuccess(w, http.StatusOK, "Data statistik berhasil diambil", models.DashboardStatistics{
		TotalBalance:     allIncome.Sub(allExpense),
		IncomeThisMonth:  monthIncome,
		ExpenseThisMonth: monthExpense,
	})
}

// reduceStats sums amounts by category type.
func reduceStats(rows []models.StatRow) (income, expense decimal.Decimal) {
	for _, row := range rows {
		switch row.CategoryType {
		case models.CategoryIncome:
			income = income.Add(row.Amount)
		case models.CategoryExpense:
			expense = expense.Add(row.Amount)
		}
	}
	return income, expense
}

// monthBounds returns the first instant and the last second of the month
// containing t, in local time.
func monthBounds(t time.Time) (time.Time, time.Time) {
	year, month, _ := t.Date()
	from := time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Second)
	return from, to
}
