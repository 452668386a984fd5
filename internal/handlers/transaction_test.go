package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"superfamily/internal/middleware"
)

// Pagination is rejected before the repository is touched, so a nil
// repository proves the ordering.
func TestHandleListTransactions_PaginationValidation(t *testing.T) {
	h := NewTransactionHandler(nil, nil, nil, nil)

	tests := []struct {
		name      string
		query     string
		wantError string
	}{
		{"page zero", "?page=0", "Page harus berupa angka positif"},
		{"page negative", "?page=-3", "Page harus berupa angka positif"},
		{"page not a number", "?page=abc", "Page harus berupa angka positif"},
		{"limit zero", "?limit=0", "Limit harus berupa angka antara 1-100"},
		{"limit over max", "?limit=101", "Limit harus berupa angka antara 1-100"},
		{"limit not a number", "?limit=ten", "Limit harus berupa angka antara 1-100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/transactions"+tt.query, nil)
			rec := httptest.NewRecorder()
			h.HandleList(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("got status %d, want 400", rec.Code)
			}
			env := decodeEnvelope(t, rec)
			if env.Error != tt.wantError {
				t.Errorf("got error %q, want %q", env.Error, tt.wantError)
			}
		})
	}
}

// Amount must be rejected before any store write.
func TestHandleCreateTransaction_AmountValidation(t *testing.T) {
	h := NewTransactionHandler(nil, nil, nil, nil)
	identity := middleware.Identity{ID: "user-1", Email: "budi@example.com", Role: "member"}

	for _, body := range []string{
		`{"amount":0,"category_id":"8c7f4a1e-6d29-4b8a-9f3c-2e1d5b7a9c0f"}`,
		`{"amount":-50000,"category_id":"8c7f4a1e-6d29-4b8a-9f3c-2e1d5b7a9c0f"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/transactions/create", strings.NewReader(body))
		req = req.WithContext(context.WithValue(req.Context(), middleware.IdentityKey, identity))
		rec := httptest.NewRecorder()
		h.HandleCreate(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("got status %d, want 400", rec.Code)
		}
		env := decodeEnvelope(t, rec)
		if env.Error != "Amount harus lebih dari 0" {
			t.Errorf("got error %q, want %q", env.Error, "Amount harus lebih dari 0")
		}
	}
}

func TestHandleCreateTransaction_Unauthenticated(t *testing.T) {
	h := NewTransactionHandler(nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/transactions/create", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", rec.Code)
	}
}

func TestTransactionNoFormat(t *testing.T) {
	now := time.Date(2024, 3, 7, 14, 5, 9, 0, time.Local)
	got := transactionNoPrefix + now.Format(transactionNoFormat)
	want := "TRX20240307140509"
	if got != want {
		t.Errorf("transaction number = %s, want %s", got, want)
	}
}

func TestParseDate(t *testing.T) {
	full, err := parseDate("2024-03-07T10:30:00Z")
	if err != nil {
		t.Fatalf("parseDate(RFC3339) failed: %v", err)
	}
	if !full.Equal(time.Date(2024, 3, 7, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("parseDate(RFC3339) = %v", full)
	}

	bare, err := parseDate("2024-03-07")
	if err != nil {
		t.Fatalf("parseDate(date) failed: %v", err)
	}
	y, m, d := bare.Date()
	if y != 2024 || m != time.March || d != 7 {
		t.Errorf("parseDate(date) = %v", bare)
	}

	if _, err := parseDate("07/03/2024"); err == nil {
		t.Error("parseDate accepted unsupported format")
	}
}
