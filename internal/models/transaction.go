package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts serialize as JSON numbers, matching the API contract.
	decimal.MarshalJSONWithoutQuotes = true
}

type Transaction struct {
	ID              string          `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	CategoryID      string          `json:"-"`
	UserID          string          `json:"-"`
	FamilyID        string          `json:"-"`
	Note            *string         `json:"note,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
	TransactionNo   string          `json:"transaction_no"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Joined rows, mapped explicitly by the repository.
	Category TransactionCategory `json:"category"`
	User     TransactionUser     `json:"user"`
}

// TransactionCategory is the category projection joined onto a transaction row.
type TransactionCategory struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Slug string       `json:"slug"`
	Type CategoryType `json:"type"`
}

// TransactionUser is the user projection joined onto a transaction row.
type TransactionUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateTransactionParams struct {
	Amount          decimal.Decimal
	CategoryID      string
	UserID          string
	FamilyID        string
	Note            *string
	TransactionDate time.Time
	TransactionNo   string
}

type UpdateTransactionParams struct {
	Amount          *decimal.Decimal
	CategoryID      *string
	Note            *string
	TransactionDate *time.Time
}

// TransactionFilter narrows a paginated listing.
type TransactionFilter struct {
	FamilyID   string
	UserID     string
	CategoryID string
}
