package models

import (
	"time"
)

type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Category is global, not family-scoped.
type Category struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Slug      string       `json:"slug"`
	Type      CategoryType `json:"type"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type CreateCategoryParams struct {
	Name string
	Slug string
	Type CategoryType
}

type UpdateCategoryParams struct {
	Name *string
	Slug *string
	Type *CategoryType
}
