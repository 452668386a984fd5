package database

import (
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors handlers translate to HTTP statuses. Uniqueness errors
// come from schema constraints, never from check-then-insert lookups.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrFamilyNotFound      = errors.New("family not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInviteNotFound      = errors.New("invite not found")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrDuplicateSlug       = errors.New("slug already in use")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
