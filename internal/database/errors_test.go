package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pq.Error{Code: "23505"}

	if !isUniqueViolation(uniqueErr) {
		t.Error("isUniqueViolation() = false for code 23505")
	}
	if !isUniqueViolation(fmt.Errorf("insert: %w", uniqueErr)) {
		t.Error("isUniqueViolation() = false for wrapped 23505")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Error("isUniqueViolation() = true for foreign key violation")
	}
	if isUniqueViolation(errors.New("plain error")) {
		t.Error("isUniqueViolation() = true for non-pq error")
	}
	if isUniqueViolation(nil) {
		t.Error("isUniqueViolation() = true for nil")
	}
}
