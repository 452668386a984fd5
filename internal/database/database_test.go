package database

import (
	"strings"
	"testing"
)

func TestSqlVerb(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"SELECT id FROM users", "SELECT"},
		{"  \n\tINSERT INTO families (name) VALUES ($1)", "INSERT"},
		{"update users set name = $1", "UPDATE"},
		{"DELETE", "DELETE"},
	}

	for _, tt := range tests {
		if got := sqlVerb(tt.query); got != tt.want {
			t.Errorf("sqlVerb(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestCompactQuery(t *testing.T) {
	q := `
		SELECT id, name
		FROM categories
		WHERE slug = $1
	`
	want := "SELECT id, name FROM categories WHERE slug = $1"
	if got := compactQuery(q); got != want {
		t.Errorf("compactQuery() = %q, want %q", got, want)
	}
}

func TestCompactQuery_Truncates(t *testing.T) {
	long := "SELECT " + strings.Repeat("col, ", 100) + "id FROM t"
	got := compactQuery(long)
	if len(got) != 256+3 {
		t.Errorf("len = %d, want 259", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("truncated query missing ellipsis")
	}
}
