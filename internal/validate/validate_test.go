package validate

import "testing"

func TestErrors_Accumulate(t *testing.T) {
	var v Errors
	if !v.Ok() {
		t.Fatal("fresh Errors should be Ok")
	}

	v.Add("first")
	v.Add("second")

	if v.Ok() {
		t.Error("Errors with messages reported Ok")
	}
	if got := v.Message(); got != "first, second" {
		t.Errorf("Message() = %q, want %q", got, "first, second")
	}
}

func TestErrors_Require(t *testing.T) {
	var v Errors
	v.Require("value", "should not fire")
	v.Require("", "empty")
	v.Require("   ", "blank")

	if got := v.Message(); got != "empty, blank" {
		t.Errorf("Message() = %q, want %q", got, "empty, blank")
	}
}

func TestErrors_Lengths(t *testing.T) {
	var v Errors
	v.MinLen("ab", 3, "too short")
	v.MinLen("abc", 3, "should not fire")
	v.MaxLen("abcd", 3, "too long")
	v.MaxLen("abc", 3, "should not fire")

	if got := v.Message(); got != "too short, too long" {
		t.Errorf("Message() = %q, want %q", got, "too short, too long")
	}
}

func TestErrors_Email(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"user@example.com", true},
		{"user+tag@example.co.id", true},
		{"not-an-email", false},
		{"@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		var v Errors
		v.Email(tt.value, "bad email")
		if v.Ok() != tt.valid {
			t.Errorf("Email(%q): valid = %v, want %v", tt.value, v.Ok(), tt.valid)
		}
	}
}

func TestErrors_UUID(t *testing.T) {
	var v Errors
	v.UUID("8c7f4a1e-6d29-4b8a-9f3c-2e1d5b7a9c0f", "should not fire")
	if !v.Ok() {
		t.Errorf("valid UUID rejected: %s", v.Message())
	}

	v.UUID("not-a-uuid", "bad uuid")
	if v.Ok() {
		t.Error("invalid UUID accepted")
	}
}

func TestErrors_Slug(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"keluarga-budi", true},
		{"makanan-2024", true},
		{"Keluarga Budi", false},
		{"makanan_harian", false},
		{"", false},
	}

	for _, tt := range tests {
		var v Errors
		v.Slug(tt.value, "bad slug")
		if v.Ok() != tt.valid {
			t.Errorf("Slug(%q): valid = %v, want %v", tt.value, v.Ok(), tt.valid)
		}
	}
}
