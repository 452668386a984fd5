package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"superfamily/internal/auth"
	"superfamily/internal/database"
	"superfamily/internal/models"
)

// Validation failures must be reported before any store access, so these
// handlers run with a nil repository.

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	return env
}

func TestHandleRegister_Validation(t *testing.T) {
	h := NewAuthHandler(nil, nil)

	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{
			name:      "short name",
			body:      `{"name":"Bu","email":"budi@example.com","password":"secret1","confirm_password":"secret1"}`,
			wantError: "Nama minimal 3 karakter",
		},
		{
			name:      "bad email",
			body:      `{"name":"Budi","email":"not-an-email","password":"secret1","confirm_password":"secret1"}`,
			wantError: "Format email tidak valid",
		},
		{
			name:      "short password",
			body:      `{"name":"Budi","email":"budi@example.com","password":"abc","confirm_password":"abc"}`,
			wantError: "Password minimal 6 karakter",
		},
		{
			name:      "password mismatch",
			body:      `{"name":"Budi","email":"budi@example.com","password":"secret1","confirm_password":"secret2"}`,
			wantError: "Password dan konfirmasi password tidak cocok",
		},
		{
			name:      "multiple errors joined",
			body:      `{"name":"Bu","email":"bad","password":"abc","confirm_password":"abc"}`,
			wantError: "Nama minimal 3 karakter, Format email tidak valid, Password minimal 6 karakter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.HandleRegister, "/api/auth/register", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("got status %d, want 400", rec.Code)
			}
			env := decodeEnvelope(t, rec)
			if env.Message != "Data tidak valid" {
				t.Errorf("got message %q, want %q", env.Message, "Data tidak valid")
			}
			if env.Error != tt.wantError {
				t.Errorf("got error %q, want %q", env.Error, tt.wantError)
			}
		})
	}
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	creates := 0
	users := &MockUserStore{
		CreateFunc: func(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
			creates++
			return nil, database.ErrDuplicateEmail
		},
	}
	h := NewAuthHandler(users, nil)

	rec := postJSON(t, h.HandleRegister, "/api/auth/register",
		`{"name":"Budi","email":"budi@example.com","password":"secret1","confirm_password":"secret1"}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("got status %d, want 409", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Error("expected success=false")
	}
	if env.Message != "Email sudah terdaftar" {
		t.Errorf("got message %q, want %q", env.Message, "Email sudah terdaftar")
	}
	if creates != 1 {
		t.Errorf("store Create called %d times, want 1", creates)
	}
}

func TestHandleLogin_UnknownEmailAndBadPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct-password", auth.ChangePasswordCost)
	if err != nil {
		t.Fatal(err)
	}
	users := &MockUserStore{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			if email != "budi@example.com" {
				return nil, database.ErrUserNotFound
			}
			return &models.User{ID: "u1", Email: email, PasswordHash: hash}, nil
		},
	}
	h := NewAuthHandler(users, nil)

	tests := []struct {
		name string
		body string
	}{
		{"unknown email", `{"email":"tidak-ada@example.com","password":"whatever"}`},
		{"wrong password", `{"email":"budi@example.com","password":"wrong-password"}`},
	}

	// Both failure modes must be indistinguishable to the client.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.HandleLogin, "/api/auth/login", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("got status %d, want 400", rec.Code)
			}
			env := decodeEnvelope(t, rec)
			if env.Message != "Email atau password salah" {
				t.Errorf("got message %q, want %q", env.Message, "Email atau password salah")
			}
		})
	}
}

func TestHandleRegister_MalformedBody(t *testing.T) {
	h := NewAuthHandler(nil, nil)

	rec := postJSON(t, h.HandleRegister, "/api/auth/register", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error != "Body request tidak valid" {
		t.Errorf("got error %q", env.Error)
	}
}

func TestHandleRegister_MethodNotAllowed(t *testing.T) {
	h := NewAuthHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/register", nil)
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("got status %d, want 405", rec.Code)
	}
}
