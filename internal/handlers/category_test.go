package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"superfamily/internal/database"
	"superfamily/internal/models"
)

func putJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleCreateCategory_DuplicateSlug(t *testing.T) {
	categories := &MockCategoryStore{
		CreateFunc: func(ctx context.Context, params models.CreateCategoryParams) (*models.Category, error) {
			return nil, database.ErrDuplicateSlug
		},
	}
	h := NewCategoryHandler(categories, nil)

	rec := postJSON(t, h.HandleCreate, "/api/categories/create",
		`{"name":"Gaji","slug":"gaji","type":"income"}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("got status %d, want 409", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "Slug sudah digunakan" {
		t.Errorf("got message %q, want %q", env.Message, "Slug sudah digunakan")
	}
}

func TestHandleUpdateCategory_SlugTakenByOtherRow(t *testing.T) {
	categories := &MockCategoryStore{
		UpdateFunc: func(ctx context.Context, id string, params models.UpdateCategoryParams) (*models.Category, error) {
			return nil, database.ErrDuplicateSlug
		},
	}
	h := NewCategoryHandler(categories, nil)

	rec := putJSON(t, h.HandleUpdate, "/api/categories/update?id=cat-1",
		`{"slug":"belanja"}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("got status %d, want 409", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "Slug sudah digunakan" {
		t.Errorf("got message %q, want %q", env.Message, "Slug sudah digunakan")
	}
}

func TestHandleUpdateCategory_OwnSlugIsNotAConflict(t *testing.T) {
	categories := &MockCategoryStore{
		UpdateFunc: func(ctx context.Context, id string, params models.UpdateCategoryParams) (*models.Category, error) {
			return &models.Category{ID: id, Name: "Gaji", Slug: *params.Slug, Type: models.CategoryIncome}, nil
		},
	}
	h := NewCategoryHandler(categories, nil)

	rec := putJSON(t, h.HandleUpdate, "/api/categories/update?id=cat-1",
		`{"slug":"gaji"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "Kategori berhasil diupdate" {
		t.Errorf("got message %q, want %q", env.Message, "Kategori berhasil diupdate")
	}
}

func TestHandleUpdateCategory_NotFound(t *testing.T) {
	categories := &MockCategoryStore{
		UpdateFunc: func(ctx context.Context, id string, params models.UpdateCategoryParams) (*models.Category, error) {
			return nil, database.ErrCategoryNotFound
		},
	}
	h := NewCategoryHandler(categories, nil)

	rec := putJSON(t, h.HandleUpdate, "/api/categories/update?id=tidak-ada",
		`{"name":"Lain"}`)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "Kategori tidak ditemukan" {
		t.Errorf("got message %q, want %q", env.Message, "Kategori tidak ditemukan")
	}
}
