package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"superfamily/internal/activitylog"
	"superfamily/internal/database"
	"superfamily/internal/middleware"
	"superfamily/internal/models"
	"superfamily/internal/validate"
)

type CategoryHandler struct {
	categoryRepo CategoryStore
	sink         *activitylog.Sink
}

func NewCategoryHandler(categoryRepo CategoryStore, sink *activitylog.Sink) *CategoryHandler {
	return &CategoryHandler{categoryRepo: categoryRepo, sink: sink}
}

func (h *CategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	categories, err := h.categoryRepo.List(r.Context())
	if err != nil {
		log.Printf("List categories error: %v", err)
		writeServerError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Data kategori berhasil diambil", categories)
}

type CreateCategoryRequest struct {
	Name string              `json:"name"`
	Slug string              `json:"slug"`
	Type models.CategoryType `json:"type"`
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Body request tidak valid")
		return
	}

	var v validate.Errors
	v.Require(req.Name, "Nama kategori harus diisi")
	v.MaxLen(req.Name, 100, "Nama kategori maksimal 100 karakter")
	v.Require(req.Slug, "Slug harus diisi")
	v.MaxLen(req.Slug, 100, "Slug maksimal 100 karakter")
	v.Slug(req.Slug, "Slug hanya boleh huruf kecil, angka, dan tanda hubung")
	if req.Type != models.CategoryIncome && req.Type != models.CategoryExpense {
		v.Add("Type harus income atau expense")
	}
	if !v.Ok() {
		writeValidationError(w, v.Message())
		return
	}

	category, err := h.categoryRepo.Create(r.Context(), models.CreateCategoryParams{
		Name: req.Name,
		Slug: req.Slug,
		Type: req.Type,
	})
	if errors.Is(err, database.ErrDuplicateSlug) {
		writeError(w, http.StatusConflict, "Slug sudah digunakan")
		return
	}
	if err != nil {
		log.Printf("Create category error: %v", err)
		writeServerError(w, err)
		return
	}

	h.recordAction(r, "create_category", category)

	writeSuccess(w, http.StatusCreated, "Kategori berhasil dibuat", category)
}

type UpdateCategoryRequest struct {
	Name *string              `json:"name,omitempty"`
	Slug *string              `json:"slug,omitempty"`
	Type *models.CategoryType `json:"type,omitempty"`
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		methodNotAllowed(w)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "ID kategori harus diisi")
		return
	}

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Body request tidak valid")
		return
	}

	var v validate.Errors
	if req.Name != nil {
		v.Require(*req.Name, "Nama kategori harus diisi")
		v.MaxLen(*req.Name, 100, "Nama kategori maksimal 100 karakter")
	}
	if req.Slug != nil {
		v.Slug(*req.Slug, "Slug hanya boleh huruf kecil, angka, dan tanda hubung")
		v.MaxLen(*req.Slug, 100, "Slug maksimal 100 karakter")
	}
	if req.Type != nil && *req.Type != models.CategoryIncome && *req.Type != models.CategoryExpense {
		v.Add("Type harus income atau expense")
	}
	if !v.Ok() {
		writeValidationError(w, v.Message())
		return
	}

	category, err := h.categoryRepo.Update(r.Context(), id, models.UpdateCategoryParams{
		Name: req.Name,
		Slug: req.Slug,
		Type: req.Type,
	})
	if errors.Is(err, database.ErrCategoryNotFound) {
		writeError(w, http.StatusNotFound, "Kategori tidak ditemukan")
		return
	}
	if errors.Is(err, database.ErrDuplicateSlug) {
		// Updating to the category's own slug is a no-op, not a conflict:
		// the unique index only fires for a different row.
		writeError(w, http.StatusConflict, "Slug sudah digunakan")
		return
	}
	if err != nil {
		log.Printf("Update category error: %v", err)
		writeServerError(w, err)
		return
	}

	h.recordAction(r, "update_category", category)

	writeSuccess(w, http.StatusOK, "Kategori berhasil diupdate", category)
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "ID kategori harus diisi")
		return
	}

	category, err := h.categoryRepo.GetByID(r.Context(), id)
	if errors.Is(err, database.ErrCategoryNotFound) {
		writeError(w, http.StatusNotFound, "Kategori tidak ditemukan")
		return
	}
	if err != nil {
		writeServerError(w, err)
		return
	}

	if err := h.categoryRepo.Delete(r.Context(), id); err != nil {
		log.Printf("Delete category error: %v", err)
		writeServerError(w, err)
		return
	}

	h.recordAction(r, "delete_category", category)

	writeSuccess(w, http.StatusOK, "Kategori berhasil dihapus", nil)
}

func (h *CategoryHandler) recordAction(r *http.Request, action string, category *models.Category) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		return
	}
	h.sink.Record(activitylog.Entry{
		UserID: identity.ID,
		Details: map[string]any{
			"action":        action,
			"category_name": category.Name,
			"category_id":   category.ID,
		},
	})
}
