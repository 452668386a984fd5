package handlers

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gosimple/slug"

	"superfamily/internal/activitylog"
	"superfamily/internal/database"
	"superfamily/internal/middleware"
	"superfamily/internal/models"
	"superfamily/internal/validate"
)

const (
	inviteCodeLength = 8
	inviteTTL        = 7 * 24 * time.Hour
)

type FamilyHandler struct {
	familyRepo FamilyStore
	userRepo   UserStore
	inviteRepo InviteStore
	sink       *activitylog.Sink
	baseURL    string
}

func NewFamilyHandler(familyRepo FamilyStore, userRepo UserStore, inviteRepo InviteStore, sink *activitylog.Sink, baseURL string) *FamilyHandler {
	return &FamilyHandler{
		familyRepo: familyRepo,
		userRepo:   userRepo,
		inviteRepo: inviteRepo,
		sink:       sink,
		baseURL:    baseURL,
	}
}

func (h *FamilyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	families, err := h.familyRepo.List(r.Context())
	if err != nil {
		log.Printf("List families error: %v", err)
		writeServerError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Data keluarga berhasil diambil", families)
}

func (h *FamilyHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "ID keluarga harus diisi")
		return
	}

	family, err := h.familyRepo.GetByID(r.Context(), id)
	if errors.Is(err, database.ErrFamilyNotFound) {
		writeError(w, http.StatusNotFound, "Keluarga tidak ditemukan")
		return
	}
	if err != nil {
		writeServerError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Data keluarga berhasil diambil", family)
}

type CreateFamilyRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (h *FamilyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req CreateFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Body request tidak valid")
		return
	}

	if req.Slug == "" {
		req.Slug = slug.Make(req.Name)
	}

	var v validate.Errors
	v.Require(req.Name, "Nama keluarga harus diisi")
	v.MinLen(req.Name, 3, "Nama keluarga minimal 3 karakter")
	v.MaxLen(req.Name, 100, "Nama keluarga maksimal 100 karakter")
	v.Slug(req.Slug, "Slug hanya boleh huruf kecil, angka, dan tanda hubung")
	if !v.Ok() {
		writeValidationError(w, v.Message())
		return
	}

	family, err := h.familyRepo.Create(r.Context(), models.CreateFamilyParams{
		Name: req.Name,
		Slug: req.Slug,
	})
	if errors.Is(err, database.ErrDuplicateSlug) {
		writeError(w, http.StatusConflict, "Slug sudah digunakan")
		return
	}
	if err != nil {
		log.Printf("Create family error: %v", err)
		writeServerError(w, err)
		return
	}

	// The creator joins the family they just made.
	if identity, ok := middleware.IdentityFrom(r.Context()); ok {
		if _, err := h.userRepo.SetFamily(r.Context(), identity.ID, family.ID); err != nil {
			log.Printf("Attach creator to family error: %v", err)
		}
		h.sink.Record(activitylog.Entry{
			UserID:   identity.ID,
			FamilyID: &family.ID,
			Details: map[string]any{
				"action":      "create_family",
				"family_name": family.Name,
				"family_id":   family.ID,
			},
		})
	}

	writeSuccess(w, http.StatusCreated, "Keluarga berhasil dibuat", family)
}

type UpdateFamilyRequest struct {
	Name *string `json:"name,omitempty"`
	Slug *string `json:"slug,omitempty"`
}

func (h *FamilyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		methodNotAllowed(w)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "ID keluarga harus diisi")
		return
	}

	var req UpdateFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Body request tidak valid")
		return
	}

	var v validate.Errors
	if req.Name != nil {
		v.Require(*req.Name, "Nama keluarga harus diisi")
		v.MinLen(*req.Name, 3, "Nama keluarga minimal 3 karakter")
		v.MaxLen(*req.Name, 100, "Nama keluarga maksimal 100 karakter")
	}
	if req.Slug != nil {
		v.Slug(*req.Slug, "Slug hanya boleh huruf kecil, angka, dan tanda hubung")
	}
	if !v.Ok() {
		writeValidationError(w, v.Message())
		return
	}

	family, err := h.familyRepo.Update(r.Context(), id, models.UpdateFamilyParams{
		Name: req.Name,
		Slug: req.Slug,
	})
	if errors.Is(err, database.ErrFamilyNotFound) {
		writeError(w, http.StatusNotFound, "Keluarga tidak ditemukan")
		return
	}
	if errors.Is(err, database.ErrDuplicateSlug) {
		writeError(w, http.StatusConflict, "Slug sudah digunakan")
		return
	}
	if err != nil {
		log.Printf("Update family error: %v", err)
		writeServerError(w, err)
		return
	}

	if identity, ok := middleware.IdentityFrom(r.Context()); ok {
		h.sink.Record(activitylog.Entry{
			UserID:   identity.ID,
			FamilyID: &family.ID,
			Details: map[string]any{
				"action":      "update_family",
				"family_name": family.Name,
				"family_id":   family.ID,
			},
		})
	}

	writeSuccess(w, http.StatusOK, "Keluarga berhasil diupdate", family)
}

func (h *FamilyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "ID keluarga harus diisi")
		return
	}

	family, err := h.familyRepo.GetByID(r.Context(), id)
	if errors.Is(err, database.ErrFamilyNotFound) {
		writeError(w, http.StatusNotFound, "Keluarga tidak ditemukan")
		return
	}
	if err != nil {
		writeServerError(w, err)
		return
	}

	if err := h.familyRepo.Delete(r.Context(), id); err != nil {
		log.Printf("Delete family error: %v", err)
		writeServerError(w, err)
		return
	}

	if identity, ok := middleware.IdentityFrom(r.Context()); ok {
		h.sink.Record(activitylog.Entry{
			UserID: identity.ID,
			Details: map[string]any{
				"action":      "delete_family",
				"family_name": family.Name,
				"family_id":   family.ID,
			},
		})
	}

	writeSuccess(w, http.StatusOK, "Keluarga berhasil dihapus", nil)
}

type InviteResponse struct {
	InviteCode string    `json:"invite_code"`
	InviteLink string    `json:"invite_link"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// HandleGenerateInvite issues a join code for the caller's family. The code
// is persisted so that redeeming it can be checked server side, and expires
// after seven days.
func (h *FamilyHandler) HandleGenerateInvite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token tidak ditemukan")
		return
	}

	user, err := h.userRepo.GetByID(r.Context(), identity.ID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if user.FamilyID == nil {
		writeError(w, http.StatusBadRequest, "Anda belum bergabung dengan keluarga")
		return
	}

	family, err := h.familyRepo.GetByID(r.Context(), *user.FamilyID)
	if err != nil {
		writeServerError(w, err)
		return
	}

	code, err := generateInviteCode()
	if err != nil {
		writeServerError(w, err)
		return
	}

	invite, err := h.inviteRepo.Create(r.Context(), code, family.ID, time.Now().Add(inviteTTL))
	if err != nil {
		log.Printf("Create invite error: %v", err)
		writeServerError(w, err)
		return
	}

	h.sink.Record(activitylog.Entry{
		UserID:   identity.ID,
		FamilyID: &family.ID,
		Details: map[string]any{
			"action":      "generate_invite",
			"family_id":   family.ID,
			"invite_code": invite.Code,
		},
	})

	writeSuccess(w, http.StatusOK, "Kode undangan berhasil dibuat", InviteResponse{
		InviteCode: invite.Code,
		InviteLink: fmt.Sprintf("%s/family/join?code=%s&slug=%s", h.baseURL, invite.Code, family.Slug),
		ExpiresAt:  invite.ExpiresAt,
	})
}

const inviteAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}
	for i, b := range buf {
		buf[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(buf), nil
}
