package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"superfamily/internal/activitylog"
	"superfamily/internal/auth"
	"superfamily/internal/database"
	"superfamily/internal/middleware"
	"superfamily/internal/models"
	"superfamily/internal/validate"
)

type AccountHandler struct {
	userRepo   UserStore
	familyRepo FamilyStore
	inviteRepo InviteStore
	sink       *activitylog.Sink
}

func NewAccountHandler(userRepo UserStore, familyRepo FamilyStore, inviteRepo InviteStore, sink *activitylog.Sink) *AccountHandler {
	return &AccountHandler{
		userRepo:   userRepo,
		familyRepo: familyRepo,
		inviteRepo: inviteRepo,
		sink:       sink,
	}
}

func (h *AccountHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token tidak ditemukan")
		return
	}

	user, err := h.userRepo.GetWithFamily(r.Context(), identity.ID)
	if errors.Is(err, database.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User tidak ditemukan")
		return
	}
	if err != nil {
		log.Printf("Profile error: %v", err)
		writeServerError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Data profil berhasil diambil", user)
}

type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

func (h *AccountHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		methodNotAllowed(w)
		return
	}

	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token tidak ditemukan")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Body request tidak valid")
		return
	}

	var v validate.Errors
	if req.Name != nil {
		v.MinLen(*req.Name, 3, "Nama minimal 3 karakter")
	}
	if !v.Ok() {
		writeValidationError(w, v.Message())
		return
	}

	user, err := h.userRepo.Update(r.Context(), identity.ID, models.UpdateUserParams{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if errors.Is(err, database.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User tidak ditemukan")
		return
	}
	if err != nil {
		log.Printf("Update profile error: %v", err)
		writeServerError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Profil berhasil diupdate", user)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *AccountHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token tidak ditemukan")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Body request tidak valid")
		return
	}

	var v validate.Errors
	v.Require(req.CurrentPassword, "Password lama harus diisi")
	v.MinLen(req.NewPassword, 6, "Password baru minimal 6 karakter")
	v.Require(req.ConfirmPassword, "Konfirmasi password harus diisi")
	if req.NewPassword != req.ConfirmPassword {
		v.Add("Password baru dan konfirmasi password tidak sama")
	}
	if !v.Ok() {
		writeValidationError(w, v.Message())
		return
	}

	user, err := h.userRepo.GetByID(r.Context(), identity.ID)
	if errors.Is(err, database.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User tidak ditemukan")
		return
	}
	if err != nil {
		writeServerError(w, err)
		return
	}

	if auth.VerifyPassword(user.PasswordHash, req.CurrentPassword) != nil {
		writeError(w, http.StatusBadRequest, "Password lama tidak benar")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword, auth.ChangePasswordCost)
	if err != nil {
		writeServerError(w, err)
		return
	}

	if err := h.userRepo.UpdatePassword(r.Context(), identity.ID, hash); err != nil {
		log.Printf("Change password error: %v", err)
		writeServerError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Password berhasil diubah", nil)
}

type JoinFamilyRequest struct {
	FamilyID   string `json:"family_id,omitempty"`
	InviteCode string `json:"invite_code,omitempty"`
}

// HandleJoinFamily attaches the caller to a family, addressed either
// directly by id or through a stored invite code.
func (h *AccountHandler) HandleJoinFamily(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token tidak ditemukan")
		return
	}

	var req JoinFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Body request tidak valid")
		return
	}

	familyID := req.FamilyID
	if familyID == "" && req.InviteCode != "" {
		invite, err := h.inviteRepo.GetValid(r.Context(), req.InviteCode)
		if errors.Is(err, database.ErrInviteNotFound) {
			writeError(w, http.StatusNotFound, "Kode undangan tidak valid atau sudah kedaluwarsa")
			return
		}
		if err != nil {
			writeServerError(w, err)
			return
		}
		familyID = invite.FamilyID
	}

	var v validate.Errors
	v.UUID(familyID, "Family ID harus berupa UUID valid")
	if !v.Ok() {
		writeValidationError(w, v.Message())
		return
	}

	family, err := h.familyRepo.GetByID(r.Context(), familyID)
	if errors.Is(err, database.ErrFamilyNotFound) {
		writeError(w, http.StatusNotFound, "Keluarga tidak ditemukan")
		return
	}
	if err != nil {
		writeServerError(w, err)
		return
	}

	user, err := h.userRepo.SetFamily(r.Context(), identity.ID, family.ID)
	if err != nil {
		log.Printf("Join family error: %v", err)
		writeServerError(w, err)
		return
	}

	h.sink.Record(activitylog.Entry{
		UserID:   identity.ID,
		FamilyID: &family.ID,
		Details: map[string]any{
			"action":      "join_family",
			"family_name": family.Name,
			"family_id":   family.ID,
		},
	})

	writeSuccess(w, http.StatusOK, "Berhasil bergabung dengan keluarga", user)
}

func (h *AccountHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token tidak ditemukan")
		return
	}

	// Display flag only: issued tokens stay valid until natural expiry.
	if err := h.userRepo.SetLoginState(r.Context(), identity.ID, false); err != nil {
		log.Printf("Logout error: %v", err)
		writeError(w, http.StatusInternalServerError, "Gagal mengupdate status login")
		return
	}

	writeSuccess(w, http.StatusOK, "Logout berhasil", nil)
}
