package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"superfamily/internal/auth"
	"superfamily/internal/database"
	"superfamily/internal/models"
	"superfamily/internal/validate"
)

type AuthHandler struct {
	userRepo UserStore
	jwt      *auth.JWT
}

func NewAuthHandler(userRepo UserStore, jwt *auth.JWT) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, jwt: jwt}
}

type RegisterRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           *string `json:"phone,omitempty"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirm_password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse bundles the safe user payload with the issued token pair.
type LoginResponse struct {
	User *models.User `json:"user"`
	*auth.TokenPair
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Body request tidak valid")
		return
	}

	var v validate.Errors
	v.MinLen(req.Name, 3, "Nama minimal 3 karakter")
	v.Email(req.Email, "Format email tidak valid")
	v.MinLen(req.Password, 6, "Password minimal 6 karakter")
	if req.Password != req.ConfirmPassword {
		v.Add("Password dan konfirmasi password tidak cocok")
	}
	if !v.Ok() {
		writeValidationError(w, v.Message())
		return
	}

	hash, err := auth.HashPassword(req.Password, auth.RegisterCost)
	if err != nil {
		writeServerError(w, err)
		return
	}

	user, err := h.userRepo.Create(r.Context(), models.CreateUserParams{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         models.RoleMember,
	})
	if errors.Is(err, database.ErrDuplicateEmail) {
		writeError(w, http.StatusConflict, "Email sudah terdaftar")
		return
	}
	if err != nil {
		log.Printf("Register error: %v", err)
		writeServerError(w, err)
		return
	}

	tokens, err := h.jwt.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		writeServerError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Pendaftaran berhasil", LoginResponse{
		User:      user,
		TokenPair: tokens,
	})
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Body request tidak valid")
		return
	}

	var v validate.Errors
	v.Email(req.Email, "Format email tidak valid")
	v.Require(req.Password, "Password harus diisi")
	if !v.Ok() {
		writeValidationError(w, v.Message())
		return
	}

	// Unknown email and wrong password collapse into one generic message.
	user, err := h.userRepo.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, database.ErrUserNotFound) {
		writeError(w, http.StatusBadRequest, "Email atau password salah")
		return
	}
	if err != nil {
		log.Printf("Login error: %v", err)
		writeServerError(w, err)
		return
	}

	if auth.VerifyPassword(user.PasswordHash, req.Password) != nil {
		writeError(w, http.StatusBadRequest, "Email atau password salah")
		return
	}

	tokens, err := h.jwt.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		writeServerError(w, err)
		return
	}

	if err := h.userRepo.SetLoginState(r.Context(), user.ID, true); err != nil {
		log.Printf("Login: failed to set is_login for user %s: %v", user.ID, err)
	}
	user.IsLogin = true

	writeSuccess(w, http.StatusOK, "Login berhasil", LoginResponse{
		User:      user,
		TokenPair: tokens,
	})
}
