package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"superfamily/internal/activitylog"
	"superfamily/internal/database"
	"superfamily/internal/middleware"
	"superfamily/internal/models"
	"superfamily/internal/validate"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100

	transactionNoPrefix = "TRX"
	transactionNoFormat = "20060102150405"
)

type TransactionHandler struct {
	transactionRepo TransactionStore
	categoryRepo    CategoryStore
	userRepo        UserStore
	sink            *activitylog.Sink
}

func NewTransactionHandler(transactionRepo TransactionStore, categoryRepo CategoryStore, userRepo UserStore, sink *activitylog.Sink) *TransactionHandler {
	return &TransactionHandler{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		userRepo:        userRepo,
		sink:            sink,
	}
}

func (h *TransactionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	q := r.URL.Query()

	// Pagination params are rejected before any store access.
	page := 1
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeValidationError(w, "Page harus berupa angka positif")
			return
		}
		page = n
	}

	limit := defaultPageLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPageLimit {
			writeValidationError(w, "Limit harus berupa angka antara 1-100")
			return
		}
		limit = n
	}

	filter := models.TransactionFilter{
		FamilyID:   q.Get("family_id"),
		UserID:     q.Get("user_id"),
		CategoryID: q.Get("category_id"),
	}

	// Without an explicit family filter the listing is scoped to the
	// caller's own family.
	if filter.FamilyID == "" {
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
			writeSuccess(w, http.StatusOK, "Data transaksi berhasil diambil", []*models.Transaction{})
			return
		}
		filter.FamilyID = *user.FamilyID
	}

	transactions, total, err := h.transactionRepo.List(r.Context(), filter, limit, (page-1)*limit)
	if err != nil {
		log.Printf("List transactions error: %v", err)
		writeServerError(w, err)
		return
	}
	if transactions == nil {
		transactions = []*models.Transaction{}
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	writeJSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: "Data transaksi berhasil diambil",
		Data:    transactions,
		Metadata: &Metadata{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

func (h *TransactionHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "ID transaksi harus diisi")
		return
	}

	transaction, err := h.transactionRepo.GetByID(r.Context(), id)
	if errors.Is(err, database.ErrTransactionNotFound) {
		writeError(w, http.StatusNotFound, "Transaksi tidak ditemukan")
		return
	}
	if err != nil {
		writeServerError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Data transaksi berhasil diambil", transaction)
}

type CreateTransactionRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	CategoryID      string          `json:"category_id"`
	Note            *string         `json:"note,omitempty"`
	TransactionDate string          `json:"transaction_date"`
	TransactionNo   string          `json:"transaction_no"`
}

func (h *TransactionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token tidak ditemukan")
		return
	}

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Body request tidak valid")
		return
	}

	var v validate.Errors
	if !req.Amount.IsPositive() {
		v.Add("Amount harus lebih dari 0")
	}
	v.Require(req.CategoryID, "Kategori harus diisi")
	v.UUID(req.CategoryID, "Category ID harus berupa UUID valid")
	if !v.Ok() {
		writeValidationError(w, v.Message())
		return
	}

	transactionDate := time.Now()
	if req.TransactionDate != "" {
		parsed, err := parseDate(req.TransactionDate)
		if err != nil {
			writeValidationError(w, "Format tanggal transaksi tidak valid")
			return
		}
		transactionDate = parsed
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
	if user.FamilyID == nil {
		writeError(w, http.StatusBadRequest, "Anda belum bergabung dengan keluarga")
		return
	}

	if _, err := h.categoryRepo.GetByID(r.Context(), req.CategoryID); err != nil {
		if errors.Is(err, database.ErrCategoryNotFound) {
			writeError(w, http.StatusNotFound, "Kategori tidak ditemukan")
			return
		}
		writeServerError(w, err)
		return
	}

	transactionNo := req.TransactionNo
	if transactionNo == "" {
		transactionNo = transactionNoPrefix + time.Now().Format(transactionNoFormat)
	}

	transaction, err := h.transactionRepo.Create(r.Context(), models.CreateTransactionParams{
		Amount:          req.Amount,
		CategoryID:      req.CategoryID,
		UserID:          user.ID,
		FamilyID:        *user.FamilyID,
		Note:            req.Note,
		TransactionDate: transactionDate,
		TransactionNo:   transactionNo,
	})
	if err != nil {
		log.Printf("Create transaction error: %v", err)
		writeServerError(w, err)
		return
	}

	h.sink.Record(activitylog.Entry{
		UserID:   identity.ID,
		FamilyID: user.FamilyID,
		Details: map[string]any{
			"action":         "create_transaction",
			"transaction_id": transaction.ID,
			"transaction_no": transaction.TransactionNo,
			"amount":         transaction.Amount.String(),
		},
	})

	writeSuccess(w, http.StatusCreated, "Transaksi berhasil dibuat", transaction)
}

type UpdateTransactionRequest struct {
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	CategoryID      *string          `json:"category_id,omitempty"`
	Note            *string          `json:"note,omitempty"`
	TransactionDate *string          `json:"transaction_date,omitempty"`
}

func (h *TransactionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		methodNotAllowed(w)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "ID transaksi harus diisi")
		return
	}

	var req UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Body request tidak valid")
		return
	}

	var v validate.Errors
	if req.Amount != nil && !req.Amount.IsPositive() {
		v.Add("Amount harus lebih dari 0")
	}
	if req.CategoryID != nil {
		v.UUID(*req.CategoryID, "Category ID harus berupa UUID valid")
	}
	if !v.Ok() {
		writeValidationError(w, v.Message())
		return
	}

	var transactionDate *time.Time
	if req.TransactionDate != nil {
		parsed, err := parseDate(*req.TransactionDate)
		if err != nil {
			writeValidationError(w, "Format tanggal transaksi tidak valid")
			return
		}
		transactionDate = &parsed
	}

	if req.CategoryID != nil {
		if _, err := h.categoryRepo.GetByID(r.Context(), *req.CategoryID); err != nil {
			if errors.Is(err, database.ErrCategoryNotFound) {
				writeError(w, http.StatusNotFound, "Kategori tidak ditemukan")
				return
			}
			writeServerError(w, err)
			return
		}
	}

	transaction, err := h.transactionRepo.Update(r.Context(), id, models.UpdateTransactionParams{
		Amount:          req.Amount,
		CategoryID:      req.CategoryID,
		Note:            req.Note,
		TransactionDate: transactionDate,
	})
	if errors.Is(err, database.ErrTransactionNotFound) {
		writeError(w, http.StatusNotFound, "Transaksi tidak ditemukan")
		return
	}
	if err != nil {
		log.Printf("Update transaction error: %v", err)
		writeServerError(w, err)
		return
	}

	if identity, ok := middleware.IdentityFrom(r.Context()); ok {
		h.sink.Record(activitylog.Entry{
			UserID:   identity.ID,
			FamilyID: &transaction.FamilyID,
			Details: map[string]any{
				"action":         "update_transaction",
				"transaction_id": transaction.ID,
				"transaction_no": transaction.TransactionNo,
			},
		})
	}

	writeSuccess(w, http.StatusOK, "Transaksi berhasil diupdate", transaction)
}

func (h *TransactionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "ID transaksi harus diisi")
		return
	}

	transaction, err := h.transactionRepo.GetByID(r.Context(), id)
	if errors.Is(err, database.ErrTransactionNotFound) {
		writeError(w, http.StatusNotFound, "Transaksi tidak ditemukan")
		return
	}
	if err != nil {
		writeServerError(w, err)
		return
	}

	if err := h.transactionRepo.Delete(r.Context(), id); err != nil {
		log.Printf("Delete transaction error: %v", err)
		writeServerError(w, err)
		return
	}

	if identity, ok := middleware.IdentityFrom(r.Context()); ok {
		h.sink.Record(activitylog.Entry{
			UserID:   identity.ID,
			FamilyID: &transaction.FamilyID,
			Details: map[string]any{
				"action":         "delete_transaction",
				"transaction_id": transaction.ID,
				"transaction_no": transaction.TransactionNo,
			},
		})
	}

	writeSuccess(w, http.StatusOK, "Transaksi berhasil dihapus", nil)
}

// parseDate accepts either a full RFC 3339 timestamp or a bare date.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}
