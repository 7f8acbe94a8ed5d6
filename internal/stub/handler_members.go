package stub

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SamHez/bodymax-gym/internal/api"
	"github.com/SamHez/bodymax-gym/internal/domain"
)

type MemberHandler struct {
	Store *Memstore
}

func (h MemberHandler) RegisterRoutes(r chi.Router) {
	r.Get("/members", h.list)
	r.Post("/members", h.create)
	r.Delete("/members/{id}", h.delete)
	r.Post("/payments", h.createPayment)
}

func (h MemberHandler) list(w http.ResponseWriter, r *http.Request) {
	members := h.Store.ListMembers(r.URL.Query().Get("branch_id"), time.Now())
	writeJSON(w, http.StatusOK, members)
}

func (h MemberHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberCode string  `json:"member_code"`
		BranchID   string  `json:"branch_id"`
		BranchCode string  `json:"branch_code"`
		FullName   string  `json:"full_name"`
		Phone      string  `json:"phone"`
		Email      *string `json:"email"`
		Category   string  `json:"category"`
		Duration   string  `json:"duration"`
		PictureURL *string `json:"picture_url"`
		StartDate  string  `json:"start_date"`
		ExpiryDate string  `json:"expiry_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.MemberCode == "" || req.FullName == "" {
		writeError(w, http.StatusBadRequest, "member_code and full_name are required")
		return
	}
	member, err := h.Store.CreateMember(r.Header.Get(api.IdempotencyHeader), domain.Member{
		MemberCode: req.MemberCode,
		BranchID:   req.BranchID,
		BranchCode: req.BranchCode,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Email:      req.Email,
		Category:   domain.MembershipCategory(req.Category),
		Duration:   domain.BillingDuration(req.Duration),
		PictureURL: req.PictureURL,
		StartDate:  req.StartDate,
		ExpiryDate: req.ExpiryDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicate):
			writeError(w, http.StatusConflict, "member code already exists")
		case errors.Is(err, ErrBadReference):
			writeError(w, http.StatusBadRequest, "unknown branch")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (h MemberHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteMember(id); err != nil {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h MemberHandler) createPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID string `json:"member_id"`
		Amount   int64  `json:"amount"`
		Method   string `json:"payment_method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	payment, err := h.Store.CreatePayment(r.Header.Get(api.IdempotencyHeader), domain.Payment{
		MemberID: req.MemberID,
		Amount:   req.Amount,
		Method:   domain.PaymentMethod(req.Method),
	})
	if err != nil {
		if errors.Is(err, ErrBadReference) {
			writeError(w, http.StatusBadRequest, "unknown member")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}
