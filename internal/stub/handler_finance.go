package stub

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SamHez/bodymax-gym/internal/api"
	"github.com/SamHez/bodymax-gym/internal/domain"
	"github.com/SamHez/bodymax-gym/internal/stub/authctx"
)

type FinanceHandler struct {
	Store *Memstore
}

func (h FinanceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/finance/stats", h.stats)
	r.Get("/expenses", h.listExpenses)
	r.Post("/expenses", h.createExpense)
	r.Delete("/expenses/{id}", h.deleteExpense)
}

func (h FinanceHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats := h.Store.FinanceStats(r.URL.Query().Get("branch_id"), time.Now())
	writeJSON(w, http.StatusOK, stats)
}

func (h FinanceHandler) listExpenses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.ListExpenses(r.URL.Query().Get("branch_id")))
}

func (h FinanceHandler) createExpense(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		Amount      int64  `json:"amount"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Method      string `json:"payment_method"`
		BranchID    string `json:"branch_id"`
		ExpenseDate string `json:"expense_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if verr := domain.ValidateExpenseDraft(req.Amount, req.Category); verr != nil {
		writeError(w, http.StatusBadRequest, verr.Message)
		return
	}
	expenseDate := time.Now().UTC()
	if req.ExpenseDate != "" {
		if t, err := time.Parse(time.RFC3339, req.ExpenseDate); err == nil {
			expenseDate = t
		}
	}
	expense, err := h.Store.CreateExpense(r.Header.Get(api.IdempotencyHeader), domain.Expense{
		BranchID:    req.BranchID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Method:      domain.PaymentMethod(req.Method),
		ExpenseDate: expenseDate,
		RecordedBy:  user.ID,
	})
	if err != nil {
		if errors.Is(err, ErrBadReference) {
			writeError(w, http.StatusBadRequest, "unknown branch")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (h FinanceHandler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteExpense(id); err != nil {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
