package store

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/SamHez/bodymax-gym/internal/api"
	"github.com/SamHez/bodymax-gym/internal/domain"
)

// ExpenseDraft is staff input for a new expense. Description and payment
// method carry defaults; amount and category are mandatory.
type ExpenseDraft struct {
	Amount      int64
	Category    string
	Description string
	Method      domain.PaymentMethod
	BranchID    string
	ExpenseDate time.Time
}

// Expenses caches the expense ledger for the current branch scope, newest
// first.
type Expenses struct {
	API    *api.Client
	Logger *slog.Logger

	mu       sync.Mutex
	branch   string
	expenses []domain.Expense
	loading  bool
	gen      int
}

// SetBranch changes the scope and reloads.
func (s *Expenses) SetBranch(ctx context.Context, branchID string) {
	s.mu.Lock()
	s.branch = branchID
	s.mu.Unlock()
	s.Load(ctx)
}

// Load fetches the expense list for the current scope.
func (s *Expenses) Load(ctx context.Context) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.loading = true
	path := "/expenses" + branchQuery(s.branch)
	s.mu.Unlock()

	var expenses []domain.Expense
	err := s.API.Do(ctx, http.MethodGet, path, nil, &expenses)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.loading = false
	if err != nil {
		s.Logger.Error("fetch expenses failed", "err", err)
		return
	}
	s.expenses = expenses
}

// Expenses returns a copy of the cached ledger.
func (s *Expenses) Expenses() []domain.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

func (s *Expenses) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Add validates the draft, submits it, and prepends the server's echo (with
// its assigned id and recording-user attribution) to the cache.
func (s *Expenses) Add(ctx context.Context, draft ExpenseDraft) (*domain.Expense, error) {
	if err := domain.ValidateExpenseDraft(draft.Amount, draft.Category); err != nil {
		return nil, err
	}
	if draft.Description == "" {
		draft.Description = "Miscellaneous"
	}
	if draft.Method == "" {
		draft.Method = domain.PayCash
	}
	if draft.ExpenseDate.IsZero() {
		draft.ExpenseDate = time.Now().UTC()
	}

	body := map[string]any{
		"amount":         draft.Amount,
		"category":       draft.Category,
		"description":    draft.Description,
		"payment_method": draft.Method,
		"branch_id":      draft.BranchID,
		"expense_date":   draft.ExpenseDate.Format(time.RFC3339),
	}
	var created domain.Expense
	if err := s.API.DoIdempotent(ctx, http.MethodPost, "/expenses", body, &created); err != nil {
		s.Logger.Error("add expense failed", "err", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append([]domain.Expense{created}, s.expenses...)
	return &created, nil
}

// Delete removes an expense server-side, then from the cache.
func (s *Expenses) Delete(ctx context.Context, id string) error {
	if err := s.API.Do(ctx, http.MethodDelete, "/expenses/"+url.PathEscape(id), nil, nil); err != nil {
		s.Logger.Error("delete expense failed", "id", id, "err", err)
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.expenses[:0]
	for _, e := range s.expenses {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.expenses = kept
	return nil
}
