// Package stub is an in-memory implementation of the gym API surface, used
// for local development and for exercising the client layer in tests. It
// enforces the invariants the real backend owns: attendance uniqueness per
// (member, day), referential integrity of payments and expenses, and
// idempotency-key replay on creates.
package stub

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/SamHez/bodymax-gym/internal/domain"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("already exists")
	ErrBadReference  = errors.New("unknown reference")
	ErrInvalidLogin  = errors.New("invalid credentials")
	ErrAlreadyInside = errors.New("member already checked in today")
)

type userRecord struct {
	domain.User
	PasswordHash []byte
}

// Memstore holds all stub state behind one mutex.
type Memstore struct {
	mu         sync.Mutex
	users      map[string]*userRecord // keyed by lower-cased email
	branches   []domain.Branch
	members    map[string]domain.Member
	payments   []domain.Payment
	expenses   []domain.Expense
	attendance map[string]map[string]time.Time // day -> member id -> check-in
	idem       map[string]any                  // idempotency key -> first response
}

// NewMemstore seeds branches and a bootstrap manager account
// (admin@bodymax.rw / admin123).
func NewMemstore() *Memstore {
	s := &Memstore{
		users:      make(map[string]*userRecord),
		members:    make(map[string]domain.Member),
		attendance: make(map[string]map[string]time.Time),
		idem:       make(map[string]any),
		branches: []domain.Branch{
			{ID: uuid.NewString(), Name: "Kigali Heights", Code: "KGL"},
			{ID: uuid.NewString(), Name: "Remera", Code: "RMR"},
			{ID: uuid.NewString(), Name: "Nyamirambo", Code: "NYM"},
		},
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	s.users["admin@bodymax.rw"] = &userRecord{
		User:         domain.User{ID: uuid.NewString(), Email: "admin@bodymax.rw", Role: domain.RoleManager},
		PasswordHash: hash,
	}
	return s
}

// replay returns the stored response for a previously seen idempotency key.
func (s *Memstore) replay(key string) (any, bool) {
	if key == "" {
		return nil, false
	}
	v, ok := s.idem[key]
	return v, ok
}

func (s *Memstore) remember(key string, v any) {
	if key != "" {
		s.idem[key] = v
	}
}

// CreateUser registers a staff account. Duplicate emails are rejected.
func (s *Memstore) CreateUser(idemKey, email, password, branchID string, role domain.UserRole) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.replay(idemKey); ok {
		return v.(domain.User), nil
	}
	email = strings.ToLower(email)
	if _, exists := s.users[email]; exists {
		return domain.User{}, ErrDuplicate
	}
	if role == "" {
		role = domain.RoleReceptionist
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user := domain.User{ID: uuid.NewString(), Email: email, Role: role}
	if branchID != "" {
		if _, err := s.branchByIDLocked(branchID); err != nil {
			return domain.User{}, ErrBadReference
		}
		user.BranchID = &branchID
	}
	s.users[email] = &userRecord{User: user, PasswordHash: hash}
	s.remember(idemKey, user)
	return user, nil
}

// Authenticate verifies credentials.
func (s *Memstore) Authenticate(email, password string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[strings.ToLower(email)]
	if !ok {
		return domain.User{}, ErrInvalidLogin
	}
	if err := bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(password)); err != nil {
		return domain.User{}, ErrInvalidLogin
	}
	return rec.User, nil
}

// UserByEmail resolves a profile.
func (s *Memstore) UserByEmail(email string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[strings.ToLower(email)]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	return rec.User, nil
}

// Branches returns the read-only branch reference data.
func (s *Memstore) Branches() []domain.Branch {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Branch, len(s.branches))
	copy(out, s.branches)
	return out
}

func (s *Memstore) branchByIDLocked(id string) (domain.Branch, error) {
	for _, b := range s.branches {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Branch{}, ErrNotFound
}

// CreateMember stores a new member. Member codes are unique; a collision
// yields ErrDuplicate so the client can redraw its code.
func (s *Memstore) CreateMember(idemKey string, m domain.Member) (domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.replay(idemKey); ok {
		return v.(domain.Member), nil
	}
	if _, err := s.branchByIDLocked(m.BranchID); err != nil {
		return domain.Member{}, ErrBadReference
	}
	for _, existing := range s.members {
		if existing.MemberCode == m.MemberCode {
			return domain.Member{}, ErrDuplicate
		}
	}
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	m.Status = domain.StatusAt(m.ExpiryDate, m.CreatedAt)
	s.members[m.ID] = m
	s.remember(idemKey, m)
	return m, nil
}

// ListMembers returns members, optionally scoped to a branch, with status
// derived at read time so it can never drift from the expiry date.
func (s *Memstore) ListMembers(branchID string, now time.Time) []domain.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Member, 0, len(s.members))
	for _, m := range s.members {
		if branchID != "" && m.BranchID != branchID {
			continue
		}
		m.Status = domain.StatusAt(m.ExpiryDate, now)
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// DeleteMember removes a member.
func (s *Memstore) DeleteMember(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[id]; !ok {
		return ErrNotFound
	}
	delete(s.members, id)
	return nil
}

// CreatePayment appends an immutable payment record.
func (s *Memstore) CreatePayment(idemKey string, p domain.Payment) (domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.replay(idemKey); ok {
		return v.(domain.Payment), nil
	}
	if _, ok := s.members[p.MemberID]; !ok {
		return domain.Payment{}, ErrBadReference
	}
	p.ID = uuid.NewString()
	if p.TransactionDate.IsZero() {
		p.TransactionDate = time.Now().UTC()
	}
	s.payments = append(s.payments, p)
	s.remember(idemKey, p)
	return p, nil
}

// PaymentCount reports how many payments exist for a member.
func (s *Memstore) PaymentCount(memberID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.payments {
		if p.MemberID == memberID {
			n++
		}
	}
	return n
}

// CreateExpense appends an expense record.
func (s *Memstore) CreateExpense(idemKey string, e domain.Expense) (domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.replay(idemKey); ok {
		return v.(domain.Expense), nil
	}
	if e.BranchID != "" {
		if _, err := s.branchByIDLocked(e.BranchID); err != nil {
			return domain.Expense{}, ErrBadReference
		}
	}
	e.ID = uuid.NewString()
	if e.ExpenseDate.IsZero() {
		e.ExpenseDate = time.Now().UTC()
	}
	s.expenses = append(s.expenses, e)
	s.remember(idemKey, e)
	return e, nil
}

// ListExpenses returns expenses newest-first, optionally scoped to a branch.
func (s *Memstore) ListExpenses(branchID string) []domain.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		if branchID != "" && e.BranchID != branchID {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpenseDate.After(out[j].ExpenseDate) })
	return out
}

// DeleteExpense removes an expense record.
func (s *Memstore) DeleteExpense(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// CheckIn records today's attendance for a member. At most one record per
// (member, UTC day) exists; duplicates are rejected.
func (s *Memstore) CheckIn(memberID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[memberID]; !ok {
		return ErrBadReference
	}
	day := now.UTC().Format("2006-01-02")
	if s.attendance[day] == nil {
		s.attendance[day] = make(map[string]time.Time)
	}
	if _, checked := s.attendance[day][memberID]; checked {
		return ErrAlreadyInside
	}
	s.attendance[day][memberID] = now.UTC()
	return nil
}

// RemoveCheckIn undoes today's attendance for a member.
func (s *Memstore) RemoveCheckIn(memberID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	day := now.UTC().Format("2006-01-02")
	if _, checked := s.attendance[day][memberID]; !checked {
		return ErrNotFound
	}
	delete(s.attendance[day], memberID)
	return nil
}

// AttendanceToday lists today's checked-in member ids, optionally scoped to
// the members' branch. Count always equals the id list length.
func (s *Memstore) AttendanceToday(branchID string, now time.Time) domain.AttendanceToday {
	s.mu.Lock()
	defer s.mu.Unlock()
	day := now.UTC().Format("2006-01-02")
	ids := make([]string, 0, len(s.attendance[day]))
	for id := range s.attendance[day] {
		if branchID != "" {
			if m, ok := s.members[id]; !ok || m.BranchID != branchID {
				continue
			}
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return domain.AttendanceToday{Count: len(ids), CheckedInIDs: ids}
}

// FinanceStats aggregates payments and expenses for the scope.
func (s *Memstore) FinanceStats(branchID string, now time.Time) domain.FinanceStats {
	s.mu.Lock()
	payments := make([]domain.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		if branchID != "" {
			if m, ok := s.members[p.MemberID]; !ok || m.BranchID != branchID {
				continue
			}
		}
		payments = append(payments, p)
	}
	expenses := make([]domain.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		if branchID != "" && e.BranchID != branchID {
			continue
		}
		expenses = append(expenses, e)
	}
	s.mu.Unlock()
	return domain.AggregateFinance(payments, expenses, now)
}
