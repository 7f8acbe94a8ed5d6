// Package app is the root orchestration layer: it gates routes behind the
// session and role, and coordinates the two-step member registration flow.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/SamHez/bodymax-gym/internal/api"
	"github.com/SamHez/bodymax-gym/internal/domain"
	"github.com/SamHez/bodymax-gym/internal/session"
	"github.com/SamHez/bodymax-gym/internal/store"
)

// Route names mirror the dashboard's navigation tabs.
const (
	RouteDashboard  = "dashboard"
	RouteMembers    = "members"
	RouteAttendance = "attendance"
	RouteFinance    = "finance"
	RouteExpenses   = "expenses"
	RouteExpiry     = "expiry"
	RouteTrainers   = "trainers"
)

var managerOnlyRoutes = map[string]struct{}{
	RouteFinance:  {},
	RouteExpenses: {},
	RouteExpiry:   {},
	RouteTrainers: {},
}

// codeRetries bounds how often a colliding member code is regenerated before
// the error is surfaced.
const codeRetries = 3

// RegistrationForm is the validated input of the registration flow.
type RegistrationForm struct {
	FullName   string
	Phone      string
	Category   domain.MembershipCategory
	Duration   domain.BillingDuration
	BranchID   string
	BranchCode string
	Method     domain.PaymentMethod
	PictureURL *string
}

// PendingPayment records a registration whose payment step failed. The saga
// keeps the original idempotency key so a retry cannot double-charge.
type PendingPayment struct {
	MemberID string
	Amount   int64
	Method   domain.PaymentMethod
	Key      string
}

// Controller owns session lifecycle and cross-store orchestration.
type Controller struct {
	API        *api.Client
	Session    *session.Manager
	Members    *store.Members
	Attendance *store.Attendance
	Finance    *store.Finance
	Expenses   *store.Expenses
	Logger     *slog.Logger

	unsubscribe func()
	pending     *PendingPayment
}

// Start restores any existing session and subscribes to auth-state changes
// for the lifetime of the application. Close undoes the subscription.
func (c *Controller) Start(ctx context.Context, token string) *domain.User {
	c.unsubscribe = c.Session.Subscribe(func(u *domain.User) {
		if u == nil {
			c.Logger.Info("session ended")
		}
	})
	if token == "" {
		return nil
	}
	user, err := c.Session.Restore(ctx, token)
	if err != nil {
		c.Logger.Warn("session restore failed", "err", err)
		return nil
	}
	return user
}

func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// CanAccess reports whether the role may open the route. Finance, expense,
// trainer and expiry views are manager-only; receptionists land back on the
// dashboard.
func (c *Controller) CanAccess(role domain.UserRole, route string) bool {
	if _, restricted := managerOnlyRoutes[route]; !restricted {
		return true
	}
	return role == domain.RoleManager
}

// ResolveRoute returns the route to render for a navigation attempt.
func (c *Controller) ResolveRoute(role domain.UserRole, route string) string {
	if c.CanAccess(role, route) {
		return route
	}
	return RouteDashboard
}

// Register runs the two-step enrollment: create the member record, then an
// initial payment for the computed fee. Step two failing does not roll back
// step one; the payment is kept as a pending record and can be retried with
// RetryPendingPayment.
func (c *Controller) Register(ctx context.Context, form RegistrationForm) (*domain.Member, error) {
	if err := domain.ValidateFullName(form.FullName); err != nil {
		return nil, err
	}
	form.Phone = domain.NormalizePhone(form.Phone)
	if err := domain.ValidatePhone(form.Phone); err != nil {
		return nil, err
	}
	if form.Method == "" {
		form.Method = domain.PayCash
	}

	member, err := c.createMember(ctx, form)
	if err != nil {
		return nil, err
	}

	fee := domain.Price(form.Category, form.Duration)
	payKey := uuid.NewString()
	if err := c.createPayment(ctx, member.ID, fee, form.Method, payKey); err != nil {
		// Deliberately non-fatal: the member stays registered, the payment
		// stays owed.
		c.pending = &PendingPayment{MemberID: member.ID, Amount: fee, Method: form.Method, Key: payKey}
		c.Logger.Error("registration payment failed", "member", member.ID, "err", err)
		return member, fmt.Errorf("member registered but payment failed: %w", err)
	}
	return member, nil
}

// Pending returns the unpaid registration payment, if any.
func (c *Controller) Pending() *PendingPayment {
	return c.pending
}

// RetryPendingPayment resubmits the failed registration payment, reusing its
// idempotency key so the server collapses any duplicate.
func (c *Controller) RetryPendingPayment(ctx context.Context) error {
	p := c.pending
	if p == nil {
		return nil
	}
	if err := c.createPayment(ctx, p.MemberID, p.Amount, p.Method, p.Key); err != nil {
		return err
	}
	c.pending = nil
	return nil
}

func (c *Controller) createMember(ctx context.Context, form RegistrationForm) (*domain.Member, error) {
	start := time.Now().UTC()
	expiry := start.AddDate(0, 0, domain.MembershipDays(form.Duration))

	var lastErr error
	for attempt := 0; attempt < codeRetries; attempt++ {
		body := map[string]any{
			"member_code": GenerateMemberCode(form.BranchCode, start),
			"branch_id":   form.BranchID,
			"branch_code": form.BranchCode,
			"full_name":   form.FullName,
			"phone":       form.Phone,
			"category":    form.Category,
			"duration":    form.Duration,
			"picture_url": form.PictureURL,
			"start_date":  start.Format("2006-01-02"),
			"expiry_date": expiry.Format("2006-01-02"),
		}
		var member domain.Member
		err := c.API.DoIdempotent(ctx, http.MethodPost, "/members", body, &member)
		if err == nil {
			return &member, nil
		}
		lastErr = err
		// Only a code collision is worth a fresh draw.
		if !isConflict(err) {
			return nil, err
		}
		c.Logger.Warn("member code collision, regenerating", "attempt", attempt+1)
	}
	return nil, lastErr
}

func (c *Controller) createPayment(ctx context.Context, memberID string, amount int64, method domain.PaymentMethod, key string) error {
	body := map[string]any{
		"member_id":      memberID,
		"amount":         amount,
		"payment_method": method,
	}
	return c.API.DoWithKey(ctx, http.MethodPost, "/payments", key, body, nil)
}

func isConflict(err error) bool {
	var apiErr *api.Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict
}

// GenerateMemberCode builds the human-readable member code: brand prefix,
// branch code, year, and a random 4-digit suffix.
func GenerateMemberCode(branchCode string, now time.Time) string {
	return fmt.Sprintf("BM-%s-%d-%d", branchCode, now.Year(), 1000+rand.Intn(9000))
}
