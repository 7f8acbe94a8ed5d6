// Package session owns the authenticated session for the lifetime of the
// application: it signs in, caches the bearer token and user identity, and
// notifies subscribers on every auth-state change.
package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/SamHez/bodymax-gym/internal/api"
	"github.com/SamHez/bodymax-gym/internal/domain"
)

// Manager is the single owner of session state. It implements api.TokenSource
// so the client attaches the token to outbound requests.
type Manager struct {
	API    *api.Client
	Logger *slog.Logger

	mu      sync.Mutex
	token   string
	user    *domain.User
	nextSub int
	subs    map[int]func(*domain.User)
}

type authResponse struct {
	AccessToken string      `json:"access_token"`
	User        domain.User `json:"user"`
}

// Token returns the current bearer token, or "" when signed out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Current returns the signed-in user, or nil.
func (m *Manager) Current() *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Subscribe registers a callback invoked on sign-in (with the user) and
// sign-out (with nil). The returned func removes the subscription.
func (m *Manager) Subscribe(fn func(*domain.User)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subs == nil {
		m.subs = make(map[int]func(*domain.User))
	}
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// SignIn exchanges credentials for a session.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	var resp authResponse
	body := map[string]string{"email": email, "password": password}
	if err := m.API.Do(ctx, http.MethodPost, "/signin", body, &resp); err != nil {
		return nil, err
	}
	m.setSession(resp.AccessToken, &resp.User)
	return &resp.User, nil
}

// SignUp creates a staff account and signs it in.
func (m *Manager) SignUp(ctx context.Context, email, password, branchID string, role domain.UserRole) (*domain.User, error) {
	var resp authResponse
	body := map[string]string{
		"email":     email,
		"password":  password,
		"branch_id": branchID,
		"role":      string(role),
	}
	if err := m.API.DoIdempotent(ctx, http.MethodPost, "/signup", body, &resp); err != nil {
		return nil, err
	}
	m.setSession(resp.AccessToken, &resp.User)
	return &resp.User, nil
}

// Restore resumes a previously issued session by resolving the profile behind
// the token. An invalid token leaves the manager signed out.
func (m *Manager) Restore(ctx context.Context, token string) (*domain.User, error) {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	var user domain.User
	if err := m.API.Do(ctx, http.MethodGet, "/profile", nil, &user); err != nil {
		m.mu.Lock()
		m.token = ""
		m.mu.Unlock()
		return nil, err
	}
	m.setSession(token, &user)
	return &user, nil
}

// SignOut drops the session and notifies subscribers.
func (m *Manager) SignOut() {
	m.setSession("", nil)
}

func (m *Manager) setSession(token string, user *domain.User) {
	m.mu.Lock()
	m.token = token
	m.user = user
	subs := make([]func(*domain.User), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	if m.Logger != nil {
		if user != nil {
			m.Logger.Info("signed in", "email", user.Email, "role", user.Role)
		} else {
			m.Logger.Info("signed out")
		}
	}
	for _, fn := range subs {
		fn(user)
	}
}
