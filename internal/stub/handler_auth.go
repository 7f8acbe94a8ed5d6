package stub

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SamHez/bodymax-gym/internal/api"
	"github.com/SamHez/bodymax-gym/internal/domain"
	"github.com/SamHez/bodymax-gym/internal/stub/authctx"
)

type AuthHandler struct {
	Store     *Memstore
	JWTSecret string
	TokenTTL  time.Duration
}

func (h AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/signin", h.signin)
}

func (h AuthHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/profile", h.profile)
}

func (h AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		BranchID string `json:"branch_id"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	user, err := h.Store.CreateUser(r.Header.Get(api.IdempotencyHeader),
		strings.ToLower(req.Email), req.Password, req.BranchID, domain.UserRole(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicate):
			writeError(w, http.StatusConflict, "email already used")
		case errors.Is(err, ErrBadReference):
			writeError(w, http.StatusBadRequest, "unknown branch")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	h.writeAuthResponse(w, user)
}

func (h AuthHandler) signin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	user, err := h.Store.Authenticate(strings.ToLower(req.Email), req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	h.writeAuthResponse(w, user)
}

func (h AuthHandler) profile(w http.ResponseWriter, r *http.Request) {
	current := authctx.FromContext(r.Context())
	if current == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	user, err := h.Store.UserByEmail(current.Email)
	if err != nil {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h AuthHandler) writeAuthResponse(w http.ResponseWriter, user domain.User) {
	token, err := issueToken(h.JWTSecret, user, h.TokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"user":         user,
	})
}
