package stub

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type BranchHandler struct {
	Store *Memstore
}

func (h BranchHandler) RegisterRoutes(r chi.Router) {
	r.Get("/branches", h.list)
}

func (h BranchHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Branches())
}

// HealthHandler exposes a readiness probe.
type HealthHandler struct{}

func (h HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
}

func (h HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
