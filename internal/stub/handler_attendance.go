package stub

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type AttendanceHandler struct {
	Store *Memstore
}

func (h AttendanceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/attendance/today", h.today)
	r.Post("/attendance/checkin", h.checkIn)
	r.Delete("/attendance/checkin/{memberID}", h.removeCheckIn)
}

func (h AttendanceHandler) today(w http.ResponseWriter, r *http.Request) {
	today := h.Store.AttendanceToday(r.URL.Query().Get("branch_id"), time.Now())
	writeJSON(w, http.StatusOK, today)
}

func (h AttendanceHandler) checkIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID string `json:"memberId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.MemberID == "" {
		writeError(w, http.StatusBadRequest, "memberId is required")
		return
	}
	if err := h.Store.CheckIn(req.MemberID, time.Now()); err != nil {
		switch {
		case errors.Is(err, ErrAlreadyInside):
			writeError(w, http.StatusConflict, "member already checked in today")
		case errors.Is(err, ErrBadReference):
			writeError(w, http.StatusBadRequest, "unknown member")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h AttendanceHandler) removeCheckIn(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")
	if err := h.Store.RemoveCheckIn(memberID, time.Now()); err != nil {
		writeError(w, http.StatusNotFound, "no check-in recorded today")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
