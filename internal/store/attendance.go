package store

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/SamHez/bodymax-gym/internal/api"
	"github.com/SamHez/bodymax-gym/internal/domain"
)

// Attendance tracks today's check-ins for the current branch scope. Check-in
// and undo update the cache only after the server confirms, so a server-side
// duplicate rejection never leaves phantom local state. The (member, day)
// uniqueness invariant itself is the server's responsibility.
type Attendance struct {
	API    *api.Client
	Logger *slog.Logger

	mu           sync.Mutex
	branch       string
	todayCount   int
	checkedInIDs []string
	loading      bool
	gen          int
}

// SetBranch changes the scope and reloads.
func (s *Attendance) SetBranch(ctx context.Context, branchID string) {
	s.mu.Lock()
	s.branch = branchID
	s.mu.Unlock()
	s.Load(ctx)
}

// Load fetches today's checked-in member ids and count.
func (s *Attendance) Load(ctx context.Context) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.loading = true
	path := "/attendance/today" + branchQuery(s.branch)
	s.mu.Unlock()

	var today domain.AttendanceToday
	err := s.API.Do(ctx, http.MethodGet, path, nil, &today)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.loading = false
	if err != nil {
		s.Logger.Error("fetch attendance failed", "err", err)
		return
	}
	if today.Count != len(today.CheckedInIDs) {
		s.Logger.Warn("attendance count mismatch", "count", today.Count, "ids", len(today.CheckedInIDs))
	}
	s.todayCount = today.Count
	s.checkedInIDs = today.CheckedInIDs
}

// TodayCount returns the cached check-in count.
func (s *Attendance) TodayCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.todayCount
}

// CheckedInIDs returns a copy of the cached id set.
func (s *Attendance) CheckedInIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.checkedInIDs))
	copy(out, s.checkedInIDs)
	return out
}

func (s *Attendance) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// CheckIn records a check-in for the member and, once confirmed, bumps the
// local count and id set.
func (s *Attendance) CheckIn(ctx context.Context, memberID string) error {
	body := map[string]string{"memberId": memberID}
	if err := s.API.DoIdempotent(ctx, http.MethodPost, "/attendance/checkin", body, nil); err != nil {
		s.Logger.Error("check-in failed", "member", memberID, "err", err)
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todayCount++
	s.checkedInIDs = append(s.checkedInIDs, memberID)
	return nil
}

// RemoveCheckIn undoes a check-in. The count never goes below zero.
func (s *Attendance) RemoveCheckIn(ctx context.Context, memberID string) error {
	if err := s.API.Do(ctx, http.MethodDelete, "/attendance/checkin/"+url.PathEscape(memberID), nil, nil); err != nil {
		s.Logger.Error("remove check-in failed", "member", memberID, "err", err)
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.todayCount > 0 {
		s.todayCount--
	}
	kept := s.checkedInIDs[:0]
	for _, id := range s.checkedInIDs {
		if id != memberID {
			kept = append(kept, id)
		}
	}
	s.checkedInIDs = kept
	return nil
}
