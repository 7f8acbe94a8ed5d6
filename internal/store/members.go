// Package store holds the client-side caches of remote state, one store per
// slice (members, attendance, finance, expenses). Stores mutate their cache
// only after the server confirms; failed loads leave prior state intact and
// are logged rather than thrown at the caller, while user-initiated mutations
// return the error for display.
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

// Members caches the member list for the current branch scope.
type Members struct {
	API    *api.Client
	Logger *slog.Logger

	mu      sync.Mutex
	branch  string
	members []domain.Member
	loading bool
	gen     int
}

// SetBranch changes the scope ("" means all branches) and reloads.
func (s *Members) SetBranch(ctx context.Context, branchID string) {
	s.mu.Lock()
	s.branch = branchID
	s.mu.Unlock()
	s.Load(ctx)
}

// Load fetches the member list for the current scope. Responses belonging to
// a superseded scope are discarded.
func (s *Members) Load(ctx context.Context) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.loading = true
	path := "/members" + branchQuery(s.branch)
	s.mu.Unlock()

	var members []domain.Member
	err := s.API.Do(ctx, http.MethodGet, path, nil, &members)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.loading = false
	if err != nil {
		s.Logger.Error("fetch members failed", "err", err)
		return
	}
	s.members = members
}

// Members returns a copy of the cached list.
func (s *Members) Members() []domain.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Member, len(s.members))
	copy(out, s.members)
	return out
}

func (s *Members) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Delete removes a member server-side, then drops it from the cache without a
// refetch. Deleting an id that is not cached is a no-op locally.
func (s *Members) Delete(ctx context.Context, id string) error {
	if err := s.API.Do(ctx, http.MethodDelete, "/members/"+url.PathEscape(id), nil, nil); err != nil {
		s.Logger.Error("delete member failed", "id", id, "err", err)
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.members[:0]
	for _, m := range s.members {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.members = kept
	return nil
}

func branchQuery(branchID string) string {
	if branchID == "" {
		return ""
	}
	return "?branch_id=" + url.QueryEscape(branchID)
}
