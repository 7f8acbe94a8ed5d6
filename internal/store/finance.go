package store

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/SamHez/bodymax-gym/internal/api"
	"github.com/SamHez/bodymax-gym/internal/domain"
)

// DefaultPollInterval is how often live views re-fetch finance stats.
const DefaultPollInterval = 30 * time.Second

// Finance caches the aggregated revenue/expense statistics for the current
// branch scope and optionally keeps them fresh on a fixed interval.
type Finance struct {
	API          *api.Client
	Logger       *slog.Logger
	PollInterval time.Duration

	mu      sync.Mutex
	branch  string
	stats   domain.FinanceStats
	loading bool
	gen     int
}

// SetBranch changes the scope and refreshes.
func (s *Finance) SetBranch(ctx context.Context, branchID string) {
	s.mu.Lock()
	s.branch = branchID
	s.mu.Unlock()
	s.Refresh(ctx)
}

// Refresh fetches the stats for the current scope. A response that lost the
// race against a scope change is discarded.
func (s *Finance) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.loading = true
	path := "/finance/stats" + branchQuery(s.branch)
	s.mu.Unlock()

	var stats domain.FinanceStats
	err := s.API.Do(ctx, http.MethodGet, path, nil, &stats)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.loading = false
	if err != nil {
		s.Logger.Error("fetch finance stats failed", "err", err)
		return
	}
	s.stats = stats
}

// Stats returns the cached aggregate.
func (s *Finance) Stats() domain.FinanceStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Finance) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// StartPolling refreshes on a fixed interval until ctx is done. The ticker is
// tied to the consuming view's lifecycle; cancelling the context stops all
// cache writes.
func (s *Finance) StartPolling(ctx context.Context) {
	interval := s.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Refresh(ctx)
			}
		}
	}()
}
