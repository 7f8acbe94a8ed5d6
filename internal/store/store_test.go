package store_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SamHez/bodymax-gym/internal/api"
	"github.com/SamHez/bodymax-gym/internal/config"
	"github.com/SamHez/bodymax-gym/internal/domain"
	"github.com/SamHez/bodymax-gym/internal/session"
	"github.com/SamHez/bodymax-gym/internal/stub"
)

// testEnv runs the dev server in-process and signs in the seeded manager.
type testEnv struct {
	Store  *stub.Memstore
	Client *api.Client
	Logger *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{JWTSecret: "test-secret", AccessTokenTTL: time.Hour}
	ms := stub.NewMemstore()

	srv := httptest.NewServer(stub.NewRouter(cfg, logger, ms))
	t.Cleanup(srv.Close)

	sessions := &session.Manager{Logger: logger}
	client := api.New(srv.URL+"/api", sessions)
	sessions.API = client

	_, err := sessions.SignIn(context.Background(), "admin@bodymax.rw", "admin123")
	require.NoError(t, err)

	return &testEnv{Store: ms, Client: client, Logger: logger}
}

func nowUTC() time.Time { return time.Now().UTC() }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// waitFor polls a condition until it holds or the test times out.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

// seedMember creates a member directly in the memstore.
func (e *testEnv) seedMember(t *testing.T, name, code string) domain.Member {
	t.Helper()
	branch := e.Store.Branches()[0]
	m, err := e.Store.CreateMember("", domain.Member{
		MemberCode: code,
		BranchID:   branch.ID,
		BranchCode: branch.Code,
		FullName:   name,
		Phone:      "+250781234567",
		Category:   domain.CategoryNormal,
		Duration:   domain.DurationMonthly,
		StartDate:  time.Now().UTC().Format("2006-01-02"),
		ExpiryDate: time.Now().UTC().AddDate(0, 0, 30).Format("2006-01-02"),
	})
	require.NoError(t, err)
	return m
}
