package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamHez/bodymax-gym/internal/store"
)

func TestAttendanceCheckInAndUndo(t *testing.T) {
	env := newTestEnv(t)
	m := env.seedMember(t, "Jean Mugisha", "BM-KGL-2026-1001")

	att := &store.Attendance{API: env.Client, Logger: env.Logger}
	att.Load(context.Background())
	require.Equal(t, 0, att.TodayCount())

	require.NoError(t, att.CheckIn(context.Background(), m.ID))
	assert.Equal(t, 1, att.TodayCount())
	assert.Contains(t, att.CheckedInIDs(), m.ID)

	require.NoError(t, att.RemoveCheckIn(context.Background(), m.ID))
	assert.Equal(t, 0, att.TodayCount())
	assert.NotContains(t, att.CheckedInIDs(), m.ID)
}

func TestAttendanceDuplicateCheckInLeavesStateUntouched(t *testing.T) {
	env := newTestEnv(t)
	m := env.seedMember(t, "Jean Mugisha", "BM-KGL-2026-1001")

	att := &store.Attendance{API: env.Client, Logger: env.Logger}
	att.Load(context.Background())

	require.NoError(t, att.CheckIn(context.Background(), m.ID))
	err := att.CheckIn(context.Background(), m.ID)
	require.Error(t, err, "server enforces one check-in per member per day")

	assert.Equal(t, 1, att.TodayCount(), "rejected duplicate must not mutate local state")
	assert.Equal(t, []string{m.ID}, att.CheckedInIDs())
}

func TestAttendanceRemoveNeverGoesNegative(t *testing.T) {
	env := newTestEnv(t)
	m := env.seedMember(t, "Jean Mugisha", "BM-KGL-2026-1001")

	att := &store.Attendance{API: env.Client, Logger: env.Logger}
	att.Load(context.Background())

	// Nothing checked in: the server rejects, the count stays at zero.
	require.Error(t, att.RemoveCheckIn(context.Background(), m.ID))
	assert.Equal(t, 0, att.TodayCount())
}

func TestAttendanceLoadCountMatchesIDs(t *testing.T) {
	env := newTestEnv(t)
	a := env.seedMember(t, "Jean Mugisha", "BM-KGL-2026-1001")
	b := env.seedMember(t, "Alice Uwase", "BM-KGL-2026-1002")
	require.NoError(t, env.Store.CheckIn(a.ID, nowUTC()))
	require.NoError(t, env.Store.CheckIn(b.ID, nowUTC()))

	att := &store.Attendance{API: env.Client, Logger: env.Logger}
	att.Load(context.Background())

	assert.Equal(t, att.TodayCount(), len(att.CheckedInIDs()))
	assert.Equal(t, 2, att.TodayCount())
}

func TestAttendanceCheckInUnknownMember(t *testing.T) {
	env := newTestEnv(t)

	att := &store.Attendance{API: env.Client, Logger: env.Logger}
	att.Load(context.Background())

	require.Error(t, att.CheckIn(context.Background(), "ghost"))
	assert.Equal(t, 0, att.TodayCount())
	assert.Empty(t, att.CheckedInIDs())
}
