package journal

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindflowhq/mindflow-backend/internal/adapter/postgres"
	"github.com/mindflowhq/mindflow-backend/internal/adapter/replica"
	"github.com/mindflowhq/mindflow-backend/internal/adapter/replica/replicatest"
	"github.com/mindflowhq/mindflow-backend/internal/domain"
	"github.com/mindflowhq/mindflow-backend/internal/repository/dailylog"
	"github.com/mindflowhq/mindflow-backend/pkg/ctxutil"
)

var testGates = domain.PhaseGates{MiddayUnlockHour: 12, EveningUnlockHour: 17}

// newTestService builds a journal service over in-memory stores with a
// mutable clock. The timezone is UTC so test hours read literally.
func newTestService(t *testing.T) (*Service, *time.Time) {
	t.Helper()

	primary := replicatest.NewMemStore("primary", postgres.PrimaryTables())
	secondary := replicatest.NewMemStore("secondary", postgres.SecondaryTables())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := dailylog.New(replica.New(primary, secondary, logger))

	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) // Monday 08:00
	svc := NewService(logger, repo, testGates, time.UTC, WithClock(func() time.Time { return now }))
	return svc, &now
}

func authedCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

func TestToday_CreatesAndGates(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := authedCtx(uuid.New())

	view, err := svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", view.Log.Date)
	assert.Equal(t, domain.PhaseActive, view.Phases.Morning)
	assert.Equal(t, domain.PhaseLocked, view.Phases.Midday)
	assert.Equal(t, domain.PhaseLocked, view.Phases.Evening)
}

func TestToday_Unauthenticated(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.Today(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCompletePhase_MorningThenMiddayGating(t *testing.T) {
	t.Parallel()

	svc, now := newTestService(t)
	ctx := authedCtx(uuid.New())

	view, err := svc.CompletePhase(ctx, PhaseInput{Date: "2026-03-02", Phase: domain.PhaseMorning})
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseComplete, view.Phases.Morning)
	assert.Equal(t, domain.PhaseLocked, view.Phases.Midday, "midday stays locked before noon")

	// One minute before the gate: still locked.
	*now = time.Date(2026, 3, 2, 11, 59, 0, 0, time.UTC)
	view, err = svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseLocked, view.Phases.Midday)

	// At the gate: active.
	*now = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	view, err = svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseActive, view.Phases.Midday)
}

func TestCompletePhase_LockedPhaseRejected(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := authedCtx(uuid.New())

	// Midday at 08:00 with morning incomplete.
	_, err := svc.CompletePhase(ctx, PhaseInput{Date: "2026-03-02", Phase: domain.PhaseMidday})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCompletePhase_MiddayLockedByTimeEvenWhenMorningDone(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := authedCtx(uuid.New())

	_, err := svc.CompletePhase(ctx, PhaseInput{Date: "2026-03-02", Phase: domain.PhaseMorning})
	require.NoError(t, err)

	// Still 08:00.
	_, err = svc.CompletePhase(ctx, PhaseInput{Date: "2026-03-02", Phase: domain.PhaseMidday})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCompletePhase_AlreadyCompleteIsNoOp(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := authedCtx(uuid.New())

	_, err := svc.CompletePhase(ctx, PhaseInput{Date: "2026-03-02", Phase: domain.PhaseMorning})
	require.NoError(t, err)

	view, err := svc.CompletePhase(ctx, PhaseInput{Date: "2026-03-02", Phase: domain.PhaseMorning})
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseComplete, view.Phases.Morning)
}

func TestEveningGate(t *testing.T) {
	t.Parallel()

	svc, now := newTestService(t)
	ctx := authedCtx(uuid.New())

	*now = time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)
	_, err := svc.CompletePhase(ctx, PhaseInput{Date: "2026-03-02", Phase: domain.PhaseMorning})
	require.NoError(t, err)
	view, err := svc.CompletePhase(ctx, PhaseInput{Date: "2026-03-02", Phase: domain.PhaseMidday})
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseLocked, view.Phases.Evening, "evening locked at 13:00")

	*now = time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	view, err = svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseActive, view.Phases.Evening)
}

func TestReopenPhase_UngatedAtAnyTime(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := authedCtx(uuid.New())

	_, err := svc.CompletePhase(ctx, PhaseInput{Date: "2026-03-02", Phase: domain.PhaseMorning})
	require.NoError(t, err)

	view, err := svc.ReopenPhase(ctx, PhaseInput{Date: "2026-03-02", Phase: domain.PhaseMorning})
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseActive, view.Phases.Morning)
	assert.Equal(t, domain.PhaseLocked, view.Phases.Midday, "midday re-locks when morning reopens")
}

func TestUpdateEntry(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := authedCtx(uuid.New())

	_, err := svc.Today(ctx)
	require.NoError(t, err)

	situation := "launch day"
	workMode := "In Office"
	view, err := svc.UpdateEntry(ctx, UpdateEntryInput{
		Date:      "2026-03-02",
		Situation: &situation,
		WorkMode:  &workMode,
	})
	require.NoError(t, err)
	assert.Equal(t, "launch day", view.Log.Situation)
	assert.Equal(t, "In Office", view.Log.WorkMode)
}

func TestUpdateEntry_RejectsUnknownWorkMode(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := authedCtx(uuid.New())

	bad := "Remote"
	_, err := svc.UpdateEntry(ctx, UpdateEntryInput{Date: "2026-03-02", WorkMode: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestToggleActionItem(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := authedCtx(uuid.New())

	view, err := svc.ToggleActionItem(ctx, ToggleActionItemInput{Date: "2026-03-02", Phase: domain.PhaseMorning, Index: 1})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, view.Log.CompletedActionItems.Morning)

	view, err = svc.ToggleActionItem(ctx, ToggleActionItemInput{Date: "2026-03-02", Phase: domain.PhaseMorning, Index: 0})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1}, view.Log.CompletedActionItems.Morning)

	// Toggling again unchecks.
	view, err = svc.ToggleActionItem(ctx, ToggleActionItemInput{Date: "2026-03-02", Phase: domain.PhaseMorning, Index: 1})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, view.Log.CompletedActionItems.Morning)
	assert.Empty(t, view.Log.CompletedActionItems.Midday)
}

func TestWeek(t *testing.T) {
	t.Parallel()

	svc, now := newTestService(t)
	ctx := authedCtx(uuid.New())

	// Create logs on Monday and Wednesday, plus one the week after.
	for _, date := range []string{"2026-03-02", "2026-03-04", "2026-03-09"} {
		*now = mustParse(t, date).Add(9 * time.Hour)
		_, err := svc.Today(ctx)
		require.NoError(t, err)
	}

	*now = time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC) // Thursday same week
	logs, err := svc.Week(ctx, "")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "2026-03-02", logs[0].Date)
	assert.Equal(t, "2026-03-04", logs[1].Date)

	logs, err = svc.Week(ctx, "2026-03-11")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "2026-03-09", logs[0].Date)
}

func TestResetDay(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := authedCtx(uuid.New())

	_, err := svc.CompletePhase(ctx, PhaseInput{Date: "2026-03-02", Phase: domain.PhaseMorning})
	require.NoError(t, err)

	view, err := svc.ResetDay(ctx, "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseActive, view.Phases.Morning)
	assert.False(t, view.Log.MorningComplete)
}

func mustParse(t *testing.T, date string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return parsed
}
