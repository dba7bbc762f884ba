package insight

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindflowhq/mindflow-backend/internal/adapter/aigateway"
	"github.com/mindflowhq/mindflow-backend/internal/adapter/postgres"
	"github.com/mindflowhq/mindflow-backend/internal/adapter/replica"
	"github.com/mindflowhq/mindflow-backend/internal/adapter/replica/replicatest"
	"github.com/mindflowhq/mindflow-backend/internal/adapter/schedrow"
	"github.com/mindflowhq/mindflow-backend/internal/domain"
	"github.com/mindflowhq/mindflow-backend/internal/repository/challenge"
	"github.com/mindflowhq/mindflow-backend/internal/repository/dailylog"
	"github.com/mindflowhq/mindflow-backend/internal/repository/schedule"
	"github.com/mindflowhq/mindflow-backend/internal/repository/wisdom"
	"github.com/mindflowhq/mindflow-backend/pkg/ctxutil"
)

type gatewayMock struct {
	GenerateInsightFunc func(ctx context.Context, req aigateway.InsightRequest) (json.RawMessage, *domain.Insight, error)
	FollowUpFunc        func(ctx context.Context, req aigateway.FollowUpRequest) (string, error)
}

func (m *gatewayMock) GenerateInsight(ctx context.Context, req aigateway.InsightRequest) (json.RawMessage, *domain.Insight, error) {
	if m.GenerateInsightFunc == nil {
		panic("gatewayMock.GenerateInsightFunc: method is nil but was called")
	}
	return m.GenerateInsightFunc(ctx, req)
}

func (m *gatewayMock) FollowUp(ctx context.Context, req aigateway.FollowUpRequest) (string, error) {
	if m.FollowUpFunc == nil {
		panic("gatewayMock.FollowUpFunc: method is nil but was called")
	}
	return m.FollowUpFunc(ctx, req)
}

type fixture struct {
	svc        *Service
	gw         *gatewayMock
	logs       *dailylog.Repo
	challenges *challenge.Repo
	wisdom     *wisdom.Repo
	schedules  *schedule.Repo
	userID     uuid.UUID
	ctx        context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	primary := replicatest.NewMemStore("primary", postgres.PrimaryTables())
	secondary := replicatest.NewMemStore("secondary", postgres.SecondaryTables())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := replica.New(primary, secondary, logger,
		replica.WithSecondaryTransform("schedules", schedrow.SecondaryTransform))

	gw := &gatewayMock{}
	f := &fixture{
		gw:         gw,
		logs:       dailylog.New(db),
		challenges: challenge.New(db),
		wisdom:     wisdom.New(db),
		schedules:  schedule.New(db),
		userID:     uuid.New(),
	}
	f.ctx = ctxutil.WithUserID(context.Background(), f.userID)

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	f.svc = NewService(logger, gw, f.logs, f.challenges, f.wisdom, f.schedules, time.UTC,
		WithClock(func() time.Time { return now }))
	return f
}

func TestGenerate_MorningPersistsInsight(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.challenges.Create(f.ctx, f.userID, "Patience", "stay calm")
	require.NoError(t, err)
	inactive, err := f.challenges.Create(f.ctx, f.userID, "Hidden", "inactive")
	require.NoError(t, err)
	off := false
	_, err = f.challenges.Update(f.ctx, f.userID, inactive.ID, domain.ChallengeUpdateParams{IsActive: &off})
	require.NoError(t, err)

	_, err = f.schedules.UpsertDay(f.ctx, f.userID, domain.DaySchedule{
		DayOfWeek: "Monday", WorkMode: domain.WorkModeOffice, FocusAreas: []string{"Deep Work"},
	})
	require.NoError(t, err)

	var captured aigateway.InsightRequest
	f.gw.GenerateInsightFunc = func(_ context.Context, req aigateway.InsightRequest) (json.RawMessage, *domain.Insight, error) {
		captured = req
		return json.RawMessage(`{"title":"Steady"}`), &domain.Insight{Title: "Steady"}, nil
	}

	result, err := f.svc.Generate(f.ctx, GenerateInput{Date: "2026-03-02", Phase: domain.PhaseMorning})
	require.NoError(t, err)
	assert.Equal(t, "Steady", result.Insight.Title)

	assert.Equal(t, domain.PhaseMorning, captured.Phase)
	assert.Contains(t, captured.Challenges, "Patience: stay calm")
	assert.NotContains(t, captured.Challenges, "Hidden", "inactive challenges stay out of the prompt")
	assert.Equal(t, "General wisdom", captured.WisdomSources, "empty library falls back")
	assert.Equal(t, "In Office", captured.WorkMode)
	assert.Equal(t, "Deep Work", captured.FocusAreas)

	stored, err := f.logs.GetByDate(f.ctx, f.userID, "2026-03-02")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Steady"}`, string(stored.MorningInsight))
	assert.Empty(t, stored.MorningFollowUp)
}

func TestGenerate_ReplacingResetsTranscriptAndChecks(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	// Existing insight with a transcript and checked items.
	_, err := f.logs.GetOrCreate(f.ctx, f.userID, "2026-03-02")
	require.NoError(t, err)
	oldInsight := json.RawMessage(`{"title":"Old"}`)
	transcript := []domain.FollowUpMessage{{Role: domain.RoleUser, Text: "hm"}}
	items := domain.CompletedActionItems{Morning: []int{0, 1}, Midday: []int{2}}
	_, err = f.logs.UpdateFields(f.ctx, f.userID, "2026-03-02", domain.DailyLogUpdateParams{
		MorningInsight:       &oldInsight,
		MorningFollowUp:      &transcript,
		CompletedActionItems: &items,
	})
	require.NoError(t, err)

	f.gw.GenerateInsightFunc = func(_ context.Context, _ aigateway.InsightRequest) (json.RawMessage, *domain.Insight, error) {
		return json.RawMessage(`{"title":"New"}`), &domain.Insight{Title: "New"}, nil
	}

	result, err := f.svc.Generate(f.ctx, GenerateInput{Date: "2026-03-02", Phase: domain.PhaseMorning})
	require.NoError(t, err)

	assert.JSONEq(t, `{"title":"New"}`, string(result.Log.MorningInsight))
	assert.Empty(t, result.Log.MorningFollowUp, "transcript for the replaced insight is cleared")
	assert.Empty(t, result.Log.CompletedActionItems.Morning)
	assert.Equal(t, []int{2}, result.Log.CompletedActionItems.Midday, "other phase's checks survive")
}

func TestGenerate_MiddayCarriesMorningContext(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.logs.GetOrCreate(f.ctx, f.userID, "2026-03-02")
	require.NoError(t, err)
	morning := json.RawMessage(`{"title":"Morning"}`)
	_, err = f.logs.UpdateFields(f.ctx, f.userID, "2026-03-02", domain.DailyLogUpdateParams{MorningInsight: &morning})
	require.NoError(t, err)

	var captured aigateway.InsightRequest
	f.gw.GenerateInsightFunc = func(_ context.Context, req aigateway.InsightRequest) (json.RawMessage, *domain.Insight, error) {
		captured = req
		return json.RawMessage(`{"title":"Midday"}`), &domain.Insight{Title: "Midday"}, nil
	}

	result, err := f.svc.Generate(f.ctx, GenerateInput{
		Date:             "2026-03-02",
		Phase:            domain.PhaseMidday,
		MiddayReflection: "morning went sideways",
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"title":"Morning"}`, string(captured.MorningInsight))
	assert.Equal(t, "morning went sideways", captured.MiddayReflection)
	assert.JSONEq(t, `{"title":"Midday"}`, string(result.Log.MiddayInsight))
	assert.Equal(t, "morning went sideways", result.Log.MiddayAdjustment)
}

func TestGenerate_GatewayFailureLeavesStoredInsight(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.logs.GetOrCreate(f.ctx, f.userID, "2026-03-02")
	require.NoError(t, err)
	existing := json.RawMessage(`{"title":"Keep me"}`)
	_, err = f.logs.UpdateFields(f.ctx, f.userID, "2026-03-02", domain.DailyLogUpdateParams{MorningInsight: &existing})
	require.NoError(t, err)

	f.gw.GenerateInsightFunc = func(_ context.Context, _ aigateway.InsightRequest) (json.RawMessage, *domain.Insight, error) {
		return nil, nil, aigateway.ErrRateLimited
	}

	_, err = f.svc.Generate(f.ctx, GenerateInput{Date: "2026-03-02", Phase: domain.PhaseMorning})
	assert.ErrorIs(t, err, aigateway.ErrRateLimited)

	stored, err := f.logs.GetByDate(f.ctx, f.userID, "2026-03-02")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Keep me"}`, string(stored.MorningInsight))
}

func TestGenerate_EveningRejected(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.svc.Generate(f.ctx, GenerateInput{Date: "2026-03-02", Phase: domain.PhaseEvening})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFollowUp_AppendsTranscript(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.logs.GetOrCreate(f.ctx, f.userID, "2026-03-02")
	require.NoError(t, err)
	insight := json.RawMessage(`{"title":"Steady"}`)
	history := []domain.FollowUpMessage{
		{Role: domain.RoleUser, Text: "why?"},
		{Role: domain.RoleAssistant, Text: "because"},
	}
	_, err = f.logs.UpdateFields(f.ctx, f.userID, "2026-03-02", domain.DailyLogUpdateParams{
		MorningInsight:  &insight,
		MorningFollowUp: &history,
	})
	require.NoError(t, err)

	f.gw.FollowUpFunc = func(_ context.Context, req aigateway.FollowUpRequest) (string, error) {
		assert.Len(t, req.History, 2)
		assert.JSONEq(t, `{"title":"Steady"}`, string(req.Insight))
		return "take a walk first", nil
	}

	result, err := f.svc.FollowUp(f.ctx, FollowUpInput{
		Date:     "2026-03-02",
		Phase:    domain.PhaseMorning,
		Question: "what now?",
	})
	require.NoError(t, err)
	assert.Equal(t, "take a walk first", result.Reply)
	require.Len(t, result.Transcript, 4)
	assert.Equal(t, "what now?", result.Transcript[2].Text)
	assert.Equal(t, domain.RoleAssistant, result.Transcript[3].Role)

	stored, err := f.logs.GetByDate(f.ctx, f.userID, "2026-03-02")
	require.NoError(t, err)
	assert.Len(t, stored.MorningFollowUp, 4)
}

func TestFollowUp_RequiresStoredInsight(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.svc.FollowUp(f.ctx, FollowUpInput{
		Date:     "2026-03-02",
		Phase:    domain.PhaseMorning,
		Question: "anything?",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
