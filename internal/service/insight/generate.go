package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mindflowhq/mindflow-backend/internal/adapter/aigateway"
	"github.com/mindflowhq/mindflow-backend/internal/domain"
	"github.com/mindflowhq/mindflow-backend/pkg/ctxutil"
	"github.com/mindflowhq/mindflow-backend/pkg/dateutil"
)

// GenerateResult is a freshly generated and persisted insight.
type GenerateResult struct {
	Raw     json.RawMessage
	Insight *domain.Insight
	Log     *domain.DailyLog
}

// Generate produces an insight for a phase and stores it on the day's log.
// The stored follow-up transcript and checked action items for that phase
// are reset, since they referred to the replaced insight. The gateway is
// called before anything is written: a failed call changes nothing.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (*GenerateResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	log, err := s.logs.GetOrCreate(ctx, userID, input.Date)
	if err != nil {
		return nil, err
	}

	req, err := s.buildRequest(ctx, userID, input, log)
	if err != nil {
		return nil, err
	}

	raw, parsed, err := s.gw.GenerateInsight(ctx, req)
	if err != nil {
		return nil, err
	}

	emptyTranscript := []domain.FollowUpMessage{}
	items := log.CompletedActionItems
	params := domain.DailyLogUpdateParams{}
	switch input.Phase {
	case domain.PhaseMidday:
		params.MiddayInsight = &raw
		params.MiddayFollowUp = &emptyTranscript
		items.Midday = []int{}
		params.CompletedActionItems = &items
		if input.MiddayReflection != "" {
			reflection := input.MiddayReflection
			params.MiddayAdjustment = &reflection
		}
	default:
		params.MorningInsight = &raw
		params.MorningFollowUp = &emptyTranscript
		items.Morning = []int{}
		params.CompletedActionItems = &items
	}

	updated, err := s.logs.UpdateFields(ctx, userID, input.Date, params)
	if err != nil {
		return nil, fmt.Errorf("store %s insight: %w", input.Phase, err)
	}

	s.log.InfoContext(ctx, "insight generated",
		slog.String("user_id", userID.String()),
		slog.String("date", input.Date),
		slog.String("phase", string(input.Phase)),
	)

	return &GenerateResult{Raw: raw, Insight: parsed, Log: updated}, nil
}

// buildRequest assembles the gateway context for a generation call.
func (s *Service) buildRequest(ctx context.Context, userID uuid.UUID, input GenerateInput, log *domain.DailyLog) (aigateway.InsightRequest, error) {
	challenges, err := s.challenges.List(ctx, userID)
	if err != nil {
		return aigateway.InsightRequest{}, fmt.Errorf("load challenges: %w", err)
	}
	wisdom, err := s.wisdom.List(ctx, userID)
	if err != nil {
		return aigateway.InsightRequest{}, fmt.Errorf("load wisdom library: %w", err)
	}
	week, err := s.schedules.ListWeek(ctx, userID)
	if err != nil {
		return aigateway.InsightRequest{}, fmt.Errorf("load schedule: %w", err)
	}

	day := s.scheduleFor(input.Date, week)

	req := aigateway.InsightRequest{
		Phase:         input.Phase,
		Challenges:    summarizeChallenges(challenges),
		WisdomSources: summarizeWisdom(wisdom),
		Schedule:      summarizeDay(day),
		WorkMode:      string(day.WorkMode),
		EnergyLevel:   log.EnergyLevel,
		FocusAreas:    strings.Join(day.FocusAreas, ", "),
		Situation:     log.Situation,
	}

	// Journal-level work mode overrides the weekly plan for the day.
	if log.WorkMode != "" {
		req.WorkMode = log.WorkMode
	}

	if input.Phase == domain.PhaseMidday {
		req.MorningInsight = log.MorningInsight
		req.MiddayReflection = input.MiddayReflection
	}

	return req, nil
}

// scheduleFor returns the planned schedule for the date's weekday, or the
// default when the week has no row for it.
func (s *Service) scheduleFor(date string, week []domain.DaySchedule) domain.DaySchedule {
	t, err := time.ParseInLocation(dateutil.DateLayout, date, s.loc)
	if err != nil {
		return domain.DefaultDaySchedule("")
	}
	dayName := t.Weekday().String()
	for _, day := range week {
		if day.DayOfWeek == dayName {
			return day
		}
	}
	return domain.DefaultDaySchedule(dayName)
}

// summarizeChallenges renders the active challenges as prose. Users with no
// active challenges get the literal "None" so the prompt stays coherent.
func summarizeChallenges(challenges []domain.Challenge) string {
	var parts []string
	for _, c := range challenges {
		if !c.IsActive {
			continue
		}
		if c.Description != "" {
			parts = append(parts, c.Name+": "+c.Description)
		} else {
			parts = append(parts, c.Name)
		}
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "; ")
}

// summarizeWisdom renders the active wisdom sources as prose, falling back
// to "General wisdom" for an empty library.
func summarizeWisdom(sources []domain.WisdomSource) string {
	var parts []string
	for _, w := range sources {
		if !w.IsActive {
			continue
		}
		if w.Description != "" {
			parts = append(parts, w.Name+" ("+w.Description+")")
		} else {
			parts = append(parts, w.Name)
		}
	}
	if len(parts) == 0 {
		return "General wisdom"
	}
	return strings.Join(parts, "; ")
}

func summarizeDay(day domain.DaySchedule) string {
	if len(day.FocusAreas) == 0 {
		return fmt.Sprintf("%s, %s", day.DayOfWeek, day.WorkMode)
	}
	return fmt.Sprintf("%s, %s, focus: %s", day.DayOfWeek, day.WorkMode, strings.Join(day.FocusAreas, ", "))
}
