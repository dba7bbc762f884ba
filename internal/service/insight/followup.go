package insight

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mindflowhq/mindflow-backend/internal/adapter/aigateway"
	"github.com/mindflowhq/mindflow-backend/internal/domain"
	"github.com/mindflowhq/mindflow-backend/pkg/ctxutil"
)

// FollowUpResult is a chat reply together with the updated transcript.
type FollowUpResult struct {
	Reply      string
	Transcript []domain.FollowUpMessage
}

// FollowUp asks one question about a stored insight. The question and the
// reply are appended to the phase's transcript and persisted.
func (s *Service) FollowUp(ctx context.Context, input FollowUpInput) (*FollowUpResult, error) {
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

	stored := log.InsightFor(input.Phase)
	if len(stored) == 0 {
		return nil, domain.NewValidationError("phase", "no insight has been generated for this phase")
	}

	history := log.FollowUpFor(input.Phase)

	userCtx, err := s.loadUserContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	reply, err := s.gw.FollowUp(ctx, aigateway.FollowUpRequest{
		Phase:         input.Phase,
		Question:      input.Question,
		Insight:       stored,
		History:       history,
		Situation:     log.Situation,
		Challenges:    userCtx.challenges,
		WisdomSources: userCtx.wisdom,
	})
	if err != nil {
		return nil, err
	}

	transcript := append(append([]domain.FollowUpMessage{}, history...),
		domain.FollowUpMessage{Role: domain.RoleUser, Text: input.Question},
		domain.FollowUpMessage{Role: domain.RoleAssistant, Text: reply},
	)

	params := domain.DailyLogUpdateParams{}
	switch input.Phase {
	case domain.PhaseMidday:
		params.MiddayFollowUp = &transcript
	case domain.PhaseEvening:
		params.EveningFollowUp = &transcript
	default:
		params.MorningFollowUp = &transcript
	}

	if _, err := s.logs.UpdateFields(ctx, userID, input.Date, params); err != nil {
		return nil, fmt.Errorf("store follow-up transcript: %w", err)
	}

	return &FollowUpResult{Reply: reply, Transcript: transcript}, nil
}

type userContext struct {
	challenges []string
	wisdom     []string
}

// loadUserContext collects the names of active challenges and wisdom
// sources for the follow-up prompt.
func (s *Service) loadUserContext(ctx context.Context, userID uuid.UUID) (userContext, error) {
	challenges, err := s.challenges.List(ctx, userID)
	if err != nil {
		return userContext{}, fmt.Errorf("load challenges: %w", err)
	}
	wisdom, err := s.wisdom.List(ctx, userID)
	if err != nil {
		return userContext{}, fmt.Errorf("load wisdom library: %w", err)
	}

	out := userContext{challenges: []string{}, wisdom: []string{}}
	for _, c := range challenges {
		if c.IsActive {
			out.challenges = append(out.challenges, c.Name)
		}
	}
	for _, w := range wisdom {
		if w.IsActive {
			out.wisdom = append(out.wisdom, w.Name)
		}
	}
	return out, nil
}
