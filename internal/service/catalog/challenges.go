package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mindflowhq/mindflow-backend/internal/domain"
	"github.com/mindflowhq/mindflow-backend/pkg/ctxutil"
)

// ListChallenges returns the user's challenges, seeding the default catalog
// on first load. A duplicate sweep runs before listing; its failure is
// logged and ignored so a broken sweep never blocks reads.
func (s *Service) ListChallenges(ctx context.Context) ([]domain.Challenge, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	count, err := s.challenges.Count(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count challenges: %w", err)
	}

	if count == 0 {
		seeded, err := s.challenges.CreateBatch(ctx, userID, domain.DefaultChallenges)
		if err != nil {
			return nil, fmt.Errorf("seed challenges: %w", err)
		}
		s.log.InfoContext(ctx, "default challenges seeded",
			slog.String("user_id", userID.String()),
			slog.Int("count", len(seeded)),
		)
		return seeded, nil
	}

	if _, err := s.challenges.RemoveDuplicates(ctx, userID); err != nil {
		s.log.WarnContext(ctx, "challenge duplicate sweep failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
	}

	return s.challenges.List(ctx, userID)
}

// CreateChallenge creates a challenge for the authenticated user.
func (s *Service) CreateChallenge(ctx context.Context, input CreateChallengeInput) (*domain.Challenge, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	c, err := s.challenges.Create(ctx, userID, strings.TrimSpace(input.Name), strings.TrimSpace(input.Description))
	if err != nil {
		return nil, fmt.Errorf("create challenge: %w", err)
	}

	s.log.InfoContext(ctx, "challenge created",
		slog.String("user_id", userID.String()),
		slog.String("challenge_id", c.ID.String()),
	)
	return c, nil
}

// UpdateChallenge applies a partial update to a challenge.
func (s *Service) UpdateChallenge(ctx context.Context, input UpdateChallengeInput) (*domain.Challenge, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	return s.challenges.Update(ctx, userID, input.ChallengeID, domain.ChallengeUpdateParams{
		Name:        trimOrNil(input.Name),
		Description: input.Description,
		IsActive:    input.IsActive,
	})
}

// DeleteChallenge removes a challenge.
func (s *Service) DeleteChallenge(ctx context.Context, input DeleteChallengeInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	return s.challenges.Delete(ctx, userID, input.ChallengeID)
}

// trimOrNil trims whitespace. Returns nil if the result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
