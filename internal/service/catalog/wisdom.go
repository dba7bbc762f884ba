package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mindflowhq/mindflow-backend/internal/domain"
	"github.com/mindflowhq/mindflow-backend/pkg/ctxutil"
)

// ListWisdom returns the user's wisdom library, seeding the default catalog
// on first load. Mirrors ListChallenges.
func (s *Service) ListWisdom(ctx context.Context) ([]domain.WisdomSource, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	count, err := s.wisdom.Count(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count wisdom sources: %w", err)
	}

	if count == 0 {
		seeded, err := s.wisdom.CreateBatch(ctx, userID, domain.DefaultWisdomSources)
		if err != nil {
			return nil, fmt.Errorf("seed wisdom library: %w", err)
		}
		s.log.InfoContext(ctx, "default wisdom library seeded",
			slog.String("user_id", userID.String()),
			slog.Int("count", len(seeded)),
		)
		return seeded, nil
	}

	if _, err := s.wisdom.RemoveDuplicates(ctx, userID); err != nil {
		s.log.WarnContext(ctx, "wisdom duplicate sweep failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
	}

	return s.wisdom.List(ctx, userID)
}

// CreateWisdom adds a wisdom source for the authenticated user.
func (s *Service) CreateWisdom(ctx context.Context, input CreateWisdomInput) (*domain.WisdomSource, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	w, err := s.wisdom.Create(ctx, userID,
		strings.TrimSpace(input.Name),
		strings.TrimSpace(input.Description),
		strings.TrimSpace(input.Tag),
	)
	if err != nil {
		return nil, fmt.Errorf("create wisdom source: %w", err)
	}

	s.log.InfoContext(ctx, "wisdom source created",
		slog.String("user_id", userID.String()),
		slog.String("wisdom_id", w.ID.String()),
	)
	return w, nil
}

// UpdateWisdom applies a partial update to a wisdom source.
func (s *Service) UpdateWisdom(ctx context.Context, input UpdateWisdomInput) (*domain.WisdomSource, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	return s.wisdom.Update(ctx, userID, input.WisdomID, domain.WisdomUpdateParams{
		Name:        trimOrNil(input.Name),
		Description: input.Description,
		Tag:         input.Tag,
		IsActive:    input.IsActive,
	})
}

// DeleteWisdom removes a wisdom source.
func (s *Service) DeleteWisdom(ctx context.Context, input DeleteWisdomInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	return s.wisdom.Delete(ctx, userID, input.WisdomID)
}
