// Package catalog manages the user's challenge list and wisdom library.
// First load seeds the default catalogs once and sweeps duplicate rows left
// behind by historical double-writes.
package catalog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mindflowhq/mindflow-backend/internal/domain"
)

type challengeRepo interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.Challenge, error)
	Create(ctx context.Context, userID uuid.UUID, name, description string) (*domain.Challenge, error)
	CreateBatch(ctx context.Context, userID uuid.UUID, seeds []domain.SeedChallenge) ([]domain.Challenge, error)
	Update(ctx context.Context, userID, id uuid.UUID, params domain.ChallengeUpdateParams) (*domain.Challenge, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Count(ctx context.Context, userID uuid.UUID) (int, error)
	RemoveDuplicates(ctx context.Context, userID uuid.UUID) (int, error)
}

type wisdomRepo interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.WisdomSource, error)
	Create(ctx context.Context, userID uuid.UUID, name, description, tag string) (*domain.WisdomSource, error)
	CreateBatch(ctx context.Context, userID uuid.UUID, seeds []domain.SeedWisdom) ([]domain.WisdomSource, error)
	Update(ctx context.Context, userID, id uuid.UUID, params domain.WisdomUpdateParams) (*domain.WisdomSource, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Count(ctx context.Context, userID uuid.UUID) (int, error)
	RemoveDuplicates(ctx context.Context, userID uuid.UUID) (int, error)
}

// Service provides catalog management operations.
type Service struct {
	challenges challengeRepo
	wisdom     wisdomRepo
	log        *slog.Logger
}

// NewService creates a catalog service.
func NewService(log *slog.Logger, challenges challengeRepo, wisdom wisdomRepo) *Service {
	return &Service{
		challenges: challenges,
		wisdom:     wisdom,
		log:        log.With("service", "catalog"),
	}
}

// RepairResult reports how many duplicate rows a sweep removed.
type RepairResult struct {
	Challenges int
	Wisdom     int
}

// RepairDuplicates runs the duplicate sweep over both catalogs for a user.
// Used by the cleanup command; the load paths also sweep opportunistically.
func (s *Service) RepairDuplicates(ctx context.Context, userID uuid.UUID) (RepairResult, error) {
	var result RepairResult

	n, err := s.challenges.RemoveDuplicates(ctx, userID)
	if err != nil {
		return result, err
	}
	result.Challenges = n

	n, err = s.wisdom.RemoveDuplicates(ctx, userID)
	if err != nil {
		return result, err
	}
	result.Wisdom = n

	if result.Challenges+result.Wisdom > 0 {
		s.log.InfoContext(ctx, "duplicate catalog rows removed",
			slog.String("user_id", userID.String()),
			slog.Int("challenges", result.Challenges),
			slog.Int("wisdom", result.Wisdom),
		)
	}
	return result, nil
}
