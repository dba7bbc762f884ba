package settings

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindflowhq/mindflow-backend/internal/adapter/postgres"
	"github.com/mindflowhq/mindflow-backend/internal/adapter/replica"
	"github.com/mindflowhq/mindflow-backend/internal/adapter/replica/replicatest"
)

func newTestRepo(t *testing.T) (*Repo, *replicatest.MemStore) {
	t.Helper()
	primary := replicatest.NewMemStore("primary", postgres.PrimaryTables())
	secondary := replicatest.NewMemStore("secondary", postgres.SecondaryTables())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(replica.New(primary, secondary, logger)), primary
}

func TestRepo_GetFocusAreas_Default(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepo(t)

	areas, err := repo.GetFocusAreas(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, []string{}, areas)
}

func TestRepo_PutAndGetFocusAreas(t *testing.T) {
	t.Parallel()

	repo, primary := newTestRepo(t)
	userID := uuid.New()
	ctx := context.Background()

	saved, err := repo.PutFocusAreas(ctx, userID, []string{"Deep Work", "Family"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Deep Work", "Family"}, saved)

	areas, err := repo.GetFocusAreas(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Deep Work", "Family"}, areas)

	// Replacing upserts onto the natural key instead of adding rows.
	_, err = repo.PutFocusAreas(ctx, userID, []string{"Health"})
	require.NoError(t, err)

	areas, err = repo.GetFocusAreas(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Health"}, areas)
	assert.Len(t, primary.Rows("user_settings"), 1)
}

func TestRepo_PutFocusAreas_Nil(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepo(t)

	saved, err := repo.PutFocusAreas(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, saved)
}
