package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindflowhq/mindflow-backend/internal/adapter/replica"
	"github.com/mindflowhq/mindflow-backend/internal/domain"
)

func newTestStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewStore("primary", mock, PrimaryTables(), logger)
	return store, mock
}

func TestStore_Insert(t *testing.T) {
	t.Parallel()

	store, mock := newTestStore(t)

	// Columns are sorted, so the statement is deterministic.
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO challenges (name,user_id) VALUES ($1,$2) RETURNING *")).
		WithArgs("Patience", "u1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "user_id"}).AddRow("c1", "Patience", "u1"))

	rows, err := store.Insert(context.Background(), "challenges", []replica.Row{
		{"name": "Patience", "user_id": "u1"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Patience", rows[0].String("name"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Insert_EmptyIsNoOp(t *testing.T) {
	t.Parallel()

	store, mock := newTestStore(t)

	rows, err := store.Insert(context.Background(), "challenges", nil)
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Upsert_BumpsUpdatedAt(t *testing.T) {
	t.Parallel()

	store, mock := newTestStore(t)

	// The row does not carry updated_at, so the conflict clause bumps it.
	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO schedules (day_of_week,user_id,work_mode) VALUES ($1,$2,$3) "+
			"ON CONFLICT (user_id, day_of_week) DO UPDATE SET "+
			"day_of_week = EXCLUDED.day_of_week, work_mode = EXCLUDED.work_mode, updated_at = now() RETURNING *")).
		WithArgs("Monday", "u1", "WFH").
		WillReturnRows(pgxmock.NewRows([]string{"id", "day_of_week"}).AddRow("s1", "Monday"))

	_, err := store.Upsert(context.Background(), "schedules", []replica.Row{
		{"day_of_week": "Monday", "user_id": "u1", "work_mode": "WFH"},
	}, []string{"user_id", "day_of_week"})
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Update_BumpsUpdatedAt(t *testing.T) {
	t.Parallel()

	store, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE challenges SET name = $1, updated_at = now() WHERE user_id = $2 RETURNING *")).
		WithArgs("Focus", "u1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).AddRow("c1", "Focus"))

	rows, err := store.Update(context.Background(), "challenges",
		replica.Row{"name": "Focus"},
		[]replica.Condition{{Column: "user_id", Value: "u1"}},
	)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Select_WhereAndOrder(t *testing.T) {
	t.Parallel()

	store, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM challenges WHERE user_id = $1 ORDER BY created_at ASC")).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("c1").AddRow("c2"))

	rows, err := store.Select(context.Background(), "challenges",
		[]replica.Condition{{Column: "user_id", Value: "u1"}},
		"created_at ASC",
	)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteWhere(t *testing.T) {
	t.Parallel()

	store, mock := newTestStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM challenges WHERE id = $1")).
		WithArgs("c1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := store.DeleteWhere(context.Background(), "challenges",
		[]replica.Condition{{Column: "id", Value: "c1"}})
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_MapsUniqueViolation(t *testing.T) {
	t.Parallel()

	store, mock := newTestStore(t)

	mock.ExpectQuery("INSERT INTO daily_logs").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := store.Insert(context.Background(), "daily_logs", []replica.Row{
		{"user_id": "u1", "date": "2026-03-02"},
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMapError_PassesThroughContextErrors(t *testing.T) {
	t.Parallel()

	err := mapError(context.Canceled, "challenges")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	err = mapError(errors.New("boom"), "challenges")
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
