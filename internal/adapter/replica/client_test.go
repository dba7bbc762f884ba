package replica_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindflowhq/mindflow-backend/internal/adapter/replica"
	"github.com/mindflowhq/mindflow-backend/internal/adapter/replica/replicatest"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newPair() (*replicatest.MemStore, *replicatest.MemStore) {
	primary := replicatest.NewMemStore("primary", map[string][]string{
		"notes": {"user_id", "title", "body", "color"},
	})
	// Secondary lacks the color column.
	secondary := replicatest.NewMemStore("secondary", map[string][]string{
		"notes": {"user_id", "title", "body"},
	})
	return primary, secondary
}

func TestClient_Insert_MirrorsAndStrips(t *testing.T) {
	t.Parallel()

	primary, secondary := newPair()
	c := replica.New(primary, secondary, newTestLogger())

	out, err := c.Insert(context.Background(), "notes", []replica.Row{
		{"user_id": "u1", "title": "first", "body": "hello", "color": "red"},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.NotNil(t, out[0]["id"], "primary result rows carry generated columns")

	prows := primary.Rows("notes")
	require.Len(t, prows, 1)
	assert.Equal(t, "red", prows[0]["color"])

	srows := secondary.Rows("notes")
	require.Len(t, srows, 1)
	assert.Equal(t, "first", srows[0]["title"])
	_, hasColor := srows[0]["color"]
	assert.False(t, hasColor, "unknown columns are stripped before mirroring")
}

func TestClient_Insert_PrimaryFailureAbortsOperation(t *testing.T) {
	t.Parallel()

	primary, secondary := newPair()
	primary.SetErr(errors.New("primary down"))
	c := replica.New(primary, secondary, newTestLogger())

	_, err := c.Insert(context.Background(), "notes", []replica.Row{{"user_id": "u1", "title": "x"}})
	require.Error(t, err)
	assert.Empty(t, secondary.Rows("notes"), "secondary is never contacted when primary fails")
}

func TestClient_Insert_SecondaryFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	primary, secondary := newPair()
	secondary.SetErr(errors.New("secondary down"))
	c := replica.New(primary, secondary, newTestLogger())

	out, err := c.Insert(context.Background(), "notes", []replica.Row{{"user_id": "u1", "title": "x"}})
	require.NoError(t, err, "secondary failure never surfaces")
	assert.Len(t, out, 1)
	assert.Len(t, primary.Rows("notes"), 1)
}

func TestClient_Insert_UnknownSecondaryTableSkipped(t *testing.T) {
	t.Parallel()

	primary := replicatest.NewMemStore("primary", map[string][]string{
		"notes":   {"user_id", "title"},
		"private": {"user_id", "secret"},
	})
	secondary := replicatest.NewMemStore("secondary", map[string][]string{
		"notes": {"user_id", "title"},
	})
	c := replica.New(primary, secondary, newTestLogger())

	_, err := c.Insert(context.Background(), "private", []replica.Row{{"user_id": "u1", "secret": "s"}})
	require.NoError(t, err)
	assert.Len(t, primary.Rows("private"), 1)
	assert.Empty(t, secondary.Rows("private"))
}

func TestClient_Update_MirrorsFields(t *testing.T) {
	t.Parallel()

	primary, secondary := newPair()
	c := replica.New(primary, secondary, newTestLogger())

	_, err := c.Insert(context.Background(), "notes", []replica.Row{
		{"user_id": "u1", "title": "first", "body": "old", "color": "red"},
	})
	require.NoError(t, err)

	out, err := c.Update(context.Background(), "notes",
		replica.Row{"body": "new", "color": "blue"},
		[]replica.Condition{replica.Eq("user_id", "u1")},
	)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "new", out[0]["body"])

	srows := secondary.Rows("notes")
	require.Len(t, srows, 1)
	assert.Equal(t, "new", srows[0]["body"])
	_, hasColor := srows[0]["color"]
	assert.False(t, hasColor)
}

func TestClient_Update_OnlyStrippedColumnsSkipsSecondary(t *testing.T) {
	t.Parallel()

	primary, secondary := newPair()
	c := replica.New(primary, secondary, newTestLogger())

	_, err := c.Insert(context.Background(), "notes", []replica.Row{
		{"user_id": "u1", "title": "first", "body": "b", "color": "red"},
	})
	require.NoError(t, err)
	before := secondary.Rows("notes")[0]["updated_at"]

	// The update touches only a column the secondary does not have.
	_, err = c.Update(context.Background(), "notes",
		replica.Row{"color": "green"},
		[]replica.Condition{replica.Eq("user_id", "u1")},
	)
	require.NoError(t, err)

	after := secondary.Rows("notes")[0]["updated_at"]
	assert.Equal(t, before, after, "empty mirrored update must not touch the secondary")
}

func TestClient_Upsert_NaturalKey(t *testing.T) {
	t.Parallel()

	primary, secondary := newPair()
	c := replica.New(primary, secondary, newTestLogger())

	key := []string{"user_id", "title"}
	_, err := c.Upsert(context.Background(), "notes", []replica.Row{
		{"user_id": "u1", "title": "plan", "body": "v1"},
	}, key)
	require.NoError(t, err)

	out, err := c.Upsert(context.Background(), "notes", []replica.Row{
		{"user_id": "u1", "title": "plan", "body": "v2"},
	}, key)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "v2", out[0]["body"])

	assert.Len(t, primary.Rows("notes"), 1, "upsert must not duplicate on the natural key")
	assert.Len(t, secondary.Rows("notes"), 1)
}

func TestClient_DeleteWhere_MirrorsConditions(t *testing.T) {
	t.Parallel()

	primary, secondary := newPair()
	c := replica.New(primary, secondary, newTestLogger())

	_, err := c.Insert(context.Background(), "notes", []replica.Row{
		{"user_id": "u1", "title": "keep"},
		{"user_id": "u1", "title": "drop"},
	})
	require.NoError(t, err)

	err = c.DeleteWhere(context.Background(), "notes", []replica.Condition{
		replica.Eq("user_id", "u1"),
		replica.Eq("title", "drop"),
	})
	require.NoError(t, err)

	assert.Len(t, primary.Rows("notes"), 1)
	assert.Len(t, secondary.Rows("notes"), 1)
	assert.Equal(t, "keep", secondary.Rows("notes")[0]["title"])
}

func TestClient_SecondaryTransform(t *testing.T) {
	t.Parallel()

	primary := replicatest.NewMemStore("primary", map[string][]string{
		"plans": {"user_id", "day", "mode", "tags"},
	})
	secondary := replicatest.NewMemStore("secondary", map[string][]string{
		"plans": {"user_id", "day", "tags"},
	})

	// Fold mode into the tags array before the column is stripped.
	c := replica.New(primary, secondary, newTestLogger(),
		replica.WithSecondaryTransform("plans", func(row replica.Row) replica.Row {
			out := make(replica.Row, len(row))
			for k, v := range row {
				out[k] = v
			}
			mode, _ := out["mode"].(string)
			tags, _ := out["tags"].([]string)
			out["tags"] = append([]string{mode}, tags...)
			return out
		}),
	)

	_, err := c.Insert(context.Background(), "plans", []replica.Row{
		{"user_id": "u1", "day": "Monday", "mode": "Office", "tags": []string{"focus"}},
	})
	require.NoError(t, err)

	srows := secondary.Rows("plans")
	require.Len(t, srows, 1)
	assert.Equal(t, []string{"Office", "focus"}, srows[0]["tags"])

	prows := primary.Rows("plans")
	assert.Equal(t, []string{"focus"}, prows[0]["tags"], "transform applies to the secondary only")
}

func TestClient_SelectReadsPrimaryOnly(t *testing.T) {
	t.Parallel()

	primary, secondary := newPair()
	secondary.SetErr(errors.New("secondary down"))
	c := replica.New(primary, secondary, newTestLogger())

	primary.Seed("notes", replica.Row{"user_id": "u1", "title": "a"})

	rows, err := c.Select(context.Background(), "notes", []replica.Condition{replica.Eq("user_id", "u1")})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
