package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/prodowl/internal/store"
	"github.com/nhle/prodowl/tests/testutil"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.LoadSnapshot(ctx, store.KeyTasks)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.SaveSnapshot(ctx, store.KeyTasks, []byte(`{"tasks":[]}`)))
	got, err := s.LoadSnapshot(ctx, store.KeyTasks)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tasks":[]}`, string(got))
}

func TestSnapshotLastWriterWins(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSnapshot(ctx, store.KeyNotes, []byte(`{"v":1}`)))
	require.NoError(t, s.SaveSnapshot(ctx, store.KeyNotes, []byte(`{"v":2}`)))
	require.NoError(t, s.SaveSnapshot(ctx, store.KeyHabits, []byte(`{"h":true}`)))

	got, err := s.LoadSnapshot(ctx, store.KeyNotes)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got))

	infos, err := s.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, store.KeyHabits, infos[0].Key)
	assert.Equal(t, 1, infos[0].Revision)
	assert.Equal(t, store.KeyNotes, infos[1].Key)
	assert.Equal(t, 2, infos[1].Revision)
	assert.Equal(t, len(`{"v":2}`), infos[1].Size)
	assert.False(t, infos[1].UpdatedAt.IsZero())
}

func TestDeleteSnapshot(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSnapshot(ctx, store.KeyApp, []byte(`{}`)))
	require.NoError(t, s.DeleteSnapshot(ctx, store.KeyApp))
	require.NoError(t, s.DeleteSnapshot(ctx, store.KeyApp))

	_, err := s.LoadSnapshot(ctx, store.KeyApp)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestJSONHelpers(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	type timerSnap struct {
		Status string `json:"status"`
		Target int    `json:"target"`
	}

	var out timerSnap
	ok, err := s.LoadJSON(ctx, store.KeyTimer, &out)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveJSON(ctx, store.KeyTimer, timerSnap{Status: "running", Target: 25}))
	ok, err = s.LoadJSON(ctx, store.KeyTimer, &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, timerSnap{Status: "running", Target: 25}, out)

	require.NoError(t, s.SaveSnapshot(ctx, store.KeyTimer, []byte("not json")))
	_, err = s.LoadJSON(ctx, store.KeyTimer, &out)
	assert.Error(t, err)
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prodowl.db")
	ctx := context.Background()

	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveSnapshot(ctx, store.KeyWeb3, []byte(`{"tasks":[]}`)))
	require.NoError(t, s.Close())

	s, err = store.NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	got, err := s.LoadSnapshot(ctx, store.KeyWeb3)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tasks":[]}`, string(got))
}

var _ store.Store = (*store.SQLiteStore)(nil)
