package statehistory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/park285/chess-rules/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(ply int) domain.GameSnapshot {
	return domain.NewGameSnapshot(nil, domain.GameContext{GameID: "g"}, ply, time.Unix(int64(ply), 0))
}

type fakeStore struct {
	saved   []domain.GameSnapshot
	deleted int
	saveErr error
}

func (f *fakeStore) Save(_ context.Context, s domain.GameSnapshot) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, s)
	return nil
}

func (f *fakeStore) Load(context.Context) (*domain.GameSnapshot, error) {
	if len(f.saved) == 0 {
		return nil, nil
	}
	s := f.saved[len(f.saved)-1]
	return &s, nil
}

func (f *fakeStore) Exists(context.Context) (bool, error) { return len(f.saved) > 0, nil }

func (f *fakeStore) Delete(context.Context) error {
	f.deleted++
	f.saved = nil
	return nil
}

func TestRecordStateEvictsOldest(t *testing.T) {
	m := New(0, nil, nil)
	ctx := context.Background()
	for i := 0; i < 11; i++ {
		require.NoError(t, m.RecordState(ctx, snap(i)))
	}
	assert.Equal(t, DefaultLimit, m.GetStateCount())

	cur, ok := m.GetCurrentState()
	require.True(t, ok)
	assert.Equal(t, 10, cur.Ply())

	// Rolling back as far as possible stops at the oldest retained snapshot, ply 1.
	var last domain.GameSnapshot
	for m.CanRollback() {
		last, _ = m.Rollback()
	}
	assert.Equal(t, 1, last.Ply())
}

func TestRollbackAndRedo(t *testing.T) {
	m := New(5, nil, nil)
	ctx := context.Background()

	_, ok := m.Rollback()
	assert.False(t, ok, "rollback with no states")

	require.NoError(t, m.RecordState(ctx, snap(0)))
	_, ok = m.Rollback()
	assert.False(t, ok, "rollback needs two states")

	require.NoError(t, m.RecordState(ctx, snap(1)))
	require.NoError(t, m.RecordState(ctx, snap(2)))

	prev, ok := m.Rollback()
	require.True(t, ok)
	assert.Equal(t, 1, prev.Ply())
	assert.True(t, m.CanRedo())

	next, ok := m.Redo()
	require.True(t, ok)
	assert.Equal(t, 2, next.Ply())
	assert.False(t, m.CanRedo())
	assert.Equal(t, 3, m.GetStateCount())

	_, ok = m.Redo()
	assert.False(t, ok)
}

func TestRecordStateClearsRedo(t *testing.T) {
	m := New(5, nil, nil)
	ctx := context.Background()
	require.NoError(t, m.RecordState(ctx, snap(0)))
	require.NoError(t, m.RecordState(ctx, snap(1)))
	_, ok := m.Rollback()
	require.True(t, ok)
	require.True(t, m.CanRedo())

	require.NoError(t, m.RecordState(ctx, snap(1)))
	assert.False(t, m.CanRedo())

	_, ok = m.Rollback()
	require.True(t, ok)
	m.ClearRedoStack()
	assert.False(t, m.CanRedo())
}

func TestAutosaveForwarding(t *testing.T) {
	store := &fakeStore{}
	m := New(3, store, nil)
	ctx := context.Background()

	loaded, err := m.LoadAutosave(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, m.RecordState(ctx, snap(0)))
	require.NoError(t, m.RecordState(ctx, snap(1)))
	assert.Len(t, store.saved, 2)

	loaded, err = m.LoadAutosave(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 1, loaded.Ply())

	require.NoError(t, m.CleanupAutosave(ctx))
	assert.Equal(t, 1, store.deleted)
	loaded, err = m.LoadAutosave(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestAutosaveFailureKeepsState(t *testing.T) {
	boom := errors.New("disk full")
	m := New(3, &fakeStore{saveErr: boom}, nil)
	err := m.RecordState(context.Background(), snap(0))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, m.GetStateCount())
}

func TestClearAll(t *testing.T) {
	m := New(3, nil, nil)
	ctx := context.Background()
	require.NoError(t, m.RecordState(ctx, snap(0)))
	require.NoError(t, m.RecordState(ctx, snap(1)))
	_, _ = m.Rollback()
	m.ClearAll()
	assert.Equal(t, 0, m.GetStateCount())
	assert.False(t, m.CanRedo())
	_, ok := m.GetCurrentState()
	assert.False(t, ok)
}
