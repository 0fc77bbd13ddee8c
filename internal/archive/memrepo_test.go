package archive

import (
	"context"
	"testing"
	"time"

	"github.com/park285/chess-rules/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, ended time.Time) *domain.GameRecord {
	return &domain.GameRecord{
		GameID:    id,
		Mode:      "human_vs_human",
		WhiteName: "white",
		BlackName: "black",
		Result:    "white_wins",
		Moves:     []string{"f2-f3", "e7-e5"},
		StartedAt: ended.Add(-time.Minute),
		EndedAt:   ended,
	}
}

func TestMemoryRepositoryInsertAndFetch(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	in := record("a", base)
	id, err := repo.InsertGame(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	_, err = repo.InsertGame(ctx, record("a", base))
	assert.ErrorIs(t, err, ErrDuplicateGame)

	got, err := repo.GetGameByUUID(ctx, " a ")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, in.Moves, got.Moves)

	// Stored records are copies.
	got.Moves[0] = "changed"
	again, err := repo.GetGameByUUID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "f2-f3", again.Moves[0])

	missing, err := repo.GetGameByUUID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryRepositoryRecentOrdering(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "new", "mid"} {
		offsets := []time.Duration{0, 2 * time.Hour, time.Hour}
		_, err := repo.InsertGame(ctx, record(id, base.Add(offsets[i])))
		require.NoError(t, err)
	}

	recent, err := repo.GetRecentGames(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "new", recent[0].GameID)
	assert.Equal(t, "mid", recent[1].GameID)

	all, err := repo.GetRecentGames(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryRepositoryNilRecord(t *testing.T) {
	_, err := NewMemoryRepository().InsertGame(context.Background(), nil)
	assert.Error(t, err)
}

func TestOpenRequiresURL(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}
