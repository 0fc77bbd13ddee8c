package opponent

import (
	"context"
	"math/rand"
	"testing"

	"github.com/park285/chess-rules/internal/chess"
	"github.com/park285/chess-rules/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectRespectsPrimaryChoices(t *testing.T) {
	cands := []Candidate{{Score: 900}, {Score: 300}, {Score: 0}, {Score: 0}}
	p := Preset{Name: "top", PrimaryChoices: 1}
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		c, err := Select(p, cands, r)
		require.NoError(t, err)
		assert.Equal(t, 900, c.Score)
	}
}

func TestSelectZeroWeights(t *testing.T) {
	p := Preset{PrimaryChoices: 2, CandidateWeights: []float64{0, 0}}
	_, err := Select(p, []Candidate{{}, {}}, rand.New(rand.NewSource(1)))
	assert.Error(t, err)

	_, err = Select(Preset{}, nil, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestCandidatesPreferCaptures(t *testing.T) {
	b := chess.NewBoard()
	require.NoError(t, b.Place(chess.MustSquare("e1"), chess.NewPiece(chess.King, chess.White)))
	require.NoError(t, b.Place(chess.MustSquare("a8"), chess.NewPiece(chess.King, chess.Black)))
	require.NoError(t, b.Place(chess.MustSquare("d4"), chess.NewPiece(chess.Rook, chess.White)))
	require.NoError(t, b.Place(chess.MustSquare("d7"), chess.NewPiece(chess.Queen, chess.Black)))

	g, err := game.New(context.Background(), game.Options{Board: b, ToMove: chess.White, Difficulty: game.DifficultyHard})
	require.NoError(t, err)

	cands := Candidates(g)
	require.NotEmpty(t, cands)
	assert.Equal(t, chess.MustSquare("d7"), cands[0].Move.To)
	assert.Equal(t, 900, cands[0].Score)
}

func TestPresetFor(t *testing.T) {
	for _, d := range []game.Difficulty{game.DifficultyEasy, game.DifficultyMedium, game.DifficultyHard} {
		_, err := PresetFor(d)
		assert.NoError(t, err, d)
	}
	_, err := PresetFor("grandmaster")
	assert.Error(t, err)
}

func TestPlayFinishesRandomGames(t *testing.T) {
	for seed := int64(1); seed <= 3; seed++ {
		g, err := game.New(context.Background(), game.Options{Difficulty: game.DifficultyMedium})
		require.NoError(t, err)
		r := rand.New(rand.NewSource(seed))
		for ply := 0; ply < 120 && !g.Status().Result.Finished(); ply++ {
			_, err := Play(context.Background(), g, r)
			require.NoError(t, err, "seed %d ply %d", seed, ply)
		}
		assert.LessOrEqual(t, len(g.History()), 120)
	}
}
