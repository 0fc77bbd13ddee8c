// Package opponent picks moves for the computer side from the legal moves the
// rules engine offers. Real search and evaluation live elsewhere; this picker
// only ranks candidates cheaply and samples among the best few by difficulty.
package opponent

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/park285/chess-rules/internal/chess"
	"github.com/park285/chess-rules/internal/game"
)

var ErrNoCandidates = errors.New("no candidates to choose from")

// Preset tunes how greedily the picker plays.
type Preset struct {
	Name string
	// PrimaryChoices is how many top-ranked candidates are considered; 0 means all.
	PrimaryChoices int
	// CandidateWeights weights the primary choices in rank order. Missing
	// entries count as weight 1.
	CandidateWeights []float64
}

var presets = map[game.Difficulty]Preset{
	game.DifficultyEasy:   {Name: "easy"},
	game.DifficultyMedium: {Name: "medium", PrimaryChoices: 6, CandidateWeights: []float64{4, 3, 2, 1, 1, 1}},
	game.DifficultyHard:   {Name: "hard", PrimaryChoices: 2, CandidateWeights: []float64{9, 1}},
}

// PresetFor returns the preset for d.
func PresetFor(d game.Difficulty) (Preset, error) {
	p, ok := presets[d]
	if !ok {
		return Preset{}, fmt.Errorf("unknown difficulty %q", d)
	}
	return p, nil
}

// Candidate is a playable move with its cheap ranking score.
type Candidate struct {
	Move   chess.Move
	Castle chess.CastleSide
	Score  int
}

var pieceValue = map[chess.Kind]int{
	chess.Pawn: 100, chess.Knight: 300, chess.Bishop: 300, chess.Rook: 500, chess.Queen: 900,
}

// Candidates lists every legal move of the side to move, castling included,
// best first. Captures score the victim's value; promotions add the new piece.
func Candidates(g *game.Game) []Candidate {
	var out []Candidate
	board := g.Board()
	for _, m := range g.AllLegalMoves() {
		score := 0
		if victim := board.At(m.To); !victim.IsEmpty() {
			score += pieceValue[victim.Kind]
		} else if m.EnPassant {
			score += pieceValue[chess.Pawn]
		}
		if chess.NeedsPromotion(m.Piece, m.To) {
			score += pieceValue[chess.Queen]
		}
		out = append(out, Candidate{Move: m, Score: score})
	}
	for _, side := range []chess.CastleSide{chess.Kingside, chess.Queenside} {
		if g.CanCastle(side) {
			out = append(out, Candidate{Castle: side, Score: 50})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Select samples one of the top candidates according to p.
func Select(p Preset, candidates []Candidate, r *rand.Rand) (Candidate, error) {
	if len(candidates) == 0 {
		return Candidate{}, ErrNoCandidates
	}
	limit := p.PrimaryChoices
	if limit <= 0 || limit > len(candidates) {
		limit = len(candidates)
	}

	weight := func(i int) float64 {
		if i < len(p.CandidateWeights) {
			return p.CandidateWeights[i]
		}
		return 1
	}
	total := 0.0
	for i := 0; i < limit; i++ {
		total += weight(i)
	}
	if total <= 0 {
		return Candidate{}, errors.New("candidate weights sum to zero")
	}

	threshold := r.Float64() * total
	for i := 0; i < limit; i++ {
		threshold -= weight(i)
		if threshold <= 0 {
			return candidates[i], nil
		}
	}
	return candidates[limit-1], nil
}

// Play picks a move for the side to move at g's difficulty and plays it.
func Play(ctx context.Context, g *game.Game, r *rand.Rand) (*chess.MoveRecord, error) {
	p, err := PresetFor(g.Difficulty())
	if err != nil {
		return nil, err
	}
	c, err := Select(p, Candidates(g), r)
	if err != nil {
		return nil, err
	}
	var rec *chess.MoveRecord
	var reason string
	if c.Castle != chess.NoCastle {
		rec, reason, err = g.Castle(ctx, c.Castle)
	} else {
		rec, reason, err = g.Play(ctx, c.Move.From, c.Move.To)
	}
	if err != nil {
		return nil, err
	}
	if reason != "" {
		return nil, fmt.Errorf("candidate rejected: %s", reason)
	}
	return rec, nil
}
