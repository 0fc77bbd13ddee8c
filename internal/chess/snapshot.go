package chess

import (
	"fmt"
	"time"

	"github.com/park285/chess-rules/internal/domain"
)

// CaptureSnapshot records every piece on b together with ctx and, when ep is
// non-nil, its live en passant opportunity.
func CaptureSnapshot(b *Board, ep *EnPassantTracker, ctx domain.GameContext, ply int, now time.Time) domain.GameSnapshot {
	var pieces []domain.PieceState
	for _, c := range []Color{White, Black} {
		for _, pl := range b.Pieces(c) {
			pieces = append(pieces, domain.PieceState{
				Kind:  pl.Piece.Kind.String(),
				Color: pl.Piece.Color.String(),
				Row:   pl.Location.Row,
				Col:   pl.Location.Col,
				Moved: pl.Piece.Moved,
			})
		}
	}
	snap := domain.NewGameSnapshot(pieces, ctx, ply, now)
	if ep == nil {
		return snap
	}
	if target, victim, validPly, ok := ep.State(); ok {
		snap = snap.WithEnPassant(&domain.EnPassantState{
			TargetRow: target.Row,
			TargetCol: target.Col,
			VictimRow: victim.Row,
			VictimCol: victim.Col,
			ValidPly:  validPly,
		})
	}
	return snap
}

// RestoreEnPassant clears t and reinstates the opportunity stored in s, if any.
func RestoreEnPassant(s domain.GameSnapshot, t *EnPassantTracker) error {
	t.Clear()
	st, ok := s.EnPassant()
	if !ok {
		return nil
	}
	target, err := NewLocation(st.TargetRow, st.TargetCol)
	if err != nil {
		return fmt.Errorf("restore en passant target: %w", err)
	}
	victim, err := NewLocation(st.VictimRow, st.VictimCol)
	if err != nil {
		return fmt.Errorf("restore en passant victim: %w", err)
	}
	t.Restore(target, victim, st.ValidPly)
	return nil
}

// RestoreBoard rebuilds a board from the snapshot's piece list.
func RestoreBoard(s domain.GameSnapshot) (*Board, error) {
	b := NewBoard()
	for _, ps := range s.Pieces() {
		kind, err := ParseKind(ps.Kind)
		if err != nil {
			return nil, fmt.Errorf("restore piece at (%d,%d): %w", ps.Row, ps.Col, err)
		}
		color, err := ParseColor(ps.Color)
		if err != nil {
			return nil, fmt.Errorf("restore piece at (%d,%d): %w", ps.Row, ps.Col, err)
		}
		loc, err := NewLocation(ps.Row, ps.Col)
		if err != nil {
			return nil, fmt.Errorf("restore %s %s: %w", ps.Color, ps.Kind, err)
		}
		if err := b.Place(loc, Piece{Kind: kind, Color: color, Moved: ps.Moved}); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Load replaces the contents of b with those of src.
func (b *Board) Load(src *Board) {
	b.cells = src.cells
}
