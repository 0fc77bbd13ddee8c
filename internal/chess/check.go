package chess

// SquareUnderAttack reports whether any piece of defending's opponent attacks sq.
func SquareUnderAttack(b *Board, sq Location, defending Color) bool {
	attacker := defending.Opponent()
	for r := 0; r < boardSize; r++ {
		for c := 0; c < boardSize; c++ {
			from := Location{Row: r, Col: c}
			p := b.At(from)
			if p.IsEmpty() || p.Color != attacker {
				continue
			}
			if attacks(b, from, sq) {
				return true
			}
		}
	}
	return false
}

// KingInCheck reports whether c's king is attacked. A board without that king
// is never in check.
func KingInCheck(b *Board, c Color) bool {
	king, ok := b.FindKing(c)
	if !ok {
		return false
	}
	return SquareUnderAttack(b, king, c)
}

// WouldMoveCauseCheck reports whether relocating the piece on from to to leaves
// c's king in check. The move is tried on a copy; b is never modified.
func WouldMoveCauseCheck(b *Board, from, to Location, c Color) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	return leavesKingInCheck(b, Move{From: from, To: to, Piece: b.At(from)}, c)
}

// leavesKingInCheck tries m on a copy of b. An en passant capture also removes
// the victim, which is not on the destination square.
func leavesKingInCheck(b *Board, m Move, c Color) bool {
	trial := *b
	trial.relocate(m.From, m.To)
	if m.EnPassant {
		victim := EnPassantVictim(m.To, m.Piece.Color)
		trial.cells[victim.Row][victim.Col] = NoPiece
	}
	return KingInCheck(&trial, c)
}

// LegalMoves lists the moves of c's piece on loc that keep c's king safe.
// epTarget, when non-nil, is the live en passant target square.
func LegalMoves(b *Board, loc Location, c Color, epTarget *Location) []Move {
	p := b.At(loc)
	if p.IsEmpty() || p.Color != c {
		return nil
	}
	candidates := PseudoMoves(b, loc)
	if epTarget != nil && p.Kind == Pawn {
		candidates = append(candidates, EnPassantMoves(b, loc, *epTarget)...)
	}
	legal := candidates[:0]
	for _, m := range candidates {
		if !leavesKingInCheck(b, m, c) {
			legal = append(legal, m)
		}
	}
	return legal
}

// AllLegalMoves lists every legal move of c.
func AllLegalMoves(b *Board, c Color, epTarget *Location) []Move {
	var out []Move
	for _, pl := range b.Pieces(c) {
		out = append(out, LegalMoves(b, pl.Location, c, epTarget)...)
	}
	return out
}

// HasLegalMove reports whether c can move at all.
func HasLegalMove(b *Board, c Color, epTarget *Location) bool {
	for _, pl := range b.Pieces(c) {
		if len(LegalMoves(b, pl.Location, c, epTarget)) > 0 {
			return true
		}
	}
	return false
}

// IsLegal reports whether from->to is among c's legal moves.
func IsLegal(b *Board, from, to Location, c Color, epTarget *Location) bool {
	for _, m := range LegalMoves(b, from, c, epTarget) {
		if m.To == to {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether c is in check with no legal move.
func IsCheckmate(b *Board, c Color, epTarget *Location) bool {
	return KingInCheck(b, c) && !HasLegalMove(b, c, epTarget)
}

// IsStalemate reports whether c is not in check but has no legal move.
func IsStalemate(b *Board, c Color, epTarget *Location) bool {
	return !KingInCheck(b, c) && !HasLegalMove(b, c, epTarget)
}
