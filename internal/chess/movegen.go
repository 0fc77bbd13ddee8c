package chess

type offset struct{ dr, dc int }

var (
	knightOffsets = []offset{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = []offset{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = []offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = []offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	royalDirs     = append(append([]offset(nil), diagonalDirs...), straightDirs...)
)

// PseudoMoves lists the moves of the piece on loc that obey its movement shape
// and blocking rules, without regard to the safety of its own king. An empty
// or off-board square yields no moves. Castling and en passant are produced
// elsewhere.
func PseudoMoves(b *Board, loc Location) []Move {
	p := b.At(loc)
	if p.IsEmpty() {
		return nil
	}
	switch p.Kind {
	case Pawn:
		return pawnMoves(b, loc, p)
	case Knight:
		return stepMoves(b, loc, p, knightOffsets)
	case Bishop:
		return rayMoves(b, loc, p, diagonalDirs)
	case Rook:
		return rayMoves(b, loc, p, straightDirs)
	case Queen:
		return rayMoves(b, loc, p, royalDirs)
	case King:
		return stepMoves(b, loc, p, kingOffsets)
	}
	return nil
}

func pawnMoves(b *Board, loc Location, p Piece) []Move {
	var moves []Move
	dir := p.Color.forward()

	one := loc.offset(dir, 0)
	if one.Valid() && b.At(one).IsEmpty() {
		moves = append(moves, Move{From: loc, To: one, Piece: p})
		two := loc.offset(2*dir, 0)
		if loc.Row == p.Color.pawnRank() && !p.Moved && two.Valid() && b.At(two).IsEmpty() {
			moves = append(moves, Move{From: loc, To: two, Piece: p})
		}
	}

	for _, dc := range []int{-1, 1} {
		to := loc.offset(dir, dc)
		if !to.Valid() {
			continue
		}
		target := b.At(to)
		if !target.IsEmpty() && target.Color != p.Color {
			moves = append(moves, Move{From: loc, To: to, Piece: p, Captured: target, Capture: true})
		}
	}
	return moves
}

// EnPassantMoves returns the en passant capture available to the pawn on loc
// when target is the square a double-moved enemy pawn passed over.
func EnPassantMoves(b *Board, loc, target Location) []Move {
	p := b.At(loc)
	if p.Kind != Pawn || !target.Valid() {
		return nil
	}
	if target.Row != loc.Row+p.Color.forward() {
		return nil
	}
	if dc := target.Col - loc.Col; dc != 1 && dc != -1 {
		return nil
	}
	if !b.At(target).IsEmpty() {
		return nil
	}
	victimSq := EnPassantVictim(target, p.Color)
	victim := b.At(victimSq)
	if victim.Kind != Pawn || victim.Color == p.Color {
		return nil
	}
	return []Move{{From: loc, To: target, Piece: p, Captured: victim, Capture: true, EnPassant: true}}
}

// EnPassantVictim is the square of the pawn taken when a pawn of color
// capturer lands on target: one rank past target in the victim's direction of travel.
func EnPassantVictim(target Location, capturer Color) Location {
	return target.offset(-capturer.forward(), 0)
}

func stepMoves(b *Board, loc Location, p Piece, offsets []offset) []Move {
	moves := make([]Move, 0, len(offsets))
	for _, o := range offsets {
		to := loc.offset(o.dr, o.dc)
		if !to.Valid() {
			continue
		}
		target := b.At(to)
		if target.IsEmpty() {
			moves = append(moves, Move{From: loc, To: to, Piece: p})
		} else if target.Color != p.Color {
			moves = append(moves, Move{From: loc, To: to, Piece: p, Captured: target, Capture: true})
		}
	}
	return moves
}

func rayMoves(b *Board, loc Location, p Piece, dirs []offset) []Move {
	var moves []Move
	for _, d := range dirs {
		for to := loc.offset(d.dr, d.dc); to.Valid(); to = to.offset(d.dr, d.dc) {
			target := b.At(to)
			if target.IsEmpty() {
				moves = append(moves, Move{From: loc, To: to, Piece: p})
				continue
			}
			if target.Color != p.Color {
				moves = append(moves, Move{From: loc, To: to, Piece: p, Captured: target, Capture: true})
			}
			break
		}
	}
	return moves
}

// attacks reports whether the piece on from attacks sq. Pawns attack their
// forward diagonals whether or not anything stands there.
func attacks(b *Board, from, sq Location) bool {
	p := b.At(from)
	if p.IsEmpty() {
		return false
	}
	if p.Kind == Pawn {
		return sq.Row == from.Row+p.Color.forward() && (sq.Col == from.Col-1 || sq.Col == from.Col+1)
	}
	for _, m := range PseudoMoves(b, from) {
		if m.To == sq {
			return true
		}
	}
	return false
}
