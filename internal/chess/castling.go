package chess

import (
	"errors"
	"fmt"
)

// ErrCastlingLayout is returned when the king or rook is not where castling expects it.
var ErrCastlingLayout = errors.New("castling pieces not in place")

// CastleSide selects kingside or queenside castling.
type CastleSide uint8

const (
	NoCastle CastleSide = iota
	Kingside
	Queenside
)

func (s CastleSide) String() string {
	switch s {
	case Kingside:
		return "O-O"
	case Queenside:
		return "O-O-O"
	}
	return ""
}

const kingHomeCol = 4

// castleGeometry returns the rook's home column and the king/rook destination columns.
func castleGeometry(side CastleSide) (rookFrom, kingTo, rookTo int) {
	if side == Kingside {
		return 7, 6, 5
	}
	return 0, 2, 3
}

// CastlingValidator decides whether a side may castle. The castling executor
// itself never checks legality.
type CastlingValidator interface {
	CanCastle(b *Board, c Color, side CastleSide) bool
}

// Castle relocates c's king two squares toward side and jumps the rook over
// it, marking both as moved. It trusts the caller to have validated the move
// and only refuses when the pieces are missing.
func Castle(b *Board, c Color, side CastleSide) (Move, error) {
	if side != Kingside && side != Queenside {
		return Move{}, fmt.Errorf("%w: no side selected", ErrCastlingLayout)
	}
	row := c.backRank()
	rookFrom, kingTo, rookTo := castleGeometry(side)
	kingSq := Location{Row: row, Col: kingHomeCol}
	rookSq := Location{Row: row, Col: rookFrom}

	king, rook := b.At(kingSq), b.At(rookSq)
	if king.Kind != King || king.Color != c || rook.Kind != Rook || rook.Color != c {
		return Move{}, fmt.Errorf("%w: %s %s", ErrCastlingLayout, c, side)
	}

	kingDst := Location{Row: row, Col: kingTo}
	rookDst := Location{Row: row, Col: rookTo}
	b.relocate(kingSq, kingDst)
	b.relocate(rookSq, rookDst)
	b.cells[row][kingTo].Moved = true
	b.cells[row][rookTo].Moved = true

	return Move{From: kingSq, To: kingDst, Piece: king, Castle: side}, nil
}

// StandardCastlingValidator applies the usual rules: neither piece has moved,
// the squares between them are empty, and the king is not in check and does
// not pass through or land on an attacked square.
type StandardCastlingValidator struct{}

func (StandardCastlingValidator) CanCastle(b *Board, c Color, side CastleSide) bool {
	if side != Kingside && side != Queenside {
		return false
	}
	row := c.backRank()
	rookFrom, kingTo, _ := castleGeometry(side)
	king := b.At(Location{Row: row, Col: kingHomeCol})
	rook := b.At(Location{Row: row, Col: rookFrom})
	if king.Kind != King || king.Color != c || king.Moved {
		return false
	}
	if rook.Kind != Rook || rook.Color != c || rook.Moved {
		return false
	}

	lo, hi := rookFrom+1, kingHomeCol-1
	if side == Kingside {
		lo, hi = kingHomeCol+1, rookFrom-1
	}
	for col := lo; col <= hi; col++ {
		if !b.At(Location{Row: row, Col: col}).IsEmpty() {
			return false
		}
	}

	step := 1
	if kingTo < kingHomeCol {
		step = -1
	}
	for col := kingHomeCol; ; col += step {
		if SquareUnderAttack(b, Location{Row: row, Col: col}, c) {
			return false
		}
		if col == kingTo {
			break
		}
	}
	return true
}

// CastlingFunc adapts a function to CastlingValidator.
type CastlingFunc func(b *Board, c Color, side CastleSide) bool

func (f CastlingFunc) CanCastle(b *Board, c Color, side CastleSide) bool { return f(b, c, side) }
