package chess

// Move describes one relocation plus what it did to the board.
type Move struct {
	From     Location
	To       Location
	Piece    Piece
	Captured Piece

	Capture   bool
	Check     bool
	Checkmate bool
	Promotion Kind
	EnPassant bool
	Castle    CastleSide
}

// IsPromotion reports whether the move promoted a pawn.
func (m Move) IsPromotion() bool { return m.Promotion != NoKind }

// IsCastle reports whether the move was a castling king move.
func (m Move) IsCastle() bool { return m.Castle != NoCastle }
