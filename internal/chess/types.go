package chess

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfBounds is returned when a coordinate falls outside the 8x8 board.
var ErrOutOfBounds = errors.New("location out of bounds")

const boardSize = 8

// Color identifies a side.
type Color uint8

const (
	White Color = iota
	Black
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// forward is the row delta of a pawn advance. Row 0 is rank 8, so white moves up.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

// backRank is the row holding the side's king and rooks at the start.
func (c Color) backRank() int {
	if c == White {
		return 7
	}
	return 0
}

// pawnRank is the row the side's pawns start on.
func (c Color) pawnRank() int {
	if c == White {
		return 6
	}
	return 1
}

// ParseColor accepts "white"/"w" and "black"/"b".
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return White, fmt.Errorf("unknown color %q", s)
}

// Kind is the closed set of piece variants. The zero value marks an empty cell.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{"", "pawn", "knight", "bishop", "rook", "queen", "king"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Letter is the algebraic piece letter; pawns have none.
func (k Kind) Letter() string {
	switch k {
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return ""
}

// ParseKind accepts the names produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if i > 0 && n == name {
			return Kind(i), nil
		}
	}
	return NoKind, fmt.Errorf("unknown piece kind %q", s)
}

// Piece is the content of a board cell. Its square is wherever the board holds it.
type Piece struct {
	Kind  Kind
	Color Color
	Moved bool
}

// NoPiece is an empty cell.
var NoPiece = Piece{}

// NewPiece returns an unmoved piece.
func NewPiece(kind Kind, color Color) Piece {
	return Piece{Kind: kind, Color: color}
}

// IsEmpty reports whether p is the empty cell.
func (p Piece) IsEmpty() bool { return p.Kind == NoKind }

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Color.String() + " " + p.Kind.String()
}

// Location is a (row, column) pair; row 0 is rank 8 and column 0 is file a.
type Location struct {
	Row int
	Col int
}

// NewLocation validates the coordinates instead of clamping them.
func NewLocation(row, col int) (Location, error) {
	if !InBounds(row, col) {
		return Location{}, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, row, col)
	}
	return Location{Row: row, Col: col}, nil
}

// InBounds reports whether (row, col) is on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < boardSize && col >= 0 && col < boardSize
}

// Valid reports whether l is on the board.
func (l Location) Valid() bool { return InBounds(l.Row, l.Col) }

func (l Location) offset(dr, dc int) Location {
	return Location{Row: l.Row + dr, Col: l.Col + dc}
}

// String renders the square in algebraic form, e.g. "e4".
func (l Location) String() string {
	if !l.Valid() {
		return fmt.Sprintf("(%d,%d)", l.Row, l.Col)
	}
	return string(rune('a'+l.Col)) + string(rune('8'-l.Row))
}

// ParseSquare converts "e4" style input into a Location.
func ParseSquare(s string) (Location, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return Location{}, fmt.Errorf("%w: %q", ErrOutOfBounds, s)
	}
	return NewLocation(int('8'-s[1]), int(s[0]-'a'))
}

// MustSquare is ParseSquare for literals known to be valid.
func MustSquare(s string) Location {
	l, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return l
}
