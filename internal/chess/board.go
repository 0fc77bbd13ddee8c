package chess

import (
	"fmt"
	"strings"
)

// Board is an 8x8 grid of cells. Copying a Board value yields an independent board.
type Board struct {
	cells [boardSize][boardSize]Piece
}

// NewBoard returns an empty board.
func NewBoard() *Board { return &Board{} }

// NewStandardBoard returns the initial position.
func NewStandardBoard() *Board {
	b := &Board{}
	back := [boardSize]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for _, c := range []Color{White, Black} {
		for col := 0; col < boardSize; col++ {
			b.cells[c.backRank()][col] = NewPiece(back[col], c)
			b.cells[c.pawnRank()][col] = NewPiece(Pawn, c)
		}
	}
	return b
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}

// At returns the piece on l, or NoPiece when l is empty or off the board.
func (b *Board) At(l Location) Piece {
	if !l.Valid() {
		return NoPiece
	}
	return b.cells[l.Row][l.Col]
}

// Place puts p on l, replacing whatever was there.
func (b *Board) Place(l Location, p Piece) error {
	if !l.Valid() {
		return fmt.Errorf("place %s: %w", p, outOfBounds(l))
	}
	b.cells[l.Row][l.Col] = p
	return nil
}

// Remove empties l and returns the piece that was there.
func (b *Board) Remove(l Location) (Piece, error) {
	if !l.Valid() {
		return NoPiece, fmt.Errorf("remove: %w", outOfBounds(l))
	}
	p := b.cells[l.Row][l.Col]
	b.cells[l.Row][l.Col] = NoPiece
	return p, nil
}

// relocate moves the piece on from to to, returning what was captured on to.
// Callers guarantee both squares are on the board.
func (b *Board) relocate(from, to Location) Piece {
	captured := b.cells[to.Row][to.Col]
	b.cells[to.Row][to.Col] = b.cells[from.Row][from.Col]
	b.cells[from.Row][from.Col] = NoPiece
	return captured
}

func outOfBounds(l Location) error {
	return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, l.Row, l.Col)
}

// Placement pairs a piece with its square.
type Placement struct {
	Location Location
	Piece    Piece
}

// Pieces lists the pieces of color c in row-major order. Captured pieces are
// no longer on the board and so never appear.
func (b *Board) Pieces(c Color) []Placement {
	var out []Placement
	for r := 0; r < boardSize; r++ {
		for col := 0; col < boardSize; col++ {
			p := b.cells[r][col]
			if !p.IsEmpty() && p.Color == c {
				out = append(out, Placement{Location: Location{Row: r, Col: col}, Piece: p})
			}
		}
	}
	return out
}

// FindKing returns the square of c's king. A missing king is reported with ok=false.
func (b *Board) FindKing(c Color) (Location, bool) {
	for r := 0; r < boardSize; r++ {
		for col := 0; col < boardSize; col++ {
			p := b.cells[r][col]
			if p.Kind == King && p.Color == c {
				return Location{Row: r, Col: col}, true
			}
		}
	}
	return Location{}, false
}

// Equal reports whether both boards hold identical pieces, moved-flags included.
func (b *Board) Equal(o *Board) bool {
	return b.cells == o.cells
}

// String draws the board with rank 8 on top; uppercase is white.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < boardSize; r++ {
		sb.WriteByte(byte('8' - r))
		sb.WriteByte(' ')
		for col := 0; col < boardSize; col++ {
			sb.WriteString(pieceGlyph(b.cells[r][col]))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh")
	return sb.String()
}

func pieceGlyph(p Piece) string {
	if p.IsEmpty() {
		return "."
	}
	g := p.Kind.Letter()
	if p.Kind == Pawn {
		g = "P"
	}
	if p.Color == Black {
		return strings.ToLower(g)
	}
	return g
}
