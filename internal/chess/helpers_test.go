package chess

import "testing"

// setup builds a board from "e4:wP"-style entries; letters follow algebraic notation.
func setup(t *testing.T, entries ...string) *Board {
	t.Helper()
	kinds := map[byte]Kind{'P': Pawn, 'N': Knight, 'B': Bishop, 'R': Rook, 'Q': Queen, 'K': King}
	b := NewBoard()
	for _, e := range entries {
		if len(e) != 5 || e[2] != ':' {
			t.Fatalf("bad entry %q", e)
		}
		loc, err := ParseSquare(e[:2])
		if err != nil {
			t.Fatalf("bad square in %q: %v", e, err)
		}
		color := White
		if e[3] == 'b' {
			color = Black
		}
		kind, ok := kinds[e[4]]
		if !ok {
			t.Fatalf("bad kind in %q", e)
		}
		if err := b.Place(loc, NewPiece(kind, color)); err != nil {
			t.Fatalf("place %q: %v", e, err)
		}
	}
	return b
}

type fixedClock struct{ ply int }

func (c *fixedClock) Ply() int { return c.ply }

func destinations(moves []Move) map[Location]bool {
	out := make(map[Location]bool, len(moves))
	for _, m := range moves {
		out[m.To] = true
	}
	return out
}

func sq(s string) Location { return MustSquare(s) }
