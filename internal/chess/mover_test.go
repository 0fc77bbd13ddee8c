package chess

import (
	"errors"
	"testing"
)

func TestExecutePawnDoubleStep(t *testing.T) {
	b := NewStandardBoard()
	m := NewMover(b, nil, NewMoveHistory(), nil, nil)
	from, to := Location{Row: 6, Col: 4}, Location{Row: 4, Col: 4}

	outcome, rec, err := m.Execute(from, to)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if outcome != Applied {
		t.Fatalf("outcome = %v", outcome)
	}
	if !b.At(from).IsEmpty() {
		t.Fatalf("origin not emptied")
	}
	p := b.At(to)
	if p.Kind != Pawn || p.Color != White || !p.Moved {
		t.Fatalf("destination = %+v", p)
	}
	if rec.Notation != "e2-e4" || rec.Number != 1 {
		t.Fatalf("record = %+v", rec)
	}
}

func TestExecuteCaptureRemovesCapturedPiece(t *testing.T) {
	b := setup(t, "e1:wK", "e8:bK", "e4:wP", "d5:bQ")
	m := NewMover(b, nil, NewMoveHistory(), nil, nil)
	_, rec, err := m.Execute(sq("e4"), sq("d5"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !rec.Capture || rec.Move.Captured.Kind != Queen {
		t.Fatalf("record = %+v", rec.Move)
	}
	if p := b.At(sq("d5")); p.Kind != Pawn || p.Color != White {
		t.Fatalf("d5 = %v", p)
	}
	for _, pl := range b.Pieces(Black) {
		if pl.Piece.Kind == Queen {
			t.Fatalf("captured queen still enumerated at %s", pl.Location)
		}
	}
	if rec.Notation != "e4xd5" {
		t.Fatalf("notation = %q", rec.Notation)
	}
}

func TestExecuteWithoutPieceIsIgnored(t *testing.T) {
	b := NewStandardBoard()
	before := b.Clone()
	h := NewMoveHistory()
	m := NewMover(b, nil, h, nil, nil)
	outcome, rec, err := m.Execute(sq("e4"), sq("e5"))
	if err != nil || outcome != IgnoredNoPiece || rec != nil {
		t.Fatalf("got %v %v %v", outcome, rec, err)
	}
	if !b.Equal(before) || h.Len() != 0 {
		t.Fatalf("ignored move changed state")
	}
}

func TestExecuteOffBoard(t *testing.T) {
	m := NewMover(NewStandardBoard(), nil, nil, nil, nil)
	if _, _, err := m.Execute(sq("e2"), Location{Row: -1, Col: 4}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestPromotionChoosesPiece(t *testing.T) {
	b := setup(t, "e1:wK", "h8:bK", "b7:wP")
	var asked Color = Black
	chooser := ChooserFunc(func(c Color) (Kind, bool) {
		asked = c
		return Knight, true
	})
	m := NewMover(b, nil, NewMoveHistory(), chooser, nil)
	_, rec, err := m.Execute(sq("b7"), sq("b8"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if asked != White {
		t.Fatalf("chooser asked for %v", asked)
	}
	if p := b.At(sq("b8")); p.Kind != Knight || p.Color != White {
		t.Fatalf("b8 = %v", p)
	}
	if rec.Notation != "b7-b8=N" {
		t.Fatalf("notation = %q", rec.Notation)
	}
}

func TestPromotionDefaultsToQueenWithCheck(t *testing.T) {
	b := setup(t, "e1:wK", "h8:bK", "b7:wP")
	m := NewMover(b, nil, NewMoveHistory(), nil, nil)
	_, rec, err := m.Execute(sq("b7"), sq("b8"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if b.At(sq("b8")).Kind != Queen {
		t.Fatalf("expected a queen on b8")
	}
	if !rec.Check || rec.Notation != "b7-b8=Q+" {
		t.Fatalf("record = %+v", rec)
	}
}

func TestPromotionCancelRestoresBoard(t *testing.T) {
	clock := &fixedClock{ply: 3}
	ep := NewEnPassantTracker(clock)
	ep.RecordDoubleMove(sq("g7"), sq("g5"))
	clock.ply = 4

	b := setup(t, "e1:wK", "h8:bK", "b7:wP", "a8:bR", "g5:bP")
	before := b.Clone()
	h := NewMoveHistory()
	cancel := ChooserFunc(func(Color) (Kind, bool) { return NoKind, false })
	m := NewMover(b, ep, h, cancel, nil)

	outcome, rec, err := m.Execute(sq("b7"), sq("a8"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if outcome != PromotionCancelled || rec != nil {
		t.Fatalf("outcome = %v, rec = %v", outcome, rec)
	}
	if !b.Equal(before) {
		t.Fatalf("board not restored:\n%s\nwant\n%s", b, before)
	}
	if h.Len() != 0 {
		t.Fatalf("cancelled move was logged")
	}
	if !ep.IsTarget(sq("g6")) {
		t.Fatalf("cancelled promotion must not clear the en passant target")
	}
}

func TestPromotionInvalidChoiceCancels(t *testing.T) {
	b := setup(t, "e1:wK", "h8:bK", "c2:bP")
	before := b.Clone()
	m := NewMover(b, nil, nil, ChooserFunc(func(Color) (Kind, bool) { return King, true }), nil)
	outcome, _, err := m.Execute(sq("c2"), sq("c1"))
	if err != nil || outcome != PromotionCancelled {
		t.Fatalf("outcome = %v, err = %v", outcome, err)
	}
	if !b.Equal(before) {
		t.Fatalf("board changed after invalid promotion choice")
	}
}

func TestExecuteDetectsCheckmate(t *testing.T) {
	b := setup(t, "g8:bK", "f7:bP", "g7:bP", "h7:bP", "a1:wR", "g1:wK")
	m := NewMover(b, nil, NewMoveHistory(), nil, nil)
	_, rec, err := m.Execute(sq("a1"), sq("a8"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !rec.Check || !rec.Checkmate {
		t.Fatalf("expected mate, got %+v", rec)
	}
	if rec.Notation != "Ra1-a8#" {
		t.Fatalf("notation = %q", rec.Notation)
	}
}

func TestExecuteClearsStaleEnPassant(t *testing.T) {
	tm := NewTurnManager(nil)
	ep := NewEnPassantTracker(tm)
	b := NewStandardBoard()
	m := NewMover(b, ep, nil, nil, nil)
	if _, _, err := m.Execute(sq("e2"), sq("e4")); err != nil {
		t.Fatal(err)
	}
	tm.SwitchTurns()
	if ep.Target() == nil {
		t.Fatalf("e3 should be the target")
	}
	if _, _, err := m.Execute(sq("g8"), sq("f6")); err != nil {
		t.Fatal(err)
	}
	if ep.Target() != nil {
		t.Fatalf("a non-pawn move clears the tracker")
	}
}
