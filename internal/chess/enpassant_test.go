package chess

import "testing"

func TestEnPassantTrackerWindow(t *testing.T) {
	clock := &fixedClock{ply: 4}
	ep := NewEnPassantTracker(clock)
	if ep.Target() != nil {
		t.Fatalf("fresh tracker has no target")
	}

	ep.RecordDoubleMove(sq("d7"), sq("d5"))
	if ep.Target() != nil {
		t.Fatalf("target must not be live on the ply of the advance")
	}

	clock.ply = 5
	target := ep.Target()
	if target == nil || *target != sq("d6") {
		t.Fatalf("target = %v, want d6", target)
	}
	if victim, ok := ep.Victim(); !ok || victim != sq("d5") {
		t.Fatalf("victim = %v, %v", victim, ok)
	}
	if !ep.IsTarget(sq("d6")) || ep.IsTarget(sq("e6")) {
		t.Fatalf("IsTarget mismatch")
	}

	clock.ply = 6
	if ep.Target() != nil || ep.IsTarget(sq("d6")) {
		t.Fatalf("target must expire after one ply")
	}
	if _, ok := ep.Victim(); ok {
		t.Fatalf("victim must expire with the target")
	}
}

func TestEnPassantTrackerClear(t *testing.T) {
	clock := &fixedClock{}
	ep := NewEnPassantTracker(clock)
	ep.RecordDoubleMove(sq("e2"), sq("e4"))
	clock.ply = 1
	ep.Clear()
	if ep.Target() != nil {
		t.Fatalf("cleared tracker reports a target")
	}
}

// enPassantFixture has black to move with a white pawn on e5, ready for ...d7-d5.
func enPassantFixture(t *testing.T) (*Board, *TurnManager, *EnPassantTracker, *Mover) {
	t.Helper()
	b := setup(t, "e1:wK", "e8:bK", "e5:wP", "d7:bP")
	tm := NewTurnManager(nil)
	tm.SwitchTurns()
	ep := NewEnPassantTracker(tm)
	mover := NewMover(b, ep, NewMoveHistory(), nil, nil)
	if _, _, err := mover.Execute(sq("d7"), sq("d5")); err != nil {
		t.Fatalf("d7-d5: %v", err)
	}
	tm.SwitchTurns()
	return b, tm, ep, mover
}

func TestEnPassantLegalImmediately(t *testing.T) {
	b, tm, ep, _ := enPassantFixture(t)
	if tm.Current() != White {
		t.Fatalf("white should be to move")
	}
	if !IsLegal(b, sq("e5"), sq("d6"), White, ep.Target()) {
		t.Fatalf("e5xd6 en passant should be legal right after d7-d5")
	}
}

func TestEnPassantExpiresAfterAnotherPly(t *testing.T) {
	b, tm, ep, _ := enPassantFixture(t)
	tm.NextTurn()
	if IsLegal(b, sq("e5"), sq("d6"), White, ep.Target()) {
		t.Fatalf("en passant must not be available one ply later")
	}
}

func TestEnPassantExecutionRemovesVictim(t *testing.T) {
	b, _, _, mover := enPassantFixture(t)
	outcome, rec, err := mover.Execute(sq("e5"), sq("d6"))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if outcome != Applied || rec == nil {
		t.Fatalf("outcome = %v", outcome)
	}
	if !rec.Move.EnPassant || !rec.Capture {
		t.Fatalf("record should be an en passant capture: %+v", rec.Move)
	}
	if !b.At(sq("d5")).IsEmpty() {
		t.Fatalf("captured pawn still on d5")
	}
	if p := b.At(sq("d6")); p.Kind != Pawn || p.Color != White {
		t.Fatalf("d6 = %v", p)
	}
	if rec.Notation != "e5xd6" {
		t.Fatalf("notation = %q", rec.Notation)
	}
}
