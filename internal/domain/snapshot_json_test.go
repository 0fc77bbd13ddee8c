package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSnapshotIsImmutable(t *testing.T) {
	pieces := []PieceState{{Kind: "rook", Color: "white", Row: 7, Col: 0}}
	s := NewGameSnapshot(pieces, GameContext{GameID: "x"}, 2, time.Unix(10, 0))
	pieces[0].Kind = "queen"
	if s.Pieces()[0].Kind != "rook" {
		t.Fatalf("snapshot shares the caller's slice")
	}
	got := s.Pieces()
	got[0].Row = 0
	if s.Pieces()[0].Row != 7 {
		t.Fatalf("accessor exposes internal slice")
	}
}

func TestSnapshotJSONFieldNames(t *testing.T) {
	s := NewGameSnapshot(
		[]PieceState{{Kind: "king", Color: "black", Row: 0, Col: 4, Moved: true}},
		GameContext{GameID: "abc", CurrentPlayer: "white", Result: "ongoing"},
		5,
		time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC),
	)
	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"pieces"`, `"game_id":"abc"`, `"current_player":"white"`, `"ply":5`, `"moved":true`} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("%s missing from %s", want, raw)
		}
	}

	var back GameSnapshot
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Ply() != 5 || back.Context() != s.Context() || !back.TakenAt().Equal(s.TakenAt()) {
		t.Fatalf("decoded %+v", back)
	}
}

func TestSnapshotJSONEnPassant(t *testing.T) {
	plain := NewGameSnapshot(nil, GameContext{}, 1, time.Unix(0, 0))
	raw, err := json.Marshal(plain)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "en_passant") {
		t.Fatalf("absent en passant serialized: %s", raw)
	}

	ep := &EnPassantState{TargetRow: 2, TargetCol: 3, VictimRow: 3, VictimCol: 3, ValidPly: 4}
	s := plain.WithEnPassant(ep)
	ep.ValidPly = 99
	if got, _ := s.EnPassant(); got.ValidPly != 4 {
		t.Fatalf("snapshot shares the caller's en passant state")
	}
	if _, ok := plain.EnPassant(); ok {
		t.Fatalf("WithEnPassant modified the receiver")
	}

	raw, err = json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"en_passant":{"target_row":2`) {
		t.Fatalf("en passant missing from %s", raw)
	}
	var back GameSnapshot
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got, ok := back.EnPassant()
	if !ok || got != (EnPassantState{TargetRow: 2, TargetCol: 3, VictimRow: 3, VictimCol: 3, ValidPly: 4}) {
		t.Fatalf("decoded en passant %+v, %v", got, ok)
	}
}
