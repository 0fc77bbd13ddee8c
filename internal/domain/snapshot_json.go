package domain

import "encoding/json"

func (s GameSnapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotJSON{Pieces: s.pieces, Context: s.context, Ply: s.ply, TakenAt: s.takenAt, EnPassant: s.ep})
}

func (s *GameSnapshot) UnmarshalJSON(raw []byte) error {
	var v snapshotJSON
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*s = NewGameSnapshot(v.Pieces, v.Context, v.Ply, v.TakenAt).WithEnPassant(v.EnPassant)
	return nil
}
