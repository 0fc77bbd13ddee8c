package domain

import "time"

// PieceState is one piece of a snapshot.
type PieceState struct {
	Kind  string `json:"kind"`
	Color string `json:"color"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Moved bool   `json:"moved"`
}

// GameContext is the non-board part of a snapshot.
type GameContext struct {
	GameID        string `json:"game_id"`
	Mode          string `json:"mode"`
	CurrentPlayer string `json:"current_player"`
	HumanColor    string `json:"human_color"`
	Result        string `json:"result"`
	Difficulty    string `json:"difficulty"`
	WhiteName     string `json:"white_name"`
	BlackName     string `json:"black_name"`
}

// EnPassantState is the en passant opportunity live when a snapshot was taken.
// Rows and columns use the board's row 0 = rank 8 convention.
type EnPassantState struct {
	TargetRow int `json:"target_row"`
	TargetCol int `json:"target_col"`
	VictimRow int `json:"victim_row"`
	VictimCol int `json:"victim_col"`
	ValidPly  int `json:"valid_ply"`
}

// GameSnapshot is an immutable description of a game at the end of a turn.
// Use the accessor methods; the slices are never shared with the caller.
type GameSnapshot struct {
	pieces  []PieceState
	context GameContext
	ply     int
	takenAt time.Time
	ep      *EnPassantState
}

// NewGameSnapshot copies pieces into a new snapshot.
func NewGameSnapshot(pieces []PieceState, ctx GameContext, ply int, takenAt time.Time) GameSnapshot {
	return GameSnapshot{
		pieces:  append([]PieceState(nil), pieces...),
		context: ctx,
		ply:     ply,
		takenAt: takenAt,
	}
}

// WithEnPassant returns a copy of s carrying ep; nil drops it.
func (s GameSnapshot) WithEnPassant(ep *EnPassantState) GameSnapshot {
	s.pieces = append([]PieceState(nil), s.pieces...)
	s.ep = nil
	if ep != nil {
		cp := *ep
		s.ep = &cp
	}
	return s
}

// EnPassant returns the stored en passant opportunity, if any.
func (s GameSnapshot) EnPassant() (EnPassantState, bool) {
	if s.ep == nil {
		return EnPassantState{}, false
	}
	return *s.ep, true
}

// Pieces returns a copy of the piece list.
func (s GameSnapshot) Pieces() []PieceState { return append([]PieceState(nil), s.pieces...) }

// Context returns the game context.
func (s GameSnapshot) Context() GameContext { return s.context }

// Ply is the number of plies played when the snapshot was taken.
func (s GameSnapshot) Ply() int { return s.ply }

// TakenAt is the capture time.
func (s GameSnapshot) TakenAt() time.Time { return s.takenAt }

type snapshotJSON struct {
	Pieces  []PieceState `json:"pieces"`
	Context GameContext  `json:"context"`
	Ply     int          `json:"ply"`
	TakenAt time.Time    `json:"taken_at"`

	EnPassant *EnPassantState `json:"en_passant,omitempty"`
}

// GameRecord is a finished game as archived.
type GameRecord struct {
	ID         int64
	GameID     string
	Mode       string
	Difficulty string
	WhiteName  string
	BlackName  string
	Result     string
	Moves      []string
	StartedAt  time.Time
	EndedAt    time.Time
}
