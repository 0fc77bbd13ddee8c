package chess

import (
	"fmt"
	"strings"
	"time"
)

// MoveRecord is an executed move as stored in the game log.
type MoveRecord struct {
	Move      Move
	Player    Color
	Number    int
	Capture   bool
	Check     bool
	Checkmate bool
	Timestamp time.Time
	Notation  string
}

// Notation renders m as long algebraic text: Ng1-f3, e4xd5, e7-e8=Q+, O-O#.
func Notation(m Move) string {
	var b strings.Builder
	if m.IsCastle() {
		b.WriteString(m.Castle.String())
	} else {
		b.WriteString(m.Piece.Kind.Letter())
		b.WriteString(m.From.String())
		if m.Capture {
			b.WriteByte('x')
		} else {
			b.WriteByte('-')
		}
		b.WriteString(m.To.String())
		if m.IsPromotion() {
			b.WriteByte('=')
			b.WriteString(m.Promotion.Letter())
		}
	}
	switch {
	case m.Checkmate:
		b.WriteByte('#')
	case m.Check:
		b.WriteByte('+')
	}
	return b.String()
}

// MoveHistory is the append-only log of executed moves. base is the number of
// plies played before the first record, so numbering continues after a resume.
type MoveHistory struct {
	records []MoveRecord
	base    int
	now     func() time.Time
}

// NewMoveHistory returns an empty log.
func NewMoveHistory() *MoveHistory {
	return &MoveHistory{now: time.Now}
}

// Add appends m played by player and returns the stored record.
func (h *MoveHistory) Add(m Move, player Color) MoveRecord {
	rec := MoveRecord{
		Move:      m,
		Player:    player,
		Number:    (h.base+len(h.records))/2 + 1,
		Capture:   m.Capture,
		Check:     m.Check,
		Checkmate: m.Checkmate,
		Timestamp: h.now(),
		Notation:  Notation(m),
	}
	h.records = append(h.records, rec)
	return rec
}

// Last returns the most recent record.
func (h *MoveHistory) Last() (MoveRecord, bool) {
	if len(h.records) == 0 {
		return MoveRecord{}, false
	}
	return h.records[len(h.records)-1], true
}

// Records returns a copy of the log in play order.
func (h *MoveHistory) Records() []MoveRecord {
	return append([]MoveRecord(nil), h.records...)
}

// Notations returns the notation of every record in play order.
func (h *MoveHistory) Notations() []string {
	out := make([]string, len(h.records))
	for i, r := range h.records {
		out[i] = r.Notation
	}
	return out
}

// Len is the number of plies recorded.
func (h *MoveHistory) Len() int { return len(h.records) }

// Truncate keeps the first n records and returns the ones dropped.
func (h *MoveHistory) Truncate(n int) []MoveRecord {
	if n < 0 {
		n = 0
	}
	if n >= len(h.records) {
		return nil
	}
	dropped := append([]MoveRecord(nil), h.records[n:]...)
	h.records = h.records[:n]
	return dropped
}

// Restore appends previously truncated records back onto the log.
func (h *MoveHistory) Restore(records []MoveRecord) {
	h.records = append(h.records, records...)
}

// Clear empties the log for a new game.
func (h *MoveHistory) Clear() {
	h.Reset(0)
}

// Reset empties the log; the next record is ply base of the game.
func (h *MoveHistory) Reset(base int) {
	h.records = nil
	if base < 0 {
		base = 0
	}
	h.base = base
}

// Base is the number of plies played before the first record.
func (h *MoveHistory) Base() int { return h.base }

// FormatMoves renders records one move number per line: "1. e2-e4 e7-e5".
// A line that opens with black's ply uses "N..." in place of white's move.
func FormatMoves(records []MoveRecord) string {
	var b strings.Builder
	for i, r := range records {
		paired := i > 0 && r.Player == Black &&
			records[i-1].Player == White && records[i-1].Number == r.Number
		if paired {
			b.WriteByte(' ')
			b.WriteString(r.Notation)
			continue
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		if r.Player == White {
			fmt.Fprintf(&b, "%d. %s", r.Number, r.Notation)
		} else {
			fmt.Fprintf(&b, "%d... %s", r.Number, r.Notation)
		}
	}
	return b.String()
}
