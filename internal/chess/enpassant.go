package chess

// PlyClock exposes the authoritative ply counter, owned by the TurnManager.
type PlyClock interface {
	Ply() int
}

// EnPassantTracker remembers the square passed over by the last double pawn
// advance. The opportunity is live only during the ply right after the
// advance; later queries treat it as absent even while it is still stored.
type EnPassantTracker struct {
	clock    PlyClock
	pending  bool
	target   Location
	victim   Location
	validPly int
}

// NewEnPassantTracker binds the tracker to clock.
func NewEnPassantTracker(clock PlyClock) *EnPassantTracker {
	return &EnPassantTracker{clock: clock}
}

// RecordDoubleMove registers a two-square pawn advance from from to to.
func (t *EnPassantTracker) RecordDoubleMove(from, to Location) {
	t.pending = true
	t.target = Location{Row: (from.Row + to.Row) / 2, Col: from.Col}
	t.victim = to
	t.validPly = t.clock.Ply() + 1
}

// Clear drops any stored opportunity.
func (t *EnPassantTracker) Clear() {
	t.pending = false
}

// Restore reinstates an opportunity taken from a snapshot. It is live only
// while the clock reads validPly.
func (t *EnPassantTracker) Restore(target, victim Location, validPly int) {
	t.pending = true
	t.target = target
	t.victim = victim
	t.validPly = validPly
}

// State returns the live opportunity with the ply it is valid for.
func (t *EnPassantTracker) State() (target, victim Location, validPly int, ok bool) {
	if !t.live() {
		return Location{}, Location{}, 0, false
	}
	return t.target, t.victim, t.validPly, true
}

// Target returns the live en passant target square, or nil.
func (t *EnPassantTracker) Target() *Location {
	if !t.live() {
		return nil
	}
	target := t.target
	return &target
}

// Victim returns the square of the pawn that may be taken en passant.
func (t *EnPassantTracker) Victim() (Location, bool) {
	if !t.live() {
		return Location{}, false
	}
	return t.victim, true
}

// IsTarget reports whether sq is the live en passant target.
func (t *EnPassantTracker) IsTarget(sq Location) bool {
	return t.live() && t.target == sq
}

func (t *EnPassantTracker) live() bool {
	return t.pending && t.clock.Ply() == t.validPly
}
