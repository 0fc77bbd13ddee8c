package chess

// Player is a participant whose HasTurn flag follows the turn manager.
type Player struct {
	Name    string
	Color   Color
	HasTurn bool
}

// RedoClearer is told to drop pending redo states whenever a real move is made.
type RedoClearer interface {
	ClearRedoStack()
}

// TurnManager tracks the side to move and owns the ply counter that the
// en passant tracker reads.
type TurnManager struct {
	current Color
	ply     int
	players []*Player
	redo    RedoClearer
}

// NewTurnManager starts with white to move at ply 0.
func NewTurnManager(redo RedoClearer, players ...*Player) *TurnManager {
	t := &TurnManager{current: White, redo: redo}
	for _, p := range players {
		t.Link(p)
	}
	return t
}

// Link attaches p so its HasTurn flag is kept in sync.
func (t *TurnManager) Link(p *Player) {
	if p == nil {
		return
	}
	p.HasTurn = p.Color == t.current
	t.players = append(t.players, p)
}

// Current is the side to move.
func (t *TurnManager) Current() Color { return t.current }

// Ply is the number of turn switches since the game started.
func (t *TurnManager) Ply() int { return t.ply }

// SwitchTurns hands the move to the other side, advances the ply counter and
// invalidates any pending redo.
func (t *TurnManager) SwitchTurns() {
	t.current = t.current.Opponent()
	t.ply++
	t.syncPlayers()
	if t.redo != nil {
		t.redo.ClearRedoStack()
	}
}

// NextTurn advances the ply counter without changing sides.
func (t *TurnManager) NextTurn() {
	t.ply++
}

// Restore sets the side to move and ply, as after loading a snapshot. Redo
// state is left alone.
func (t *TurnManager) Restore(current Color, ply int) {
	t.current = current
	t.ply = ply
	t.syncPlayers()
}

func (t *TurnManager) syncPlayers() {
	for _, p := range t.players {
		p.HasTurn = p.Color == t.current
	}
}
