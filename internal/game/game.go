// Package game ties the rules engine, turn sequencing and snapshot history
// into one playable session.
package game

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/park285/chess-rules/internal/archive"
	"github.com/park285/chess-rules/internal/chess"
	"github.com/park285/chess-rules/internal/domain"
	"github.com/park285/chess-rules/internal/msgcat"
	"github.com/park285/chess-rules/internal/obslog"
	"github.com/park285/chess-rules/internal/statehistory"
	"go.uber.org/zap"
)

type Options struct {
	GameID     string
	Mode       Mode
	Difficulty Difficulty
	HumanColor chess.Color
	WhiteName  string
	BlackName  string

	// Board and ToMove start the game from a custom position.
	Board  *chess.Board
	ToMove chess.Color

	HistoryLimit int
	Autosave     statehistory.Autosaver
	Archive      archive.Repository
	Chooser      chess.PromotionChooser
	Castling     chess.CastlingValidator
	Messages     *msgcat.Catalog
	Logger       *zap.Logger
	Now          func() time.Time
}

// Game is one session. Methods are serialized by an internal mutex, so a
// Game may be shared, but legality work always runs against its own board.
type Game struct {
	mu sync.Mutex

	id         string
	mode       Mode
	difficulty Difficulty
	humanColor chess.Color
	white      *chess.Player
	black      *chess.Player

	board  *chess.Board
	turns  *chess.TurnManager
	ep     *chess.EnPassantTracker
	moves  *chess.MoveHistory
	mover  *chess.Mover
	states *statehistory.Manager

	archive  archive.Repository
	castling chess.CastlingValidator
	msgs     *msgcat.Catalog
	base     *zap.Logger
	logger   *zap.Logger
	now      func() time.Time

	result    Result
	startedAt time.Time
	// move-log segments removed by Undo, most recent last
	undone [][]chess.MoveRecord
	// ply at which the move log starts; non-zero after Resume
	logBase int
}

// New starts a game and records its opening snapshot. The opening position is
// not autosaved, so a previous autosave stays available to Resume.
func New(ctx context.Context, opts Options) (*Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Mode == "" {
		opts.Mode = ModeHumanVsHuman
	}
	if _, err := ParseMode(string(opts.Mode)); err != nil {
		return nil, err
	}
	if opts.Difficulty == "" {
		opts.Difficulty = DifficultyMedium
	}
	if strings.TrimSpace(opts.GameID) == "" {
		opts.GameID = uuid.NewString()
	}
	if opts.WhiteName == "" {
		opts.WhiteName = "White"
	}
	if opts.BlackName == "" {
		opts.BlackName = "Black"
	}
	if opts.Castling == nil {
		opts.Castling = chess.StandardCastlingValidator{}
	}
	if opts.Messages == nil {
		opts.Messages = msgcat.Default()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	logger := obslog.WithGame(opts.Logger, opts.GameID)
	g := &Game{
		id:         opts.GameID,
		mode:       opts.Mode,
		difficulty: opts.Difficulty,
		humanColor: opts.HumanColor,
		white:      &chess.Player{Name: opts.WhiteName, Color: chess.White},
		black:      &chess.Player{Name: opts.BlackName, Color: chess.Black},
		moves:      chess.NewMoveHistory(),
		archive:    opts.Archive,
		castling:   opts.Castling,
		msgs:       opts.Messages,
		base:       opts.Logger,
		logger:     logger,
		now:        opts.Now,
		result:     ResultOngoing,
		startedAt:  opts.Now(),
	}
	g.board = chess.NewStandardBoard()
	if opts.Board != nil {
		g.board = opts.Board.Clone()
	}
	g.states = statehistory.New(opts.HistoryLimit, opts.Autosave, logger)
	g.turns = chess.NewTurnManager(g.states, g.white, g.black)
	g.turns.Restore(opts.ToMove, 0)
	g.ep = chess.NewEnPassantTracker(g.turns)
	g.mover = chess.NewMover(g.board, g.ep, g.moves, opts.Chooser, logger)

	g.updateResult(nil)
	g.states.Reset(g.snapshotLocked())
	logger.Info("game_started",
		zap.String("mode", string(g.mode)),
		zap.String("white", g.white.Name),
		zap.String("black", g.black.Name),
	)
	return g, nil
}

func (g *Game) ID() string { return g.id }

// Difficulty is the computer opponent's configured strength.
func (g *Game) Difficulty() Difficulty {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.difficulty
}

// Mode reports who plays whom.
func (g *Game) Mode() Mode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mode
}

// HumanColor is the side a person plays in human_vs_computer mode.
func (g *Game) HumanColor() chess.Color {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.humanColor
}

// SetChooser replaces the promotion chooser, e.g. when a UI attaches.
func (g *Game) SetChooser(c chess.PromotionChooser) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mover.SetChooser(c)
}

// ValidateMove returns "" when from->to is legal for the side to move and a
// human-readable reason otherwise.
func (g *Game) ValidateMove(from, to chess.Location) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.validateLocked(from, to)
}

func (g *Game) validateLocked(from, to chess.Location) string {
	if g.result.Finished() {
		return g.msgs.Text("move.game_over", map[string]any{"Result": string(g.result)})
	}
	for _, sq := range []chess.Location{from, to} {
		if !sq.Valid() {
			return g.msgs.Text("move.out_of_bounds", map[string]any{"Square": sq.String()})
		}
	}
	p := g.board.At(from)
	if p.IsEmpty() {
		return g.msgs.Text("move.no_piece", map[string]any{"Square": from.String()})
	}
	turn := g.turns.Current()
	if p.Color != turn {
		return g.msgs.Text("move.wrong_turn", map[string]any{
			"Piece": p.Kind.String(), "Square": from.String(), "Owner": p.Color.String(), "Turn": turn.String(),
		})
	}

	shaped := false
	candidates := chess.PseudoMoves(g.board, from)
	if target := g.ep.Target(); target != nil {
		candidates = append(candidates, chess.EnPassantMoves(g.board, from, *target)...)
	}
	for _, m := range candidates {
		if m.To == to {
			shaped = true
			break
		}
	}
	if !shaped {
		return g.msgs.Text("move.illegal", map[string]any{"Piece": p.Kind.String(), "From": from.String(), "To": to.String()})
	}
	if !chess.IsLegal(g.board, from, to, turn, g.ep.Target()) {
		return g.msgs.Text("move.leaves_king_in_check", map[string]any{"From": from.String(), "To": to.String(), "Turn": turn.String()})
	}
	return ""
}

// Play validates and executes from->to. A rejected or cancelled move returns
// a nil record and a reason; err is reserved for infrastructure failures.
func (g *Game) Play(ctx context.Context, from, to chess.Location) (*chess.MoveRecord, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if reason := g.validateLocked(from, to); reason != "" {
		return nil, reason, nil
	}
	outcome, rec, err := g.mover.Execute(from, to)
	if err != nil {
		return nil, "", err
	}
	switch outcome {
	case chess.PromotionCancelled:
		return nil, g.msgs.Text("move.promotion_cancelled", nil), nil
	case chess.IgnoredNoPiece:
		return nil, g.msgs.Text("move.no_piece", map[string]any{"Square": from.String()}), nil
	}
	g.afterMove(ctx, rec)
	return rec, "", nil
}

// Castle castles the side to move when the castling validator allows it.
func (g *Game) Castle(ctx context.Context, side chess.CastleSide) (*chess.MoveRecord, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.result.Finished() {
		return nil, g.msgs.Text("move.game_over", map[string]any{"Result": string(g.result)}), nil
	}
	turn := g.turns.Current()
	if !g.castling.CanCastle(g.board, turn, side) {
		return nil, g.msgs.Text("castle.not_allowed", map[string]any{"Turn": turn.String(), "Side": side.String()}), nil
	}
	rec, err := g.mover.ExecuteCastle(turn, side)
	if err != nil {
		return nil, "", fmt.Errorf("castle: %w", err)
	}
	g.afterMove(ctx, rec)
	return rec, "", nil
}

func (g *Game) afterMove(ctx context.Context, rec *chess.MoveRecord) {
	g.turns.SwitchTurns()
	g.undone = nil
	g.updateResult(rec)
	_ = g.states.RecordState(ctx, g.snapshotLocked())

	g.logger.Info("move_played", obslog.MoveFields(g.turns.Ply(), rec.Player.String(), rec.Notation)...)
	if g.result.Finished() {
		g.finish(ctx)
	}
}

// updateResult derives the result for the side now to move.
func (g *Game) updateResult(rec *chess.MoveRecord) {
	toMove := g.turns.Current()
	switch {
	case rec != nil && rec.Checkmate:
		g.result = winner(rec.Player)
	case chess.IsCheckmate(g.board, toMove, g.ep.Target()):
		g.result = winner(toMove.Opponent())
	case chess.IsStalemate(g.board, toMove, g.ep.Target()):
		g.result = ResultStalemate
	default:
		g.result = ResultOngoing
	}
}

func (g *Game) finish(ctx context.Context) {
	g.logger.Info("game_finished", obslog.ResultFields(string(g.result), g.turns.Ply())...)
	if err := g.states.CleanupAutosave(ctx); err != nil {
		g.logger.Warn("autosave_cleanup_error", zap.Error(err))
	}
	if g.archive == nil {
		return
	}
	rec := &domain.GameRecord{
		GameID:     g.id,
		Mode:       string(g.mode),
		Difficulty: string(g.difficulty),
		WhiteName:  g.white.Name,
		BlackName:  g.black.Name,
		Result:     string(g.result),
		Moves:      g.moves.Notations(),
		StartedAt:  g.startedAt,
		EndedAt:    g.now(),
	}
	if _, err := g.archive.InsertGame(ctx, rec); err != nil {
		g.logger.Error("game_archive_error", zap.Error(err))
		return
	}
	g.logger.Info("game_archived", zap.Int("moves", len(rec.Moves)))
}

// Undo returns to the previous snapshot. A non-empty reason means nothing
// changed. A finished game is already archived, so it cannot be taken back.
func (g *Game) Undo() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.result.Finished() {
		return g.msgs.Text("move.game_over", map[string]any{"Result": string(g.result)})
	}
	snap, ok := g.states.Rollback()
	if !ok {
		return g.msgs.Text("undo.unavailable", nil)
	}
	if err := g.restoreLocked(snap); err != nil {
		g.logger.Error("undo_restore_error", zap.Error(err))
		return g.msgs.Text("undo.unavailable", nil)
	}
	g.undone = append(g.undone, g.moves.Truncate(snap.Ply()-g.logBase))
	return ""
}

// Redo re-applies the last undone snapshot.
func (g *Game) Redo() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.result.Finished() {
		return g.msgs.Text("move.game_over", map[string]any{"Result": string(g.result)})
	}
	snap, ok := g.states.Redo()
	if !ok {
		return g.msgs.Text("redo.unavailable", nil)
	}
	if err := g.restoreLocked(snap); err != nil {
		g.logger.Error("redo_restore_error", zap.Error(err))
		return g.msgs.Text("redo.unavailable", nil)
	}
	if n := len(g.undone); n > 0 {
		g.moves.Restore(g.undone[n-1])
		g.undone = g.undone[:n-1]
	}
	return ""
}

// Resume replaces the session with the autosaved snapshot, reporting false
// when none exists. The move log is not part of a snapshot; it starts empty
// and numbers moves from the resumed ply.
func (g *Game) Resume(ctx context.Context) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap, err := g.states.LoadAutosave(ctx)
	if err != nil {
		return false, err
	}
	if snap == nil {
		return false, nil
	}
	if err := g.restoreLocked(*snap); err != nil {
		return false, err
	}
	sc := snap.Context()
	if sc.GameID != "" {
		g.id = sc.GameID
		g.logger = obslog.WithGame(g.base, sc.GameID)
	}
	if m, err := ParseMode(sc.Mode); err == nil {
		g.mode = m
	}
	if sc.Difficulty != "" {
		g.difficulty = Difficulty(sc.Difficulty)
	}
	if c, err := chess.ParseColor(sc.HumanColor); err == nil {
		g.humanColor = c
	}
	g.white.Name, g.black.Name = sc.WhiteName, sc.BlackName
	g.moves.Reset(snap.Ply())
	g.undone = nil
	g.logBase = snap.Ply()
	g.states.Reset(*snap)
	g.logger.Info("game_resumed", zap.Int(obslog.KeyPly, snap.Ply()))
	return true, nil
}

func (g *Game) restoreLocked(snap domain.GameSnapshot) error {
	restored, err := chess.RestoreBoard(snap)
	if err != nil {
		return err
	}
	sc := snap.Context()
	current, err := chess.ParseColor(sc.CurrentPlayer)
	if err != nil {
		return fmt.Errorf("restore current player: %w", err)
	}
	result, err := ParseResult(sc.Result)
	if err != nil {
		return err
	}
	g.board.Load(restored)
	g.turns.Restore(current, snap.Ply())
	if err := chess.RestoreEnPassant(snap, g.ep); err != nil {
		return err
	}
	g.result = result
	return nil
}

// Snapshot captures the current state.
func (g *Game) Snapshot() domain.GameSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *Game) snapshotLocked() domain.GameSnapshot {
	ctx := domain.GameContext{
		GameID:        g.id,
		Mode:          string(g.mode),
		CurrentPlayer: g.turns.Current().String(),
		HumanColor:    g.humanColor.String(),
		Result:        string(g.result),
		Difficulty:    string(g.difficulty),
		WhiteName:     g.white.Name,
		BlackName:     g.black.Name,
	}
	return chess.CaptureSnapshot(g.board, g.ep, ctx, g.turns.Ply(), g.now())
}

// LegalMoves lists the legal moves of the side-to-move's piece on loc.
func (g *Game) LegalMoves(loc chess.Location) []chess.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.result.Finished() {
		return nil
	}
	return chess.LegalMoves(g.board, loc, g.turns.Current(), g.ep.Target())
}

// AllLegalMoves lists every legal move of the side to move.
func (g *Game) AllLegalMoves() []chess.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.result.Finished() {
		return nil
	}
	return chess.AllLegalMoves(g.board, g.turns.Current(), g.ep.Target())
}

// CanCastle reports whether the side to move may castle toward side.
func (g *Game) CanCastle(side chess.CastleSide) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.result.Finished() && g.castling.CanCastle(g.board, g.turns.Current(), side)
}

// Board returns a copy of the current board.
func (g *Game) Board() *chess.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Clone()
}

// History returns the move log.
func (g *Game) History() []chess.MoveRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.moves.Records()
}

func (g *Game) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	turn := g.turns.Current()
	return Status{
		Turn:    turn,
		Ply:     g.turns.Ply(),
		InCheck: chess.KingInCheck(g.board, turn),
		Result:  g.result,
		CanUndo: g.states.CanRollback(),
		CanRedo: g.states.CanRedo(),
	}
}

// Players returns the white and black participants.
func (g *Game) Players() (white, black chess.Player) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return *g.white, *g.black
}
