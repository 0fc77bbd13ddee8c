package chess

import (
	"fmt"

	"github.com/park285/chess-rules/internal/obslog"
	"go.uber.org/zap"
)

// Outcome tells what Execute did with a requested move.
type Outcome uint8

const (
	Applied Outcome = iota
	IgnoredNoPiece
	PromotionCancelled
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case IgnoredNoPiece:
		return "ignored_no_piece"
	case PromotionCancelled:
		return "promotion_cancelled"
	}
	return "unknown"
}

// Mover applies complete moves to a board: captures, en passant, promotion,
// check detection and the move log.
type Mover struct {
	board     *Board
	enPassant *EnPassantTracker
	history   *MoveHistory
	chooser   PromotionChooser
	logger    *zap.Logger
}

// NewMover wires a mover. A nil chooser promotes to a queen; a nil logger logs nothing.
func NewMover(b *Board, ep *EnPassantTracker, history *MoveHistory, chooser PromotionChooser, logger *zap.Logger) *Mover {
	if chooser == nil {
		chooser = AutoQueen
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mover{board: b, enPassant: ep, history: history, chooser: chooser, logger: logger}
}

// SetChooser replaces the promotion chooser.
func (m *Mover) SetChooser(c PromotionChooser) {
	if c == nil {
		c = AutoQueen
	}
	m.chooser = c
}

// Execute moves the piece on from to to. It does not check legality; callers
// validate first. A missing piece or a cancelled promotion leaves the board
// untouched and returns a nil record.
func (m *Mover) Execute(from, to Location) (Outcome, *MoveRecord, error) {
	if !from.Valid() || !to.Valid() {
		return IgnoredNoPiece, nil, fmt.Errorf("execute %s-%s: %w", from, to, ErrOutOfBounds)
	}
	b := m.board
	piece := b.At(from)
	if piece.IsEmpty() {
		m.logger.Warn("move_ignored_no_piece", zap.String("from", from.String()), zap.String("to", to.String()))
		return IgnoredNoPiece, nil, nil
	}

	mv := Move{From: from, To: to, Piece: piece}
	captured := b.At(to)
	var victimSq Location
	if !captured.IsEmpty() {
		mv.Capture = true
		mv.Captured = captured
	} else if piece.Kind == Pawn && m.enPassant != nil && m.enPassant.IsTarget(to) {
		victimSq = EnPassantVictim(to, piece.Color)
		captured, _ = b.Remove(victimSq)
		mv.Capture = true
		mv.Captured = captured
		mv.EnPassant = true
	}

	b.relocate(from, to)
	b.cells[to.Row][to.Col].Moved = true

	if NeedsPromotion(piece, to) {
		kind, ok := m.chooser.ChoosePromotion(piece.Color)
		if !ok || !validPromotion(kind) {
			m.revert(from, to, piece, captured, mv.EnPassant, victimSq)
			m.logger.Info("promotion_cancelled", zap.String("from", from.String()), zap.String("to", to.String()))
			return PromotionCancelled, nil, nil
		}
		b.cells[to.Row][to.Col] = Piece{Kind: kind, Color: piece.Color, Moved: true}
		mv.Promotion = kind
	}

	var oppTarget *Location
	if piece.Kind == Pawn && abs(to.Row-from.Row) == 2 {
		if m.enPassant != nil {
			m.enPassant.RecordDoubleMove(from, to)
		}
		passed := Location{Row: (from.Row + to.Row) / 2, Col: from.Col}
		oppTarget = &passed
	} else if m.enPassant != nil {
		m.enPassant.Clear()
	}

	return Applied, m.finish(mv, piece.Color, oppTarget), nil
}

// ExecuteCastle castles for c. Validation belongs to a CastlingValidator.
func (m *Mover) ExecuteCastle(c Color, side CastleSide) (*MoveRecord, error) {
	mv, err := Castle(m.board, c, side)
	if err != nil {
		return nil, err
	}
	if m.enPassant != nil {
		m.enPassant.Clear()
	}
	return m.finish(mv, c, nil), nil
}

func (m *Mover) finish(mv Move, player Color, oppTarget *Location) *MoveRecord {
	opp := player.Opponent()
	mv.Check = KingInCheck(m.board, opp)
	if mv.Check {
		mv.Checkmate = !HasLegalMove(m.board, opp, oppTarget)
	}
	var rec MoveRecord
	if m.history != nil {
		rec = m.history.Add(mv, player)
	} else {
		rec = MoveRecord{Move: mv, Player: player, Capture: mv.Capture, Check: mv.Check, Checkmate: mv.Checkmate, Notation: Notation(mv)}
	}
	m.logger.Debug("move_applied",
		zap.String(obslog.KeyPlayer, player.String()),
		zap.String(obslog.KeyNotation, rec.Notation),
		zap.Bool("check", mv.Check),
		zap.Bool("checkmate", mv.Checkmate),
	)
	return &rec
}

// revert undoes the relocation and capture of a move whose promotion was cancelled.
func (m *Mover) revert(from, to Location, piece, captured Piece, enPassant bool, victimSq Location) {
	b := m.board
	b.cells[from.Row][from.Col] = piece
	if enPassant {
		b.cells[to.Row][to.Col] = NoPiece
		b.cells[victimSq.Row][victimSq.Col] = captured
		return
	}
	b.cells[to.Row][to.Col] = captured
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
