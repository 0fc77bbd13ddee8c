package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/park285/chess-rules/internal/chess"
)

var (
	ErrUnknownMode   = errors.New("unknown game mode")
	ErrUnknownResult = errors.New("unknown game result")
)

// Mode is who plays whom.
type Mode string

const (
	ModeHumanVsHuman    Mode = "human_vs_human"
	ModeHumanVsComputer Mode = "human_vs_computer"
)

// ParseMode accepts the Mode names.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeHumanVsHuman, ModeHumanVsComputer:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Difficulty is the computer opponent's strength, carried for the search collaborator.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Result is the state of the game.
type Result string

const (
	ResultOngoing   Result = "ongoing"
	ResultWhiteWins Result = "white_wins"
	ResultBlackWins Result = "black_wins"
	ResultStalemate Result = "stalemate"
)

// Finished reports whether no more moves may be played.
func (r Result) Finished() bool { return r != ResultOngoing && r != "" }

func winner(c chess.Color) Result {
	if c == chess.White {
		return ResultWhiteWins
	}
	return ResultBlackWins
}

// ParseResult accepts the Result names; blank means ongoing.
func ParseResult(s string) (Result, error) {
	switch r := Result(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return ResultOngoing, nil
	case ResultOngoing, ResultWhiteWins, ResultBlackWins, ResultStalemate:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownResult, s)
}

// Status is a read-only summary of the game.
type Status struct {
	Turn    chess.Color
	Ply     int
	InCheck bool
	Result  Result
	CanUndo bool
	CanRedo bool
}
