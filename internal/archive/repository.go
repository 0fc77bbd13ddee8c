package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/park285/chess-rules/internal/domain"
)

var ErrDuplicateGame = errors.New("chess game already archived")

// Repository stores finished games.
type Repository interface {
	InsertGame(ctx context.Context, game *domain.GameRecord) (int64, error)
	GetRecentGames(ctx context.Context, limit int) ([]*domain.GameRecord, error)
	GetGameByUUID(ctx context.Context, gameID string) (*domain.GameRecord, error)
}

// Schema creates the archive table.
const Schema = `
CREATE TABLE IF NOT EXISTS chess_games (
	id          BIGSERIAL PRIMARY KEY,
	game_id     TEXT NOT NULL UNIQUE,
	mode        TEXT NOT NULL,
	difficulty  TEXT NOT NULL,
	white_name  TEXT NOT NULL,
	black_name  TEXT NOT NULL,
	result      TEXT NOT NULL,
	moves       JSONB NOT NULL,
	started_at  TIMESTAMPTZ NOT NULL,
	ended_at    TIMESTAMPTZ NOT NULL,
	duration_ms BIGINT NOT NULL DEFAULT 0
)`

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Open connects to postgres and verifies the connection.
func Open(databaseURL string) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the archive table when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create chess_games: %w", err)
	}
	return nil
}

func (r *repository) InsertGame(ctx context.Context, game *domain.GameRecord) (int64, error) {
	if game == nil {
		return 0, fmt.Errorf("nil chess game payload")
	}
	moves, err := json.Marshal(game.Moves)
	if err != nil {
		return 0, fmt.Errorf("marshal moves: %w", err)
	}
	duration := game.EndedAt.Sub(game.StartedAt).Milliseconds()
	if duration < 0 {
		duration = 0
	}

	const query = `
		INSERT INTO chess_games (
			game_id,
			mode,
			difficulty,
			white_name,
			black_name,
			result,
			moves,
			started_at,
			ended_at,
			duration_ms
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (game_id) DO NOTHING
		RETURNING id`

	var id int64
	err = r.db.QueryRowContext(ctx, query,
		game.GameID,
		game.Mode,
		game.Difficulty,
		game.WhiteName,
		game.BlackName,
		game.Result,
		string(moves),
		game.StartedAt,
		game.EndedAt,
		duration,
	).Scan(&id)
	if err := insertError(err); err != nil {
		return 0, err
	}
	return id, nil
}

// insertError maps the RETURNING scan error. ON CONFLICT DO NOTHING returns
// no row, which means the game_id is already archived.
func insertError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrDuplicateGame
	default:
		return fmt.Errorf("insert chess game: %w", err)
	}
}

const selectColumns = `
			id,
			game_id,
			mode,
			difficulty,
			white_name,
			black_name,
			result,
			moves,
			started_at,
			ended_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*domain.GameRecord, error) {
	var (
		game      domain.GameRecord
		movesJSON []byte
	)
	if err := row.Scan(
		&game.ID,
		&game.GameID,
		&game.Mode,
		&game.Difficulty,
		&game.WhiteName,
		&game.BlackName,
		&game.Result,
		&movesJSON,
		&game.StartedAt,
		&game.EndedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(movesJSON, &game.Moves); err != nil {
		return nil, fmt.Errorf("unmarshal moves: %w", err)
	}
	return &game, nil
}

func (r *repository) GetRecentGames(ctx context.Context, limit int) ([]*domain.GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT` + selectColumns + `
		FROM chess_games
		ORDER BY ended_at DESC, id DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("select recent chess games: %w", err)
	}
	defer rows.Close()

	var games []*domain.GameRecord
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chess game: %w", err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chess games: %w", err)
	}
	return games, nil
}

func (r *repository) GetGameByUUID(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	query := `SELECT` + selectColumns + `
		FROM chess_games
		WHERE game_id = $1
		LIMIT 1`

	game, err := scanGame(r.db.QueryRowContext(ctx, query, strings.TrimSpace(gameID)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select chess game: %w", err)
	}
	return game, nil
}
