package gamebuilder

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/park285/chess-rules/internal/archive"
	"github.com/park285/chess-rules/internal/autosave"
	"github.com/park285/chess-rules/internal/chess"
	"github.com/park285/chess-rules/internal/config"
	"github.com/park285/chess-rules/internal/game"
	"github.com/park285/chess-rules/internal/msgcat"
	"github.com/park285/chess-rules/internal/statehistory"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Deps struct {
	Config   *config.AppConfig
	Messages *msgcat.Catalog
	Autosave statehistory.Autosaver
	Archive  archive.Repository
	Logger   *zap.Logger

	rdb *redis.Client
	db  *sql.DB
}

// New builds the collaborators named by cfg. Redis and Postgres are optional;
// without them the in-memory autosave store and archive are used.
func New(cfg *config.AppConfig, logger *zap.Logger) (*Deps, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	msgs, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	deps := &Deps{Config: cfg, Messages: msgs, Logger: logger}

	if strings.TrimSpace(cfg.RedisURL) != "" {
		opts, perr := autosave.ParseRedisURL(cfg.RedisURL)
		if perr != nil {
			return nil, fmt.Errorf("parse redis url: %w", perr)
		}
		rdb := redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		deps.rdb = rdb
		deps.Autosave = autosave.NewRedisStore(rdb, cfg.AutosaveKey, time.Duration(cfg.AutosaveTTLSec)*time.Second)
		logger.Info("autosave_backend", zap.String("backend", "redis"), zap.String("key", cfg.AutosaveKey))
	} else {
		deps.Autosave = autosave.NewMemoryStore()
		logger.Info("autosave_backend", zap.String("backend", "memory"))
	}

	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		db, err := archive.Open(cfg.DatabaseURL)
		if err != nil {
			deps.Close()
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := archive.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			deps.Close()
			return nil, err
		}
		deps.db = db
		deps.Archive = archive.NewRepository(db)
		logger.Info("archive_backend", zap.String("backend", "postgres"))
	} else {
		deps.Archive = archive.NewMemoryRepository()
		logger.Info("archive_backend", zap.String("backend", "memory"))
	}

	return deps, nil
}

// GameOptions turns the configuration into options for game.New.
func (d *Deps) GameOptions() (game.Options, error) {
	mode, err := game.ParseMode(d.Config.GameMode)
	if err != nil {
		return game.Options{}, err
	}
	human, err := chess.ParseColor(d.Config.HumanColor)
	if err != nil {
		return game.Options{}, err
	}
	return game.Options{
		Mode:         mode,
		Difficulty:   game.Difficulty(d.Config.Difficulty),
		HumanColor:   human,
		WhiteName:    d.Config.WhiteName,
		BlackName:    d.Config.BlackName,
		HistoryLimit: d.Config.HistoryLimit,
		Autosave:     d.Autosave,
		Archive:      d.Archive,
		Messages:     d.Messages,
		Logger:       d.Logger,
	}, nil
}

// NewGame starts a game wired to the built collaborators.
func (d *Deps) NewGame(ctx context.Context) (*game.Game, error) {
	opts, err := d.GameOptions()
	if err != nil {
		return nil, err
	}
	return game.New(ctx, opts)
}

func (d *Deps) Close() {
	if d == nil {
		return
	}
	if d.rdb != nil {
		_ = d.rdb.Close()
	}
	if d.db != nil {
		_ = d.db.Close()
	}
}
