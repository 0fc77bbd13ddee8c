package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type AppConfig struct {
	RedisURL    string
	DatabaseURL string

	AutosaveKey    string
	AutosaveTTLSec int

	HistoryLimit int
	GameMode     string
	Difficulty   string
	HumanColor   string
	WhiteName    string
	BlackName    string
	MessagesDir  string

	SelfPlayMaxPly int
	SelfPlaySeed   int64
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		AutosaveKey:    "chess:autosave",
		AutosaveTTLSec: 86400,
		HistoryLimit:   10,
		GameMode:       "human_vs_human",
		Difficulty:     "medium",
		HumanColor:     "white",
		WhiteName:      "White",
		BlackName:      "Black",
		SelfPlayMaxPly: 200,
		SelfPlaySeed:   1,
	}

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.MessagesDir = strings.TrimSpace(os.Getenv("CHESS_MESSAGES_DIR"))

	if v := strings.TrimSpace(os.Getenv("CHESS_AUTOSAVE_KEY")); v != "" {
		cfg.AutosaveKey = v
	}
	if v := strings.TrimSpace(os.Getenv("CHESS_AUTOSAVE_TTL")); v != "" { // seconds
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.AutosaveTTLSec = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("CHESS_HISTORY_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryLimit = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("CHESS_GAME_MODE")); v != "" {
		cfg.GameMode = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("CHESS_DIFFICULTY")); v != "" {
		cfg.Difficulty = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("CHESS_HUMAN_COLOR")); v != "" {
		cfg.HumanColor = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("CHESS_WHITE_NAME")); v != "" {
		cfg.WhiteName = v
	}
	if v := strings.TrimSpace(os.Getenv("CHESS_BLACK_NAME")); v != "" {
		cfg.BlackName = v
	}
	if v := strings.TrimSpace(os.Getenv("CHESS_SELFPLAY_MAX_PLY")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SelfPlayMaxPly = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("CHESS_SELFPLAY_SEED")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.SelfPlaySeed = n
		}
	}

	switch cfg.GameMode {
	case "human_vs_human", "human_vs_computer":
	default:
		return nil, errors.New("CHESS_GAME_MODE must be human_vs_human or human_vs_computer")
	}
	switch cfg.Difficulty {
	case "easy", "medium", "hard":
	default:
		return nil, errors.New("CHESS_DIFFICULTY must be easy, medium or hard")
	}
	if cfg.HumanColor != "white" && cfg.HumanColor != "black" {
		return nil, errors.New("CHESS_HUMAN_COLOR must be white or black")
	}

	return cfg, nil
}
