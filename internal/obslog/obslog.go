// Package obslog holds the process logger and the field helpers every chess
// component logs with, so game events share one set of keys.
package obslog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Process-wide logger; a no-op until InitFromEnv or SetLogger runs.
var globalLogger = zap.NewNop()

// L returns the global logger.
func L() *zap.Logger { return globalLogger }

// SetLogger replaces the global logger; nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	globalLogger = l
}

// Field keys shared by the game, mover and history logs.
const (
	KeyGameID   = "game_id"
	KeyPly      = "ply"
	KeyPlayer   = "player"
	KeyNotation = "notation"
	KeyResult   = "result"
)

// ForGame returns the global logger tagged with a game id.
func ForGame(gameID string) *zap.Logger {
	return WithGame(globalLogger, gameID)
}

// WithGame tags base with a game id; a nil base means the global logger.
func WithGame(base *zap.Logger, gameID string) *zap.Logger {
	if base == nil {
		base = globalLogger
	}
	return base.With(zap.String(KeyGameID, gameID))
}

// MoveFields describes one played ply.
func MoveFields(ply int, player, notation string) []zap.Field {
	return []zap.Field{
		zap.Int(KeyPly, ply),
		zap.String(KeyPlayer, player),
		zap.String(KeyNotation, notation),
	}
}

// ResultFields describes how a game ended.
func ResultFields(result string, ply int) []zap.Field {
	return []zap.Field{zap.String(KeyResult, result), zap.Int(KeyPly, ply)}
}

// Settings selects where and how the logger writes.
type Settings struct {
	Level   zapcore.Level
	Format  string // legacy, json or console
	Console bool
	File    string // empty disables file output
	Caller  bool
}

// SettingsFromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_TO_CONSOLE, LOG_TO_FILE,
// LOG_FILE and LOG_CALLER.
func SettingsFromEnv() Settings {
	s := Settings{
		Level:   parseLevel(getenvDefault("LOG_LEVEL", "info")),
		Format:  strings.ToLower(strings.TrimSpace(getenvDefault("LOG_FORMAT", "legacy"))),
		Console: envBool("LOG_TO_CONSOLE", true),
		Caller:  envBool("LOG_CALLER", false),
	}
	if envBool("LOG_TO_FILE", false) {
		s.File = strings.TrimSpace(getenvDefault("LOG_FILE", filepath.Join("logs", "chess.log")))
	}
	return s
}

// Build constructs a logger from s. With no sink selected it falls back to a
// development console on stdout.
func Build(s Settings) (*zap.Logger, error) {
	switch s.Format {
	case "legacy", "json", "console":
	default:
		s.Format = "legacy"
	}

	var cores []zapcore.Core
	if s.Console {
		cores = append(cores, zapcore.NewCore(encoderFor(s.Format), zapcore.AddSync(os.Stdout), s.Level))
	}
	if s.File != "" {
		if err := ensureDir(filepath.Dir(s.File)); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(s.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(encoderFor(s.Format), zapcore.AddSync(f), s.Level))
	}
	if len(cores) == 0 {
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), s.Level))
	}

	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if s.Caller || s.Format == "legacy" {
		opts = append(opts, zap.AddCaller())
	}
	return zap.New(zapcore.NewTee(cores...), opts...), nil
}

// InitFromEnv builds the global logger from LOG_* environment variables.
func InitFromEnv() error {
	l, err := Build(SettingsFromEnv())
	if err != nil {
		return err
	}
	globalLogger = l
	return nil
}

func encoderFor(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	switch format {
	case "json":
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(cfg)
	case "console":
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(cfg)
	default:
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.ConsoleSeparator = " | "
		return zapcore.NewConsoleEncoder(cfg)
	}
}

func ensureDir(dir string) error {
	if strings.TrimSpace(dir) == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLevel(s string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err == nil {
		return lvl
	}
	if strings.EqualFold(strings.TrimSpace(s), "warning") {
		return zapcore.WarnLevel
	}
	return zapcore.InfoLevel
}

func envBool(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return strings.EqualFold(v, "true")
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
