package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/park285/chess-rules/internal/chess"
	appcfg "github.com/park285/chess-rules/internal/config"
	"github.com/park285/chess-rules/internal/gamebuilder"
	"github.com/park285/chess-rules/internal/obslog"
	"github.com/park285/chess-rules/internal/opponent"
	"go.uber.org/zap"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	deps, err := gamebuilder.New(cfg, logger)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}
	defer deps.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := deps.NewGame(ctx)
	if err != nil {
		log.Fatalf("new game: %v", err)
	}
	if resumed, err := g.Resume(ctx); err != nil {
		logger.Warn("resume_error", zap.Error(err))
	} else if resumed {
		obslog.ForGame(g.ID()).Info("resumed_from_autosave", zap.Int(obslog.KeyPly, g.Status().Ply))
	}

	rng := rand.New(rand.NewSource(cfg.SelfPlaySeed))
	for ply := 0; ply < cfg.SelfPlayMaxPly; ply++ {
		if ctx.Err() != nil {
			logger.Info("selfplay_interrupted", zap.Int("ply", ply))
			break
		}
		if g.Status().Result.Finished() {
			break
		}
		if _, err := opponent.Play(ctx, g, rng); err != nil {
			logger.Error("selfplay_move_error", zap.Error(err))
			break
		}
	}

	st := g.Status()
	fmt.Println(g.Board().String())
	fmt.Println(chess.FormatMoves(g.History()))
	fmt.Printf("result: %s after %d plies\n", st.Result, st.Ply)
}
