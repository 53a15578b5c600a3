package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/input"
	"github.com/trytobebee/gridsnake/pkg/logger"
	"github.com/trytobebee/gridsnake/pkg/renderer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// The terminal belongs to the board, so logs only go to files.
	log := logger.NewFileOnly(logger.Config{Level: cfg.LogLevel, App: "snake", Dir: cfg.LogDir, File: cfg.LogFile})
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("snake exited", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fmt.Println("\n  Thanks for playing! 👋")
}

func run(cfg config.Config, log *zap.Logger) error {
	sessionID := uuid.NewString()
	log = log.With(zap.String("session", sessionID))

	g, err := game.NewSession(cfg.Settings(), append(cfg.SessionOptions(), game.WithLogger(log))...)
	if err != nil {
		return err
	}

	var rec *game.Recorder
	if cfg.TraceDir != "" {
		if rec, err = game.NewRecorder(cfg.TraceDir, sessionID, log); err != nil {
			return err
		}
		defer rec.Close()
		log.Info("recording trace", zap.String("path", rec.Path()))
	}

	keys := input.NewKeyboardHandler()
	if err := keys.Start(); err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer keys.Stop()

	render := renderer.NewTerminalRenderer()
	render.HideCursor()
	defer render.ShowCursor()

	clock := cfg.Clock()
	ticker := time.NewTicker(cfg.Frame())
	defer ticker.Stop()

	var proposed []game.Point
	last := time.Now()
	render.Render(g.Snapshot())

	for {
		select {
		case key := <-keys.Keys():
			cmd := input.Decode(key)
			if cmd.Action == input.ActionQuit {
				return nil
			}
			if cmd.Action == input.ActionTurn {
				proposed = append(proposed, cmd.Dir)
			}
			if cmd.Action == input.ActionRestart && g.IsOver() {
				clock.Reset()
			}
			if input.Apply(g, cmd) && cmd.Action != input.ActionTurn {
				render.Render(g.Snapshot())
			}

		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			if g.IsOver() || g.Paused() {
				continue
			}

			ticks := clock.Advance(elapsed)
			for _, dt := range ticks {
				hit := g.Tick(dt)
				if rec != nil {
					snap := g.Snapshot()
					rec.Record(game.TickRecord{Tick: snap.Tick, Proposed: proposed, Hit: hit.String(), State: snap})
				}
				proposed = nil
				if g.IsOver() {
					break
				}
			}
			if len(ticks) > 0 {
				render.Render(g.Snapshot())
			}
		}
	}
}
