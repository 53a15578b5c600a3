package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/logger"
	"github.com/trytobebee/gridsnake/pkg/renderer"
)

func main() {
	file := flag.String("file", "", "trace to play; lists traces in -dir when empty")
	dir := flag.String("dir", "traces", "trace directory")
	speed := flag.Float64("speed", 1, "playback speed multiplier")
	flag.Parse()

	log := logger.New(logger.Config{Level: "info", App: "replay"})
	defer log.Sync()

	if *file == "" {
		if err := listTraces(os.Stdout, *dir); err != nil {
			log.Fatal("list traces", zap.Error(err))
		}
		return
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal("open trace", zap.Error(err))
	}
	defer f.Close()

	records, err := game.ReadTrace(f)
	if err != nil {
		log.Fatal("read trace", zap.String("file", *file), zap.Error(err))
	}
	if len(records) == 0 {
		log.Warn("empty trace", zap.String("file", *file))
		return
	}

	r := renderer.NewTerminalRenderer()
	r.HideCursor()
	defer r.ShowCursor()
	play(records, r.Render, *speed, time.Sleep)
}

// frameDelay is how long a recorded tick stays on screen at speed 1.
func frameDelay(rec game.TickRecord) time.Duration {
	if rec.State.Mode == game.ModeSmooth {
		return config.FrameInterval
	}
	return config.GridTick
}

// play renders every record, waiting between frames.
func play(records []game.TickRecord, render func(game.Snapshot), speed float64, sleep func(time.Duration)) {
	if speed <= 0 {
		speed = 1
	}
	for i, rec := range records {
		render(rec.State)
		if i < len(records)-1 {
			sleep(time.Duration(float64(frameDelay(rec)) / speed))
		}
	}
}

func listTraces(w io.Writer, dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "trace_*.jsonl"))
	if err != nil {
		return err
	}
	sort.Strings(matches)
	if len(matches) == 0 {
		fmt.Fprintf(w, "no traces in %s\n", dir)
		return nil
	}
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d bytes\t%s\n", m, info.Size(), info.ModTime().Format(time.DateTime))
	}
	return nil
}
