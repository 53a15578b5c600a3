package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/trytobebee/gridsnake/pkg/game"
)

// Board defaults
const (
	GridSize      = 20
	CellSize      = 1.0
	InitialLength = 3
	FoodScore     = 1
)

// Timing
const (
	GridTick      = 100 * time.Millisecond // one cell per tick
	FrameInterval = 16 * time.Millisecond  // ~60 FPS for smooth movement
	MaxFrameDelta = 32 * time.Millisecond  // frame deltas are capped so a stall cannot teleport the snake
	SmoothSpeed   = 7.0                    // cells per second
)

// Emoji characters for rendering
const (
	CharEmpty = "  " // Two spaces to match emoji width
	CharWall  = "⬜"
	CharHead  = "🟢"
	CharBody  = "🟩"
	CharFood  = "🔴"
	CharCrash = "💥"
)

// Config is the runtime configuration shared by the binaries.
type Config struct {
	Mode          game.Mode
	GridSize      int
	CellSize      float64
	InitialLength int
	FoodScore     int
	Speed         float64
	Tick          time.Duration
	Seed          uint64 // 0 picks a time based seed

	Addr     string
	LogLevel string
	LogDir   string
	LogFile  bool
	TraceDir string // empty disables tick traces
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mode:          game.ModeGrid,
		GridSize:      GridSize,
		CellSize:      CellSize,
		InitialLength: InitialLength,
		FoodScore:     FoodScore,
		Speed:         SmoothSpeed,
		Tick:          GridTick,
		Addr:          ":8080",
		LogLevel:      "info",
		LogDir:        "logs",
	}
}

// Load reads an optional .env file and then SNAKE_* environment variables on
// top of Default.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Default()
	var err error
	if v, ok := os.LookupEnv("SNAKE_MODE"); ok {
		if cfg.Mode, err = game.ParseMode(v); err != nil {
			return Config{}, fmt.Errorf("SNAKE_MODE: %w", err)
		}
	}
	if err = lookupInt("SNAKE_GRID_SIZE", &cfg.GridSize); err != nil {
		return Config{}, err
	}
	if err = lookupFloat("SNAKE_CELL_SIZE", &cfg.CellSize); err != nil {
		return Config{}, err
	}
	if err = lookupInt("SNAKE_INITIAL_LENGTH", &cfg.InitialLength); err != nil {
		return Config{}, err
	}
	if err = lookupInt("SNAKE_FOOD_SCORE", &cfg.FoodScore); err != nil {
		return Config{}, err
	}
	if err = lookupFloat("SNAKE_SPEED", &cfg.Speed); err != nil {
		return Config{}, err
	}
	if v, ok := os.LookupEnv("SNAKE_TICK"); ok {
		if cfg.Tick, err = time.ParseDuration(v); err != nil || cfg.Tick <= 0 {
			return Config{}, fmt.Errorf("SNAKE_TICK: invalid duration %q", v)
		}
	}
	if v, ok := os.LookupEnv("SNAKE_SEED"); ok {
		if cfg.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return Config{}, fmt.Errorf("SNAKE_SEED: %w", err)
		}
	}
	if v, ok := os.LookupEnv("SNAKE_LOG_FILE"); ok {
		if cfg.LogFile, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("SNAKE_LOG_FILE: %w", err)
		}
	}
	lookupString("SNAKE_ADDR", &cfg.Addr)
	lookupString("SNAKE_LOG_LEVEL", &cfg.LogLevel)
	lookupString("SNAKE_LOG_DIR", &cfg.LogDir)
	lookupString("SNAKE_TRACE_DIR", &cfg.TraceDir)
	return cfg, nil
}

// Settings converts the configuration into session settings.
func (c Config) Settings() game.Settings {
	s := game.DefaultSettings(c.Mode)
	s.GridSize = c.GridSize
	s.CellSize = c.CellSize
	s.InitialLength = c.InitialLength
	s.FoodScore = c.FoodScore
	s.Speed = c.Speed
	s.MaxFrame = MaxFrameDelta
	return s
}

// SessionOptions returns the options implied by the configuration.
func (c Config) SessionOptions() []game.Option {
	if c.Seed == 0 {
		return nil
	}
	return []game.Option{game.WithSeed(c.Seed)}
}

// Clock returns the clock matching the configured mode.
func (c Config) Clock() *game.Clock {
	if c.Mode == game.ModeSmooth {
		return game.NewFrameClock(MaxFrameDelta)
	}
	return game.NewFixedClock(c.Tick)
}

// Frame returns how often a driver should poll the clock.
func (c Config) Frame() time.Duration {
	if c.Mode == game.ModeSmooth || c.Tick > FrameInterval {
		return FrameInterval
	}
	return c.Tick
}

func lookupString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func lookupInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func lookupFloat(key string, dst *float64) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}
