package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timeFmt = "2006/01/02 15:04:05.000"

// Config describes where and how much to log.
type Config struct {
	Level string
	App   string
	Dir   string
	File  bool // also write rotated <App>.log and <App>_error.log under Dir
}

// New builds a zap logger writing to stdout and, when File is set, to rotated
// files. An unknown level falls back to info.
func New(cfg Config) *zap.Logger {
	if cfg.App == "" {
		cfg.App = "snake"
	}
	lv := zap.NewAtomicLevel()
	if err := lv.UnmarshalText([]byte(cfg.Level)); err != nil {
		lv.SetLevel(zap.InfoLevel)
		_, _ = fmt.Fprintf(os.Stderr, "logger: invalid log level %q, using info\n", cfg.Level)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg(false)), zapcore.Lock(os.Stdout), lv),
	}
	if cfg.File {
		name := filepath.Join(cfg.Dir, cfg.App)
		cores = append(cores,
			fileCore(name+".log", lv),
			fileCore(name+"_error.log", zap.ErrorLevel),
		)
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// NewFileOnly builds a logger that never writes to the terminal, for drivers
// that own the screen. With File unset it discards everything.
func NewFileOnly(cfg Config) *zap.Logger {
	if !cfg.File {
		return zap.NewNop()
	}
	if cfg.App == "" {
		cfg.App = "snake"
	}
	lv := zap.NewAtomicLevel()
	if err := lv.UnmarshalText([]byte(cfg.Level)); err != nil {
		lv.SetLevel(zap.InfoLevel)
	}
	name := filepath.Join(cfg.Dir, cfg.App)
	return zap.New(zapcore.NewTee(
		fileCore(name+".log", lv),
		fileCore(name+"_error.log", zap.ErrorLevel),
	), zap.AddCaller())
}

func fileCore(file string, lv zapcore.LevelEnabler) zapcore.Core {
	w := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     10,
		Compress:   true,
	}
	return zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg(true)), zapcore.AddSync(w), lv)
}

func encCfg(file bool) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + t.Format(timeFmt) + "]")
	}
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	cfg.ConsoleSeparator = " "
	if file {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg
}
