// internal/logger/logger.go
//
// Structured JSON logger (Zap + Lumberjack).
//
// Context
// -------
// Every process writes JSON events to stdout.  When a log directory is
// configured the same events also go to a rotated file, and `console`
// switches stdout to the human readable encoder for local work.
//
// Usage
// -----
//
//	log, err := logger.New(cfg.Log)
//	if err != nil { … }
//	log.Infow("content generated", "channel", c.Channel)
package logger

import (
    "fmt"
    "os"
    "path/filepath"

    "github.com/natefinch/lumberjack"
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"

    "github.com/unclebandit/editorial-content-service/internal/config"
)

// New builds the process logger and installs it via zap.ReplaceGlobals.
func New(cfg config.Log) (*zap.SugaredLogger, error) {
    level, err := zapcore.ParseLevel(cfg.Level)
    if err != nil {
        return nil, fmt.Errorf("parse log level: %w", err)
    }

    encCfg := zapcore.EncoderConfig{
        TimeKey:      "ts",
        LevelKey:     "level",
        NameKey:      "logger",
        MessageKey:   "msg",
        CallerKey:    "caller",
        EncodeTime:   zapcore.ISO8601TimeEncoder,
        EncodeLevel:  zapcore.LowercaseLevelEncoder,
        EncodeCaller: zapcore.ShortCallerEncoder,
    }

    stdoutEnc := zapcore.NewJSONEncoder(encCfg)
    if cfg.Console {
        stdoutEnc = zapcore.NewConsoleEncoder(encCfg)
    }
    cores := []zapcore.Core{
        zapcore.NewCore(stdoutEnc, zapcore.AddSync(os.Stdout), level),
    }

    if cfg.Dir != "" {
        if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
            return nil, err
        }
        fileSink := &lumberjack.Logger{
            Filename:   filepath.Join(cfg.Dir, "editorial-content.log"),
            MaxSize:    50, // MB
            MaxBackups: 7,
            MaxAge:     14, // days
            Compress:   true,
        }
        cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(fileSink), level))
    }

    z := zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Sugar()
    zap.ReplaceGlobals(z.Desugar())

    z.Debugw("logger online", "level", level.String(), "file", cfg.Dir != "")
    return z, nil
}

// Nop is used by tests and tools that do not care about output.
func Nop() *zap.SugaredLogger {
    return zap.NewNop().Sugar()
}
