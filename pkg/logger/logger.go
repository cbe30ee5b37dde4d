package logger

import (
	"os"
	"path/filepath"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It discards everything until Init runs.
var Log = zap.NewNop().Sugar()

// Config controls where log lines go.
type Config struct {
	Level string // debug, info, warn, error
	Dir   string // optional; enables a rotated JSON file under Dir
}

func Init(cfg Config) error {
	level := zap.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return err
		}
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	// JSON handler for production-ready logging
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(os.Stdout), level),
	}

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return err
		}
		fileSink := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, "forms.log"),
			MaxSize:    50, // MB
			MaxBackups: 7,
			MaxAge:     14, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(fileSink), level))
	}

	z := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	zap.ReplaceGlobals(z)
	Log = z.Sugar()
	return nil
}

// Sync flushes buffered entries; call it before exit.
func Sync() {
	_ = Log.Sync()
}
