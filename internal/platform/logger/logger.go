package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the printf-style surface the services and adapters log through.
// *zap.SugaredLogger satisfies it as is.
type Logger interface {
	Debugf(template string, args ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Fatalf(template string, args ...interface{})
	Sync() error
}

// Options mirrors the logger section of the service config. Output defaults
// to stderr.
type Options struct {
	Level      string
	Encoding   string
	TimeFormat string
	Output     io.Writer
}

// New builds a zap logger. An unrecognised level logs at info.
func New(opts Options) (Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		level = zapcore.InfoLevel
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	core := zapcore.NewCore(newEncoder(opts), zapcore.Lock(zapcore.AddSync(out)), level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).Sugar(), nil
}

func newEncoder(opts Options) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if opts.TimeFormat != "" {
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout(opts.TimeFormat)
	}
	if opts.Encoding == "console" {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(cfg)
	}
	return zapcore.NewJSONEncoder(cfg)
}

// NewNop discards everything.
func NewNop() Logger {
	return zap.NewNop().Sugar()
}
