package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the relay's structured logger.
type Logger struct {
	*zap.Logger
}

// Config selects verbosity and encoding.
type Config struct {
	// Level is a zap level name; empty means info.
	Level string
	// Development switches to coloured console output with stack traces on warnings.
	Development bool
	// Sink receives encoded entries. Nil writes to stdout.
	Sink zapcore.WriteSyncer
}

// New builds a logger from cfg.
func New(cfg Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	sink := cfg.Sink
	if sink == nil {
		sink = zapcore.Lock(os.Stdout)
	}

	encoder := zapcore.NewJSONEncoder(jsonEncoding)
	opts := []zap.Option{
		zap.AddCaller(),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
		zap.AddStacktrace(zapcore.ErrorLevel),
	}
	if cfg.Development {
		encoder = zapcore.NewConsoleEncoder(consoleEncoding)
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}

	return &Logger{Logger: zap.New(zapcore.NewCore(encoder, sink, level), opts...)}, nil
}

// Bootstrap returns the stderr logger used before configuration is loaded.
func Bootstrap(development bool) *Logger {
	logger, err := New(Config{Development: development, Sink: zapcore.Lock(os.Stderr)})
	if err != nil {
		return NewNop()
	}
	return logger
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}

// Named returns a child logger with the given name segment.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name)}
}

var jsonEncoding = zapcore.EncoderConfig{
	TimeKey:        "ts",
	LevelKey:       "level",
	NameKey:        "component",
	CallerKey:      "caller",
	FunctionKey:    zapcore.OmitKey,
	MessageKey:     "msg",
	StacktraceKey:  "stack",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.LowercaseLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.MillisDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

var consoleEncoding = zapcore.EncoderConfig{
	TimeKey:          "T",
	LevelKey:         "L",
	NameKey:          "N",
	CallerKey:        "C",
	FunctionKey:      zapcore.OmitKey,
	MessageKey:       "M",
	StacktraceKey:    "S",
	LineEnding:       zapcore.DefaultLineEnding,
	EncodeLevel:      zapcore.CapitalColorLevelEncoder,
	EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05.000"),
	EncodeDuration:   zapcore.StringDurationEncoder,
	EncodeCaller:     zapcore.ShortCallerEncoder,
	ConsoleSeparator: "  ",
}
