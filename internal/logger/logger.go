package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Stderr keeps stdout free for reports.
const Stderr = "stderr"

// New builds the process logger writing to stderr.
func New(json bool, debug bool) (*zap.Logger, error) {
	return NewTo(Stderr, json, debug)
}

// NewTo builds a logger writing to output, a path or a zap sink URL.
// Stack traces are attached to error entries only in debug mode.
func NewTo(output string, json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"
	stacktraceKey := ""

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
		stacktraceKey = "stacktrace"
	}

	cfg := zap.Config{
		Encoding:          encoding,
		Level:             zap.NewAtomicLevelAt(level),
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{Stderr},
		DisableStacktrace: !debug,
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "step",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,

			StacktraceKey:  stacktraceKey,
			EncodeDuration: zapcore.MillisDurationEncoder,
		},
	}

	return cfg.Build()
}
