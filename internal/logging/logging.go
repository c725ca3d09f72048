// Package logging builds the diagnostic logger used by the genseq tools.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to stderr. Progress messages are
// logged at Info and only shown when verbose is set; warnings always are.
func New(verbose bool) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.InfoLevel
	}
	return NewAtLevel(level)
}

// NewAtLevel returns a console logger writing to stderr at the given level.
func NewAtLevel(level zapcore.Level) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("Jan _2 15:04:05.000")
	encoderConfig.StacktraceKey = ""
	config.EncoderConfig = encoderConfig

	return config.Build()
}
