// Package utils provides logging helpers shared by the compatibility engine.
package utils

import (
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger instance.
var Logger *zap.Logger

// ParseLevel maps a textual level to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// InitLogger initializes the global logger.
func InitLogger(level string) error {
	zapLevel := ParseLevel(level)

	// Lambda wants JSON on stdout; everything else gets the console encoder.
	isLambda := os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""

	var config zap.Config
	if isLambda {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}
	} else {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := config.Build()
	if err != nil {
		return err
	}
	Logger = logger

	return nil
}

// GetLogger returns the global logger, initializing if necessary.
func GetLogger() *zap.Logger {
	if Logger == nil {
		if err := InitLogger("info"); err != nil {
			Logger = zap.NewNop()
		}
	}
	return Logger
}

// SetLogger replaces the global logger. Tests use it to install zap.NewNop
// or an observer core.
func SetLogger(l *zap.Logger) {
	Logger = l
}

// RequestLogger returns a child logger tagged with the operation name and a
// fresh request id, along with the id itself.
func RequestLogger(operation string) (*zap.Logger, string) {
	requestID := uuid.NewString()
	return GetLogger().With(
		zap.String("operation", operation),
		zap.String("request_id", requestID),
	), requestID
}

// Sync flushes any buffered log entries.
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// LogField creates a zap field for structured logging.
type LogField = zap.Field

// Common field constructors
var (
	String   = zap.String
	Strings  = zap.Strings
	Int      = zap.Int
	Int64    = zap.Int64
	Float64  = zap.Float64
	Bool     = zap.Bool
	Error    = zap.Error
	Any      = zap.Any
	Duration = zap.Duration
)
