package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, ParseLevel(input))
		})
	}
}

func TestRequestLogger_TagsOperationAndID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := Logger
	SetLogger(zap.New(core))
	defer SetLogger(prev)

	logger, requestID := RequestLogger("get_matches")
	logger.Info("hello")

	assert.NotEmpty(t, requestID)
	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "get_matches", fields["operation"])
		assert.Equal(t, requestID, fields["request_id"])
	}
}
