package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := global
	SetLogger(zap.New(core))
	t.Cleanup(func() { global = prev })
	return logs
}

func TestWith_CarriesFields(t *testing.T) {
	logs := observe(t)

	ctx := With(context.Background(), "session_id", "abc")
	Infof(ctx, "hello %s", "world")
	Warnf(context.Background(), "bare")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "hello world", entries[0].Message)
	assert.Equal(t, "abc", entries[0].ContextMap()["session_id"])
	assert.Empty(t, entries[1].ContextMap())
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestInit(t *testing.T) {
	prev := global
	t.Cleanup(func() { global = prev })

	assert.NoError(t, Init("debug", "json"))
	assert.NoError(t, Init("info", "console"))
	assert.Error(t, Init("loud", "console"))
	assert.Error(t, Init("info", "xml"))
}
