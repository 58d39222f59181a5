package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json", ""} {
		l, err := NewLogger(LogConfig{Level: "debug", Format: format})
		require.NoError(t, err)
		require.NotNil(t, l)
	}
}

func TestNewLoggerBadPath(t *testing.T) {
	_, err := NewLogger(LogConfig{OutputPaths: []string{"/nonexistent-dir/x/y.log"}})
	assert.Error(t, err)
}

func TestFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLoggerFromCore(core).Named("split").With(String("input", "1abc"))

	l.Info("wrote file",
		String("path", "1abc_protein.pdb"),
		Int("atoms", 12),
		Float64("ratio", 0.5),
		Bool("strict", true),
		Duration("elapsed", time.Second),
		Err(errors.New("boom")),
		Any("names", []string{"ATP", "MG"}))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "wrote file", entry.Message)
	assert.Equal(t, "split", entry.LoggerName)

	ctx := entry.ContextMap()
	assert.Equal(t, "1abc", ctx["input"])
	assert.Equal(t, "1abc_protein.pdb", ctx["path"])
	assert.Equal(t, int64(12), ctx["atoms"])
	assert.Equal(t, true, ctx["strict"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestErrNil(t *testing.T) {
	assert.Equal(t, "<nil>", Err(nil).Value)
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	assert.NotNil(t, l.With(String("a", "b")).Named("n"))
	assert.NoError(t, l.Sync())
}
