package schema

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debug("x")
	l.Info("x", "k", 1)
	l.Warn("x")
	l.Error("x")
	assert.Equal(t, NopLogger{}, l.With("k", "v"))
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	l := NewSlogAdapter(slog.New(handler))

	l.Debug("upgrade step", "version", "v2.0")
	l.With("component", "engine").Warn("careful")
	l.Info("info")
	l.Error("failed", "err", "boom")

	out := buf.String()
	assert.Contains(t, out, `level=DEBUG msg="upgrade step" version=v2.0`)
	assert.Contains(t, out, `level=WARN msg=careful component=engine`)
	assert.Contains(t, out, `level=INFO msg=info`)
	assert.Contains(t, out, `level=ERROR msg=failed err=boom`)
}

func TestNewSlogAdapter_NilUsesDefault(t *testing.T) {
	l := NewSlogAdapter(nil)
	assert.Same(t, slog.Default(), l.logger)
}
