// Package testutil provides loggers and a fake geoservice for tests.
package testutil

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
)

// NewTestLogger returns a debug-level text logger writing to w, or to
// io.Discard when w is nil.
func NewTestLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// DiscardLogger returns a logger that discards all output
func DiscardLogger() *slog.Logger {
	return NewTestLogger(nil)
}

// CaptureLogger returns a logger together with the buffer it writes to.
func CaptureLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewTestLogger(buf), buf
}

// tWriter forwards log lines to t.Log so they only show for failing or
// verbose tests.
type tWriter struct {
	t testing.TB
}

func (w tWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// TestingLogger returns a logger that writes through t.Log.
func TestingLogger(t testing.TB) *slog.Logger {
	return NewTestLogger(tWriter{t: t})
}
