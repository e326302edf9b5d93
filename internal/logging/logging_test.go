package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/gomate/internal/logging"
)

func TestParseLevel(t *testing.T) {
	c := qt.New(t)
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Error", slog.LevelError},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}
	for _, tt := range tests {
		c.Assert(logging.ParseLevel(tt.in), qt.Equals, tt.want, qt.Commentf("level %q", tt.in))
	}
}

func TestSetupWriter_FiltersBelowLevel(t *testing.T) {
	c := qt.New(t)
	prev := slog.Default()
	c.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logging.SetupWriter(&buf, "warn")
	slog.Info("hidden")
	slog.Warn("shown", "key", "favorites")

	c.Assert(buf.String(), qt.Not(qt.Contains), "hidden")
	c.Assert(buf.String(), qt.Contains, "msg=shown key=favorites")
}
