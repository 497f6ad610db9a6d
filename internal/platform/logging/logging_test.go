package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"vlx/internal/platform/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := logging.ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if logging.ValidLevel("bogus") {
		t.Fatalf("bogus should not be a valid level")
	}
}

func TestNewLoggerFiltersBelowLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logging.NewLogger("warn", &buf)
	log.Info("hidden")
	log.Warn("shown", "lab", "optics-1")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "lab=optics-1") {
		t.Fatalf("warn record missing: %s", out)
	}
}
