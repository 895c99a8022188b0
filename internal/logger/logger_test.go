package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	delete(m, slog.TimeKey)
	return m
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := New("scanner", &Config{Level: slog.LevelDebug, Output: &buf})

	log.WithField("document", "doc-1").Info("Tokenized", slog.Int("tokens", 3))

	want := map[string]any{
		"level":     "INFO",
		"msg":       "Tokenized",
		"component": "scanner",
		"document":  "doc-1",
		"tokens":    float64(3),
	}
	if diff := cmp.Diff(want, decode(t, &buf)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorWithCause(t *testing.T) {
	var buf bytes.Buffer
	log := New("clex", &Config{Output: &buf})

	log.ErrorWithCause("Keyword list not found", errors.New("boom"), "missing file", "create it")

	want := map[string]any{
		"level":     "ERROR",
		"msg":       "Keyword list not found",
		"component": "clex",
		"error":     "boom",
		"cause":     "missing file",
		"action":    "create it",
	}
	if diff := cmp.Diff(want, decode(t, &buf)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestAddSource(t *testing.T) {
	var buf bytes.Buffer
	New("clex", &Config{AddSource: true, Output: &buf}).Info("here")
	if _, ok := decode(t, &buf)[slog.SourceKey]; !ok {
		t.Errorf("source missing: %q", buf.String())
	}
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New("clex", &Config{Level: slog.LevelWarn, Output: &buf})
	log.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info logged at warn level: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Errorf("expected an error for an unknown level")
	}
}
