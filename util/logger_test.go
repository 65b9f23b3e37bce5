package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

// captureLogs points the singleton logger at a buffer for the test.
func captureLogs(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	t.Setenv("TYPEDPIPE_LOG_LEVEL", "")

	var buf bytes.Buffer
	if err := InitLogger(level, ""); err != nil {
		t.Fatalf("InitLogger: %v", err)
	}
	SetLogOutput(&buf)
	t.Cleanup(func() {
		InitLogger("warn", "")
	})
	return &buf
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{" INFO ", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.WarnLevel},
		{"bogus", zapcore.WarnLevel},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLog_FiltersBelowLevel(t *testing.T) {
	buf := captureLogs(t, "warn")

	Log("relay").Debug("hidden %d", 1)
	Log("relay").Info("hidden %d", 2)
	Log("relay").Warning("shown %d", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below WARN were written: %s", out)
	}
	if !strings.Contains(out, "shown 3") {
		t.Errorf("warning missing: %s", out)
	}
}

func TestLog_IncludesModuleAndLevel(t *testing.T) {
	buf := captureLogs(t, "debug")

	Log("wire").Error("bad frame")

	out := buf.String()
	for _, want := range []string{"ERROR", "[wire]", "bad frame"} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %q\nGot: %s", want, out)
		}
	}
}

func TestInitLogger_EnvOverridesConfig(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv("TYPEDPIPE_LOG_LEVEL", "debug")
	if err := InitLogger("error", ""); err != nil {
		t.Fatalf("InitLogger: %v", err)
	}
	SetLogOutput(&buf)
	t.Cleanup(func() {
		os.Unsetenv("TYPEDPIPE_LOG_LEVEL")
		InitLogger("warn", "")
	})

	Log("cmd").Debug("probe result")

	if !strings.Contains(buf.String(), "probe result") {
		t.Errorf("env level should override config level, got: %q", buf.String())
	}
}

func TestInitLogger_File(t *testing.T) {
	t.Setenv("TYPEDPIPE_LOG_LEVEL", "")
	logFile := filepath.Join(t.TempDir(), "typedpipe.log")

	if err := InitLogger("info", logFile); err != nil {
		t.Fatalf("InitLogger: %v", err)
	}
	Log("relay").Info("relayed %d bytes", 42)
	CloseLogger()
	t.Cleanup(func() {
		InitLogger("warn", "")
	})

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "relayed 42 bytes") {
		t.Errorf("log file missing entry, got: %s", content)
	}
}

func TestInitLogger_InvalidPath(t *testing.T) {
	t.Setenv("TYPEDPIPE_LOG_LEVEL", "")
	err := InitLogger("info", "/nonexistent/dir/log.txt")
	if err == nil {
		t.Error("expected error for unwritable log path")
	}
	t.Cleanup(func() {
		InitLogger("warn", "")
	})
}
