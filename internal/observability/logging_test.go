package observability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARNING": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q)=%v, want %v", in, got, want)
		}
	}
}

func TestNewLogger_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "wacheck.log")
	log := NewLogger("info", path)
	log.Infow("hello", "number", "15551234567")
	_ = log.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"msg":"hello"`) || !strings.Contains(string(b), `"ts":`) {
		t.Fatalf("unexpected log line: %s", b)
	}
}

func TestEnvLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	if got := EnvLogLevel("info"); got != "debug" {
		t.Fatalf("EnvLogLevel=%q", got)
	}
	t.Setenv("LOG_LEVEL", "")
	if got := EnvLogLevel("info"); got != "info" {
		t.Fatalf("EnvLogLevel=%q", got)
	}
}
