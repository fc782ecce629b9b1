package commands

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Roelanb/wacheck/internal/api"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func mockBackend(t *testing.T) string {
	t.Helper()
	srv := api.New(zap.NewNop().Sugar(), "127.0.0.1:0", 0)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Jobs().Close()
	})
	return ts.URL
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wacheck.yaml")
	out, err := run(t, "config", "init", "--config", path)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "wrote "+path) {
		t.Fatalf("output=%q", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if _, err := run(t, "config", "init", "--config", path); err == nil {
		t.Fatalf("second init should refuse to overwrite")
	}
	if _, err := run(t, "config", "init", "--config", path, "--force"); err != nil {
		t.Fatalf("forced init: %v", err)
	}
}

func TestCheckAndBatchAgainstMockBackend(t *testing.T) {
	url := mockBackend(t)
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "missing.yaml")
	logs := filepath.Join(dir, "wacheck.log")

	if _, err := run(t, "status", "--config", cfgFile, "--backend", url, "--log-file", logs); err != nil {
		t.Fatalf("status: %v", err)
	}
	if _, err := run(t, "check", "15551234567", "--config", cfgFile, "--backend", url, "--log-file", logs); err != nil {
		t.Fatalf("check: %v", err)
	}
	if _, err := run(t, "check", "123", "--config", cfgFile, "--backend", url, "--log-file", logs); err == nil {
		t.Fatalf("invalid number should fail")
	}

	numbersFile := filepath.Join(dir, "numbers.txt")
	if err := os.WriteFile(numbersFile, []byte("15551234567\n1234567890\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "batch", numbersFile, "--config", cfgFile, "--backend", url, "--log-file", logs); err != nil {
		t.Fatalf("batch: %v", err)
	}
}

func TestStatus_UnreachableBackend(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "status",
		"--config", filepath.Join(dir, "missing.yaml"),
		"--backend", "http://127.0.0.1:1",
		"--log-file", filepath.Join(dir, "wacheck.log"),
	)
	if err == nil {
		t.Fatalf("expected an error for an unreachable backend")
	}
}

func TestReadBatch(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "contacts.csv")
	if err := os.WriteFile(csvPath, []byte("name,phone\nann,+15551234567\nbob,447700900123\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := readBatch(csvPath, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "+15551234567\n447700900123" {
		t.Fatalf("csv batch=%q", got)
	}

	got, err = readBatch("-", strings.NewReader("1\n2\n"))
	if err != nil || got != "1\n2\n" {
		t.Fatalf("stdin batch=%q err=%v", got, err)
	}
}
