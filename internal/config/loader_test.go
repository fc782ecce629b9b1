package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if cfg.Backend.BaseURL != DefaultBaseURL {
		t.Fatalf("base_url=%q", cfg.Backend.BaseURL)
	}
	if cfg.PollInterval() != time.Second || cfg.ErrorPollInterval() != 2*time.Second {
		t.Fatalf("poll intervals %v/%v", cfg.PollInterval(), cfg.ErrorPollInterval())
	}
	if cfg.NotificationTTL() != 3*time.Second {
		t.Fatalf("ttl=%v", cfg.NotificationTTL())
	}
}

func TestParse_OverridesAndErrorIntervalDerived(t *testing.T) {
	cfg, err := Parse([]byte(`
backend:
  base_url: https://checker.example.com
poll:
  interval_ms: 500
logging:
  level: debug
`))
	if err != nil {
		t.Fatalf("Parse err=%v", err)
	}
	if cfg.Backend.BaseURL != "https://checker.example.com" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected cfg %+v", cfg)
	}
	if cfg.ErrorPollInterval() != time.Second {
		t.Fatalf("error interval should double the poll interval, got %v", cfg.ErrorPollInterval())
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]string{
		"bad scheme": "backend:\n  base_url: ftp://host\n",
		"no host":    "backend:\n  base_url: http://\n",
		"bad level":  "logging:\n  level: loud\n",
		"bad yaml":   "backend: [",
	}
	for name, raw := range cases {
		if _, err := Parse([]byte(raw)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wacheck.yaml")
	cfg := Default()
	cfg.Backend.BaseURL = "http://10.0.0.5:5000"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save err=%v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if got.Backend.BaseURL != "http://10.0.0.5:5000" {
		t.Fatalf("base_url=%q", got.Backend.BaseURL)
	}
}
