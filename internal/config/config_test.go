package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amishk599/jobmerge/internal/adapter"
	"github.com/amishk599/jobmerge/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  read_timeout: 5s
fetch:
  timeout: 20s
  user_agent: my-agent/2.0
aggregation:
  allow_partial: true
rate_limit:
  requests_per_second: 2.5
  burst: 10
sources:
  - name: simplify
    url: https://mirror.example.com/simplify.md
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != defaultWriteTimeout {
		t.Errorf("WriteTimeout = %v, want default", cfg.Server.WriteTimeout)
	}
	if cfg.Fetch.Timeout != 20*time.Second || cfg.Fetch.UserAgent != "my-agent/2.0" {
		t.Errorf("Fetch = %+v", cfg.Fetch)
	}
	if !cfg.Aggregation.AllowPartial {
		t.Error("AllowPartial = false, want true")
	}
	if cfg.RateLimit.RequestsPerSecond != 2.5 || cfg.RateLimit.Burst != 10 {
		t.Errorf("RateLimit = %+v", cfg.RateLimit)
	}

	if len(cfg.Sources) != 3 {
		t.Fatalf("Sources = %+v, want 3 entries", cfg.Sources)
	}
	for i, want := range model.Sources {
		if cfg.Sources[i].Name != want {
			t.Errorf("Sources[%d] = %q, want %q", i, cfg.Sources[i].Name, want)
		}
	}
	if cfg.Sources[2].URL != "https://mirror.example.com/simplify.md" {
		t.Errorf("simplify URL = %q, want override", cfg.Sources[2].URL)
	}
	if cfg.Sources[0].URL != adapter.ScoutURL {
		t.Errorf("scout URL = %q, want default", cfg.Sources[0].URL)
	}
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Fetch.Timeout != 15*time.Second {
		t.Errorf("Fetch.Timeout = %v, want 15s", cfg.Fetch.Timeout)
	}
	if cfg.Fetch.UserAgent != adapter.DefaultUserAgent {
		t.Errorf("UserAgent = %q", cfg.Fetch.UserAgent)
	}
	if cfg.Aggregation.AllowPartial {
		t.Error("AllowPartial should default to false")
	}
	if len(cfg.Sources) != 3 {
		t.Errorf("Sources = %+v, want 3 defaults", cfg.Sources)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("JOBMERGE_TEST_UA", "env-agent/1.0")
	cfg, err := Load(writeConfig(t, "fetch:\n  user_agent: ${JOBMERGE_TEST_UA}\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Fetch.UserAgent != "env-agent/1.0" {
		t.Errorf("UserAgent = %q, want env-agent/1.0", cfg.Fetch.UserAgent)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoadOrDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nonexistent.yaml")

	cfg, err := LoadOrDefault(missing, false)
	if err != nil {
		t.Fatalf("LoadOrDefault optional: %v", err)
	}
	if len(cfg.Sources) != 3 {
		t.Errorf("expected defaults, got %+v", cfg)
	}

	if _, err := LoadOrDefault(missing, true); err == nil {
		t.Fatal("LoadOrDefault required: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "fetch: [broken"))
	if err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad duration", content: "fetch:\n  timeout: soon\n"},
		{name: "zero timeout", content: "fetch:\n  timeout: 0s\n"},
		{name: "unknown source", content: "sources:\n  - name: indeed\n    url: https://x.com\n"},
		{name: "empty url", content: "sources:\n  - name: scout\n    url: \"\"\n"},
		{name: "zero rate", content: "rate_limit:\n  requests_per_second: 0\n"},
		{name: "negative burst", content: "rate_limit:\n  burst: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Fatal("Load: expected validation error")
			}
		})
	}
}
