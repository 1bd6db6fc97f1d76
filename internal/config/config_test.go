package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.JWT.AccessTTL.Std() != time.Hour {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.Seed.Enabled || cfg.Seed.AdminCPF != "12345678900" {
		t.Fatalf("unexpected seed defaults: %+v", cfg.Seed)
	}
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  addr: ":9000"
jwt:
  secret: yaml-secret
  access_ttl: 30m
seed:
  enabled: false
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	// el env pisa al YAML
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("PORT", "7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Fatalf("PORT should override yaml addr, got %s", cfg.Server.Addr)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Fatalf("JWT_SECRET should override yaml, got %s", cfg.JWT.Secret)
	}
	if cfg.JWT.AccessTTL.Std() != 30*time.Minute {
		t.Fatalf("yaml ttl not applied: %v", cfg.JWT.AccessTTL)
	}
	if cfg.Seed.Enabled {
		t.Fatal("yaml seed.enabled=false not applied")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/no/existe.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
