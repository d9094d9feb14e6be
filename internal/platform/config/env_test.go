package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port int           `env:"TEST_PORT" envDefault:"123"`
	TTL  time.Duration `env:"TEST_TTL" envDefault:"5s"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
	if cfg.TTL != 5*time.Second {
		t.Fatalf("expected default ttl 5s, got %v", cfg.TTL)
	}
}

func TestParseEnvUsesBoardPrefix(t *testing.T) {
	t.Setenv("ACTIVITY_BOARD_TEST_PORT", "456")
	t.Setenv("TEST_PORT", "789")

	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 456 {
		t.Fatalf("expected prefixed port 456, got %d", cfg.Port)
	}
}

func TestParseEnvWithPrefix(t *testing.T) {
	t.Setenv("OTHER_TEST_TTL", "250ms")

	var cfg envTestConfig
	if err := ParseEnvWithPrefix(&cfg, "OTHER_"); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.TTL != 250*time.Millisecond {
		t.Fatalf("expected ttl 250ms, got %v", cfg.TTL)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("ACTIVITY_BOARD_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
