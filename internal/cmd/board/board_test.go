package board

import (
	"bytes"
	"context"
	"flag"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("board", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8080")
	}
	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 0 {
		t.Fatalf("APITimeout = %s, want 0", cfg.APITimeout)
	}
	if cfg.MessageTTL != 5*time.Second {
		t.Fatalf("MessageTTL = %s, want 5s", cfg.MessageTTL)
	}
	if cfg.SessionIdleTTL != 30*time.Minute {
		t.Fatalf("SessionIdleTTL = %s, want 30m", cfg.SessionIdleTTL)
	}
	if cfg.LogLevel != "info" || cfg.AssetBaseURL != "https://unpkg.com" || !cfg.LiveUpdates || cfg.TrustForwardedProto {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfigEnvThenFlags(t *testing.T) {
	t.Setenv("ACTIVITY_BOARD_HTTP_ADDR", "0.0.0.0:9000")
	t.Setenv("ACTIVITY_BOARD_API_BASE_URL", "http://api.internal:8000/v1")
	t.Setenv("ACTIVITY_BOARD_MESSAGE_TTL", "2s")

	fs := flag.NewFlagSet("board", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "127.0.0.1:7000", "-api-timeout", "3s", "-live-updates=false"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:7000" {
		t.Fatalf("HTTPAddr = %q, flag must win over env", cfg.HTTPAddr)
	}
	if cfg.APIBaseURL != "http://api.internal:8000/v1" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 3*time.Second || cfg.MessageTTL != 2*time.Second {
		t.Fatalf("durations = %s/%s", cfg.APITimeout, cfg.MessageTTL)
	}
	if cfg.LiveUpdates {
		t.Fatal("LiveUpdates = true, flag must disable it")
	}
}

func TestParseConfigRejectsInvalidInput(t *testing.T) {
	t.Setenv("ACTIVITY_BOARD_MESSAGE_TTL", "soon")
	fs := flag.NewFlagSet("board", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected invalid duration error")
	}
}

func TestParseConfigRejectsNegativeTimeout(t *testing.T) {
	fs := flag.NewFlagSet("board", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-api-timeout", "-1s"}); err == nil {
		t.Fatal("expected negative timeout error")
	}
}

func TestNewServerRejectsInvalidAPIBaseURL(t *testing.T) {
	t.Parallel()

	cfg := Config{HTTPAddr: "localhost:0", APIBaseURL: "ftp://activities"}
	if _, err := newServer(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected invalid base url error")
	}
}

func TestRunRejectsUnknownLogLevel(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), Config{LogLevel: "chatty"}, &out)
	if err == nil {
		t.Fatal("expected log level error")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Setenv("ACTIVITY_BOARD_OTEL_ENABLED", "false")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	cfg := Config{
		HTTPAddr:   "127.0.0.1:0",
		APIBaseURL: "http://127.0.0.1:1",
		LogLevel:   "error",
	}
	if err := run(ctx, cfg, &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}
}
