// Package board parses activity board flags and launches the web service.
package board

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/louisbranch/activityboard/internal/activities"
	entrypoint "github.com/louisbranch/activityboard/internal/platform/cmd"
	"github.com/louisbranch/activityboard/internal/platform/logging"
	"github.com/louisbranch/activityboard/internal/services/web"
)

// Config holds the board command configuration. Environment keys carry the
// ACTIVITY_BOARD_ prefix.
type Config struct {
	HTTPAddr            string        `env:"HTTP_ADDR" envDefault:"localhost:8080"`
	APIBaseURL          string        `env:"API_BASE_URL" envDefault:"http://localhost:8000"`
	APITimeout          time.Duration `env:"API_TIMEOUT" envDefault:"0s"`
	MessageTTL          time.Duration `env:"MESSAGE_TTL" envDefault:"5s"`
	SessionIdleTTL      time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	AssetBaseURL        string        `env:"ASSET_BASE_URL" envDefault:"https://unpkg.com"`
	LiveUpdates         bool          `env:"LIVE_UPDATES" envDefault:"true"`
	TrustForwardedProto bool          `env:"TRUST_FORWARDED_PROTO" envDefault:"false"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "Activities API base URL")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "Activities API request timeout (0 disables)")
	fs.DurationVar(&cfg.MessageTTL, "message-ttl", cfg.MessageTTL, "How long signup messages stay visible")
	fs.DurationVar(&cfg.SessionIdleTTL, "session-idle-ttl", cfg.SessionIdleTTL, "How long idle board sessions are kept")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.AssetBaseURL, "asset-base-url", cfg.AssetBaseURL, "Base URL for htmx scripts (empty disables scripts)")
	fs.BoolVar(&cfg.LiveUpdates, "live-updates", cfg.LiveUpdates, "Push board changes to open pages over a websocket")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Honor X-Forwarded-Proto from a trusted proxy")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.APITimeout < 0 {
		return Config{}, fmt.Errorf("api timeout must not be negative: %s", cfg.APITimeout)
	}
	return cfg, nil
}

// Run starts the activity board web service.
func Run(ctx context.Context, cfg Config) error {
	return run(ctx, cfg, os.Stderr)
}

func run(ctx context.Context, cfg Config, logOut io.Writer) error {
	logger, err := logging.New(logOut, cfg.LogLevel, entrypoint.ServiceBoard)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBoard, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		server, err := newServer(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve board: %w", err)
		}
		return nil
	})
}

func newServer(ctx context.Context, cfg Config, logger zerolog.Logger) (*web.Server, error) {
	client, err := activities.NewClient(cfg.APIBaseURL,
		activities.WithDoer(&http.Client{Timeout: cfg.APITimeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("init activities client: %w", err)
	}
	server, err := web.NewServer(ctx, web.Config{
		HTTPAddr:            cfg.HTTPAddr,
		AssetBaseURL:        cfg.AssetBaseURL,
		LiveUpdates:         cfg.LiveUpdates,
		Gateway:             client,
		MessageTTL:          cfg.MessageTTL,
		SessionIdleTTL:      cfg.SessionIdleTTL,
		TrustForwardedProto: cfg.TrustForwardedProto,
		Logger:              logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init board server: %w", err)
	}
	return server, nil
}
