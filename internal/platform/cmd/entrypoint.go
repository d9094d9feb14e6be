// Package cmd holds startup helpers shared by service commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/louisbranch/activityboard/internal/platform/config"
	"github.com/louisbranch/activityboard/internal/platform/otel"
	"github.com/louisbranch/activityboard/internal/platform/timeouts"
)

// ServiceBoard names the activity board service in telemetry and logs.
const ServiceBoard = "board"

// RunOptions controls shared entrypoint behavior for service commands.
type RunOptions struct {
	// Logger receives telemetry shutdown failures.
	Logger zerolog.Logger
	// Telemetry overrides the ACTIVITY_BOARD_OTEL_* environment.
	Telemetry *otel.Config
}

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry configures tracing and executes a service run loop.
func RunWithTelemetry(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	telemetry := options.Telemetry
	if telemetry == nil {
		loaded, err := otel.LoadConfig()
		if err != nil {
			return err
		}
		telemetry = &loaded
	}
	shutdown, err := otel.Setup(ctx, service, *telemetry)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.TelemetryShutdown)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			options.Logger.Error().Err(err).Str("service", service).Msg("otel shutdown")
		}
	}()
	return run(ctx)
}
