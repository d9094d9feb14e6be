// Package web hosts the browser-facing activity board.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/louisbranch/activityboard/internal/board"
	"github.com/louisbranch/activityboard/internal/platform/i18n/catalog"
	"github.com/louisbranch/activityboard/internal/platform/timeouts"
	"github.com/louisbranch/activityboard/internal/services/web/platform/httpx"
	"github.com/louisbranch/activityboard/internal/services/web/platform/observability"
	"github.com/louisbranch/activityboard/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/activityboard/internal/services/web/routepath"
	webstatic "github.com/louisbranch/activityboard/internal/services/web/static"
)

// DefaultSessionIdleTTL is how long an unused board session is kept.
const DefaultSessionIdleTTL = 30 * time.Minute

// Config defines startup inputs for the board web service.
type Config struct {
	HTTPAddr string
	// AssetBaseURL is the origin the page loads htmx from. Empty serves a
	// page without scripts.
	AssetBaseURL string
	// LiveUpdates serves the live websocket and wires the page to it. The
	// page only connects when it also loads scripts from AssetBaseURL.
	LiveUpdates bool
	// Gateway is the activities API every session controller drives.
	Gateway             board.Gateway
	MessageTTL          time.Duration
	SessionIdleTTL      time.Duration
	TrustForwardedProto bool
	Catalog             *catalog.Bundle
	Logger              zerolog.Logger
}

// Server hosts the board HTTP surface and its sessions.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	sessions   *sessionStore
	logger     zerolog.Logger
}

// newHandler builds the root handler. The returned store must be swept and
// closed by the caller.
func newHandler(cfg Config) (http.Handler, *sessionStore, error) {
	if cfg.Gateway == nil {
		return nil, nil, errors.New("activities gateway is required")
	}
	bundle := cfg.Catalog
	if bundle == nil {
		bundle = catalog.Default()
	}
	messageTTL := cfg.MessageTTL
	if messageTTL <= 0 {
		messageTTL = board.DefaultMessageTTL
	}
	idleTTL := cfg.SessionIdleTTL
	if idleTTL <= 0 {
		idleTTL = DefaultSessionIdleTTL
	}
	logger := cfg.Logger

	sessions := newSessionStore(func(id string) *board.Controller {
		return board.New(cfg.Gateway,
			board.WithMessageTTL(messageTTL),
			board.WithLogger(logger.With().Str("session", id).Logger()),
		)
	}, idleTTL)
	policy := requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto}
	h := &handlers{
		sessions:     sessions,
		catalog:      bundle,
		assetBaseURL: strings.TrimSpace(cfg.AssetBaseURL),
		liveUpdates:  cfg.LiveUpdates,
		messageTTL:   messageTTL,
		cookieMaxAge: idleTTL,
		policy:       policy,
		logger:       logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+routepath.Health, handleHealth)
	mux.Handle("GET "+routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))
	mux.HandleFunc("GET "+routepath.Root+"{$}", h.handleIndex)
	mux.HandleFunc("GET "+routepath.BoardActivities, h.handleActivities)
	mux.HandleFunc("GET "+routepath.BoardMessage, h.handleMessage)
	if cfg.LiveUpdates {
		mux.HandleFunc("GET "+routepath.BoardLive, h.handleLive)
	}
	mux.HandleFunc("POST "+routepath.BoardSignup, h.handleSignup)
	mux.HandleFunc("POST "+routepath.BoardUnregisterPattern, h.handleUnregister)

	handler := httpx.Chain(mux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.RequestLogger(logger),
		httpx.SameOrigin(policy),
	)
	return handler, sessions, nil
}

// NewHandler builds the root handler for cfg. Sessions it creates are never
// swept; long-running processes should use NewServer.
func NewHandler(cfg Config) (http.Handler, error) {
	handler, _, err := newHandler(cfg)
	return handler, err
}

// NewServer validates config and constructs a board server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, sessions, err := newHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose board handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		sessions: sessions,
		logger:   cfg.Logger,
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("board server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sessions.run(sweepCtx, timeouts.SessionSweep, func(evicted int) {
		s.logger.Debug().Int("evicted", evicted).Msg("swept idle sessions")
	})
	defer s.sessions.closeAll()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info().Str("addr", s.httpAddr).Msg("board listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown board http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve board http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
	s.sessions.closeAll()
}
