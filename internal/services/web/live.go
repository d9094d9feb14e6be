package web

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"golang.org/x/net/websocket"

	"github.com/louisbranch/activityboard/internal/board"
	"github.com/louisbranch/activityboard/internal/platform/timeouts"
	apperrors "github.com/louisbranch/activityboard/internal/services/web/platform/errors"
	"github.com/louisbranch/activityboard/internal/services/web/platform/httpx"
	"github.com/louisbranch/activityboard/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/activityboard/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/activityboard/internal/services/web/templates"
)

var (
	errCrossOriginLive = errors.New("cross-origin live connection rejected")
	errSessionNotFound = apperrors.EK(apperrors.KindNotFound, "board.error.session_not_found", "session not found")
)

// handleLive upgrades to a websocket that pushes out-of-band board
// fragments after every controller change. Only existing sessions may
// connect.
func (h *handlers) handleLive(w http.ResponseWriter, r *http.Request) {
	id, ok := sessioncookie.Read(r)
	if !ok {
		h.writeError(w, r, errSessionNotFound)
		return
	}
	sess, ok := h.sessions.lookup(id)
	if !ok {
		h.writeError(w, r, errSessionNotFound)
		return
	}
	server := websocket.Server{
		Handshake: func(_ *websocket.Config, req *http.Request) error {
			if requestmeta.IsCrossOrigin(req, h.policy) {
				return errCrossOriginLive
			}
			return nil
		},
		Handler: func(conn *websocket.Conn) {
			h.serveLive(conn, r, sess)
		},
	}
	server.ServeHTTP(w, r)
}

func (h *handlers) serveLive(conn *websocket.Conn, r *http.Request, sess *session) {
	defer func() {
		_ = conn.Close()
	}()
	h.sessions.attach(sess)
	defer h.sessions.detach(sess)

	changed := make(chan struct{}, 1)
	unsubscribe := sess.controller.Subscribe(func(board.Snapshot) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()
	// Push the current state once so the page catches up on connect. A
	// change that raced the subscription already queued a push.
	select {
	case changed <- struct{}{}:
	default:
	}

	// The page never sends frames; reading only detects the close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		var discard string
		for {
			if err := websocket.Message.Receive(conn, &discard); err != nil {
				return
			}
		}
	}()

	logger := h.logger.With().Str("request_id", httpx.RequestIDFrom(r)).Logger()
	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-changed:
			_, state := h.boardState(r, sess.controller.Snapshot())
			var buf bytes.Buffer
			if err := templates.BoardUpdate(state).Render(r.Context(), &buf); err != nil {
				logger.Error().Err(err).Msg("render live update")
				return
			}
			if err := conn.SetWriteDeadline(time.Now().Add(timeouts.LiveWrite)); err != nil {
				return
			}
			if err := websocket.Message.Send(conn, buf.String()); err != nil {
				logger.Debug().Err(err).Msg("send live update")
				return
			}
		}
	}
}
