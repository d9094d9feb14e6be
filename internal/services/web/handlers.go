package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"

	"github.com/louisbranch/activityboard/internal/board"
	"github.com/louisbranch/activityboard/internal/platform/i18n/catalog"
	apperrors "github.com/louisbranch/activityboard/internal/services/web/platform/errors"
	"github.com/louisbranch/activityboard/internal/services/web/platform/httpx"
	"github.com/louisbranch/activityboard/internal/services/web/platform/pagerender"
	"github.com/louisbranch/activityboard/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/activityboard/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/activityboard/internal/services/web/routepath"
	"github.com/louisbranch/activityboard/internal/services/web/templates"
)

type handlers struct {
	sessions     *sessionStore
	catalog      *catalog.Bundle
	assetBaseURL string
	liveUpdates  bool
	messageTTL   time.Duration
	cookieMaxAge time.Duration
	policy       requestmeta.SchemePolicy
	logger       zerolog.Logger
}

// session resolves the caller's session and issues a cookie for new ones.
func (h *handlers) session(w http.ResponseWriter, r *http.Request) *session {
	id, _ := sessioncookie.Read(r)
	sess, created := h.sessions.acquire(id)
	if created {
		sessioncookie.Write(w, r, sess.id, h.cookieMaxAge, h.policy)
	}
	return sess
}

func (h *handlers) locale(r *http.Request) (string, templates.Localizer) {
	locale := h.catalog.Match(r.Header.Get("Accept-Language"))
	return locale, h.catalog.Printer(locale)
}

// writeError sends err with copy localized for the request.
func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	_, loc := h.locale(r)
	httpx.WriteLocalizedError(w, err, loc)
}

func (h *handlers) boardState(r *http.Request, snapshot board.Snapshot) (string, templates.BoardState) {
	locale, loc := h.locale(r)
	return locale, templates.BoardState{Loc: loc, Snapshot: snapshot, MessageTTL: h.messageTTL}
}

func (h *handlers) layout(locale string, state templates.BoardState) templ.Component {
	return templates.Layout(templates.PageContext{
		Lang:         locale,
		AssetBaseURL: h.assetBaseURL,
		Live:         h.liveUpdates,
	}, state.Loc)
}

// write renders a board response: fragment for htmx, full page otherwise.
func (h *handlers) write(w http.ResponseWriter, r *http.Request, snapshot board.Snapshot, fragment func(templates.BoardState) templ.Component) {
	locale, state := h.boardState(r, snapshot)
	page := pagerender.Page{
		Layout: h.layout(locale, state),
		Body:   templates.BoardMain(state),
	}
	if fragment != nil {
		page.Fragment = fragment(state)
	}
	if err := pagerender.Write(w, r, page); err != nil {
		h.logger.Error().Err(err).Str("path", r.URL.Path).Str("request_id", httpx.RequestIDFrom(r)).Msg("render board")
		h.writeError(w, r, err)
	}
}

func (h *handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	sess.controller.Refresh(r.Context())
	h.write(w, r, sess.controller.Snapshot(), nil)
}

func (h *handlers) handleActivities(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	sess.controller.Refresh(r.Context())
	h.write(w, r, sess.controller.Snapshot(), templates.ActivitiesUpdate)
}

func (h *handlers) handleMessage(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	h.write(w, r, sess.controller.Snapshot(), func(state templates.BoardState) templ.Component {
		return templates.MessageRegion(state, false)
	})
}

func (h *handlers) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, apperrors.EK(apperrors.KindInvalidInput, "board.error.invalid_form", "invalid form submission"))
		return
	}
	form := board.SignupForm{
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Activity: r.PostForm.Get("activity"),
	}
	if form.Email == "" || form.Activity == "" {
		h.writeError(w, r, apperrors.EK(apperrors.KindInvalidInput, "board.error.signup_fields", "email and activity are required"))
		return
	}
	sess := h.session(w, r)
	sess.controller.Submit(r.Context(), form)
	h.write(w, r, sess.controller.Snapshot(), templates.SignupUpdate)
}

func (h *handlers) handleUnregister(w http.ResponseWriter, r *http.Request) {
	activity := r.PathValue("name")
	email := r.URL.Query().Get("email")
	if activity == "" || email == "" {
		h.writeError(w, r, apperrors.EK(apperrors.KindInvalidInput, "board.error.unregister_fields", "activity and email are required"))
		return
	}
	sess := h.session(w, r)
	sess.controller.Unregister(r.Context(), activity, email)
	if !httpx.IsHTMXRequest(r) {
		httpx.WriteRedirect(w, r, routepath.Root)
		return
	}
	h.write(w, r, sess.controller.Snapshot(), templates.BoardUpdate)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
