// Package pagerender writes full-page or fragment responses depending on
// whether htmx issued the request.
package pagerender

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/activityboard/internal/services/web/platform/httpx"
)

// Page describes one response for both full-page and htmx flows.
type Page struct {
	StatusCode int
	// Layout wraps Body for full-page responses. A nil Layout sends Body
	// alone.
	Layout templ.Component
	Body   templ.Component
	// Fragment is sent to htmx requests. A nil Fragment falls back to the
	// full page.
	Fragment templ.Component
}

// Write renders page into a buffer and writes it. Nothing is written when
// rendering fails.
func Write(w http.ResponseWriter, r *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	ctx := r.Context()
	component := page.Layout
	switch {
	case httpx.IsHTMXRequest(r) && page.Fragment != nil:
		component = page.Fragment
	case page.Layout != nil && page.Body != nil:
		ctx = templ.WithChildren(ctx, page.Body)
	case page.Layout == nil:
		component = page.Body
	}
	if component == nil {
		w.WriteHeader(statusCode)
		return nil
	}

	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err := w.Write(buf.Bytes())
	return err
}
