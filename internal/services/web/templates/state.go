package templates

import (
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/activityboard/internal/board"
)

// Element ids shared by full-page and fragment rendering.
const (
	ActivitiesListID = "activities-list"
	ActivitySelectID = "activity"
	EmailInputID     = "email"
	MessageID        = "message"
	SignupFormID     = "signup-form"
)

const (
	htmxScript   = "/htmx.org@2.0.4/dist/htmx.min.js"
	htmxWSScript = "/htmx-ext-ws@2.0.2/ws.js"
)

// PageContext carries page-level settings.
type PageContext struct {
	Lang         string
	AssetBaseURL string
	// Live asks the page to open the live websocket. It needs the htmx
	// scripts, so it has no effect without an AssetBaseURL.
	Live bool
}

// ScriptBase is the asset origin without a trailing slash.
func (p PageContext) ScriptBase() string {
	return strings.TrimRight(p.AssetBaseURL, "/")
}

// LiveEnabled reports whether the page connects to the live websocket.
func (p PageContext) LiveEnabled() bool {
	return p.Live && p.ScriptBase() != ""
}

// BoardState is what board components render from.
type BoardState struct {
	Loc        Localizer
	Snapshot   board.Snapshot
	MessageTTL time.Duration
}

// Busy reports an in-flight refresh.
func (s BoardState) Busy() bool {
	return s.Snapshot.Phase == board.PhaseLoading
}

// HidePending reports whether the message region must poll for its own hide.
func (s BoardState) HidePending() bool {
	return s.Snapshot.MessageVisible && s.MessageTTL > 0
}

func messageClass(snapshot board.Snapshot) string {
	if !snapshot.MessageVisible {
		return "hidden"
	}
	return string(snapshot.Message.Kind)
}

func hideTrigger(ttl time.Duration) string {
	return "load delay:" + strconv.FormatInt(ttl.Milliseconds(), 10) + "ms"
}
