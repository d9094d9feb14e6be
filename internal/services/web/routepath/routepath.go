// Package routepath stores canonical HTTP paths for the board.
package routepath

import "net/url"

const (
	Root                   = "/"
	Health                 = "/healthz"
	StaticPrefix           = "/static/"
	BoardActivities        = "/board/activities"
	BoardMessage           = "/board/message"
	BoardSignup            = "/board/signup"
	BoardLive              = "/board/live"
	BoardActivityPrefix    = BoardActivities + "/"
	BoardUnregisterPattern = BoardActivityPrefix + "{name}/unregister"
)

// BoardUnregister returns the unregister route for one participant of one
// activity. The activity travels as a path segment and the participant as the
// email query parameter.
func BoardUnregister(activity string, email string) string {
	return BoardActivityPrefix + url.PathEscape(activity) + "/unregister?" + url.Values{"email": {email}}.Encode()
}

// Stylesheet returns the path of an embedded stylesheet.
func Stylesheet(name string) string {
	return StaticPrefix + url.PathEscape(name)
}
