package templates

import (
	"fmt"

	"golang.org/x/text/message"

	"github.com/louisbranch/activityboard/internal/board"
)

// Localizer provides translated strings for board components.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T returns a translated string or a key-derived fallback.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	if keyString, ok := key.(string); ok {
		if len(args) > 0 {
			return fmt.Sprintf(keyString, args...)
		}
		return keyString
	}
	return ""
}

// MessageText returns the text of a board message. Server-provided text is
// shown verbatim; otherwise the message key is localized.
func MessageText(loc Localizer, msg board.Message) string {
	if msg.Text != "" {
		return msg.Text
	}
	if msg.Key == "" {
		return ""
	}
	return T(loc, msg.Key)
}
