package board

import (
	"strings"
	"unicode/utf8"
)

// DisplayName derives a readable name from a participant identifier, e.g.
// "jane.doe@example.com" becomes "Jane Doe". It returns "" when the local
// part has no usable fragments; callers then show the raw identifier.
func DisplayName(id string) string {
	if id == "" {
		return ""
	}
	local, _, _ := strings.Cut(id, "@")
	fragments := strings.FieldsFunc(local, isNameDelimiter)
	for i, fragment := range fragments {
		fragments[i] = capitalizeASCII(fragment)
	}
	return strings.Join(fragments, " ")
}

// Label returns the display name, or the raw identifier when none derives.
func Label(id string) string {
	if name := DisplayName(id); name != "" {
		return name
	}
	return id
}

// Initial returns the first character of the display name, falling back to
// the first character of the raw identifier.
func Initial(id string) string {
	source := DisplayName(id)
	if source == "" {
		source = id
	}
	r, size := utf8.DecodeRuneInString(source)
	if size == 0 {
		return ""
	}
	if r == utf8.RuneError {
		return source[:size]
	}
	return string(r)
}

func isNameDelimiter(r rune) bool {
	switch r {
	case '.', '_', '+', '-':
		return true
	default:
		return false
	}
}

func capitalizeASCII(fragment string) string {
	if fragment == "" {
		return fragment
	}
	first := fragment[0]
	if first < 'a' || first > 'z' {
		return fragment
	}
	return string(first-'a'+'A') + fragment[1:]
}
