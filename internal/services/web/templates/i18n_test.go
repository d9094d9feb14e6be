package templates

import (
	"testing"

	"github.com/louisbranch/activityboard/internal/board"
	"github.com/louisbranch/activityboard/internal/platform/i18n/catalog"
)

func TestT_NilLocalizer(t *testing.T) {
	got := T(nil, "some.key")
	if got != "some.key" {
		t.Fatalf("T(nil, ...) = %q, want %q", got, "some.key")
	}
}

func TestT_NilLocalizerNonStringKey(t *testing.T) {
	got := T(nil, 42)
	if got != "" {
		t.Fatalf("T(nil, 42) = %q, want empty", got)
	}
}

func TestT_CatalogPrinterFormatsArguments(t *testing.T) {
	t.Parallel()

	loc := catalog.Default().Printer(catalog.BaseLocale)
	if got := T(loc, "board.card.availability", 3); got != "3 spots left" {
		t.Fatalf("availability = %q", got)
	}
}

func TestMessageText(t *testing.T) {
	t.Parallel()

	loc := catalog.Default().Printer(catalog.BaseLocale)
	if got := MessageText(loc, board.Message{Kind: board.MessageSuccess, Text: "Signed up a@x.com for Chess Club"}); got != "Signed up a@x.com for Chess Club" {
		t.Fatalf("server text = %q", got)
	}
	if got := MessageText(loc, board.Message{Kind: board.MessageError, Key: board.KeySignupError}); got != "An error occurred" {
		t.Fatalf("keyed text = %q", got)
	}
	if got := MessageText(loc, board.Message{}); got != "" {
		t.Fatalf("empty message = %q", got)
	}
}
