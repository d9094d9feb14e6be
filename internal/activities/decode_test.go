package activities

import (
	"errors"
	"reflect"
	"slices"
	"testing"
)

func collectionNames(c Collection) []string {
	names := make([]string, 0, len(c))
	for _, activity := range c {
		names = append(names, activity.Name)
	}
	return names
}

func lookupActivity(c Collection, name string) (Activity, bool) {
	idx := slices.IndexFunc(c, func(a Activity) bool { return a.Name == name })
	if idx < 0 {
		return Activity{}, false
	}
	return c[idx], true
}

func TestDecodeCollectionPreservesSourceOrder(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"Soccer Team": {"description": "Play", "schedule": "Tue", "max_participants": 22, "participants": ["a@x.com"]},
		"Chess Club": {"description": "Think", "schedule": "Fri", "max_participants": 12, "participants": []},
		"Art Club": {"description": "Paint", "schedule": "Wed", "max_participants": 1, "participants": ["b@x.com", "c@x.com"]}
	}`)
	collection, err := DecodeCollection(body)
	if err != nil {
		t.Fatalf("DecodeCollection() error = %v", err)
	}
	want := []string{"Soccer Team", "Chess Club", "Art Club"}
	if got := collectionNames(collection); !reflect.DeepEqual(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	art, ok := lookupActivity(collection, "Art Club")
	if !ok {
		t.Fatalf("expected Art Club")
	}
	if art.SpotsLeft() != -1 {
		t.Fatalf("spots left = %d, want -1", art.SpotsLeft())
	}
	if art.Description != "Paint" || art.Schedule != "Wed" || art.MaxParticipants != 1 {
		t.Fatalf("unexpected activity: %+v", art)
	}
	if !slices.Contains(art.Participants, "c@x.com") {
		t.Fatalf("expected c@x.com on roster")
	}
}

func TestDecodeCollectionMissingParticipantsIsEmpty(t *testing.T) {
	t.Parallel()

	collection, err := DecodeCollection([]byte(`{"Drama": {"description": "d", "schedule": "s", "max_participants": 3}}`))
	if err != nil {
		t.Fatalf("DecodeCollection() error = %v", err)
	}
	if len(collection) != 1 {
		t.Fatalf("len = %d, want 1", len(collection))
	}
	if collection[0].Participants == nil || len(collection[0].Participants) != 0 {
		t.Fatalf("participants = %#v, want empty slice", collection[0].Participants)
	}
	if collection[0].SpotsLeft() != 3 {
		t.Fatalf("spots left = %d, want 3", collection[0].SpotsLeft())
	}
}

func TestDecodeCollectionEmptyObject(t *testing.T) {
	t.Parallel()

	collection, err := DecodeCollection([]byte(`{}`))
	if err != nil {
		t.Fatalf("DecodeCollection() error = %v", err)
	}
	if len(collection) != 0 {
		t.Fatalf("len = %d, want 0", len(collection))
	}
}

func TestDecodeCollectionRejectsMalformedPayloads(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>oops</html>`},
		{name: "array root", body: `[1, 2]`},
		{name: "activity not object", body: `{"Chess": 3}`},
		{name: "participants not list", body: `{"Chess": {"participants": "a@x.com"}}`},
		{name: "wrong field type", body: `{"Chess": {"max_participants": "ten"}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeCollection([]byte(tc.body))
			if !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("error = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestDecodeResultDetailShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantMsg    string
		wantDetail string
	}{
		{name: "message", body: `{"message": "Signed up"}`, wantMsg: "Signed up"},
		{name: "string detail", body: `{"detail": "Already registered"}`, wantDetail: "Already registered"},
		{name: "validation detail", body: `{"detail": [{"loc": ["query", "email"], "msg": "field required"}]}`, wantDetail: "field required"},
		{name: "null detail", body: `{"detail": null}`},
		{name: "no fields", body: `{}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			msg, detail, err := decodeResult([]byte(tc.body))
			if err != nil {
				t.Fatalf("decodeResult() error = %v", err)
			}
			if msg != tc.wantMsg || detail != tc.wantDetail {
				t.Fatalf("got (%q, %q), want (%q, %q)", msg, detail, tc.wantMsg, tc.wantDetail)
			}
		})
	}
}
