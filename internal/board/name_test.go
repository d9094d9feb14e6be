package board

import "testing"

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want string
	}{
		{id: "jane.doe@example.com", want: "Jane Doe"},
		{id: "bob_smith-99@x.com", want: "Bob Smith 99"},
		{id: "", want: ""},
		{id: "x@y.com", want: "X"},
		{id: "@example.com", want: ""},
		{id: "..__@example.com", want: ""},
		{id: "a..b@x.com", want: "A B"},
		{id: "first+tag@x.com", want: "First Tag"},
		{id: "no-at-sign", want: "No At Sign"},
		{id: "MiXed.CASE@x.com", want: "MiXed CASE"},
		{id: "a@b@c.com", want: "A"},
		{id: "élodie.martin@x.com", want: "élodie Martin"},
	}
	for _, tc := range tests {
		if got := DisplayName(tc.id); got != tc.want {
			t.Fatalf("DisplayName(%q) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestLabelFallsBackToIdentifier(t *testing.T) {
	t.Parallel()

	if got := Label("@example.com"); got != "@example.com" {
		t.Fatalf("Label() = %q, want raw identifier", got)
	}
	if got := Label("jane.doe@example.com"); got != "Jane Doe" {
		t.Fatalf("Label() = %q, want %q", got, "Jane Doe")
	}
}

func TestInitial(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want string
	}{
		{id: "jane.doe@example.com", want: "J"},
		{id: "@example.com", want: "@"},
		{id: "", want: ""},
		{id: "élodie@x.com", want: "é"},
		{id: "-@x.com", want: "-"},
	}
	for _, tc := range tests {
		if got := Initial(tc.id); got != tc.want {
			t.Fatalf("Initial(%q) = %q, want %q", tc.id, got, tc.want)
		}
	}
}
