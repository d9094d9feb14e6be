package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if !bundle.HasLocale(BaseLocale) {
		t.Fatalf("expected base locale %s", BaseLocale)
	}
	if !bundle.HasLocale("pt-BR") {
		t.Fatalf("expected locale pt-BR")
	}
	locales := bundle.Locales()
	if len(locales) == 0 || locales[0] != BaseLocale {
		t.Fatalf("locales = %v, want base locale first", locales)
	}
}

func TestEmbeddedLocalesDefineSameKeys(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	base := bundle.locales[BaseLocale]
	for _, locale := range bundle.Locales() {
		messages := bundle.locales[locale]
		for key := range base {
			if _, ok := messages[key]; !ok {
				t.Fatalf("locale %s missing key %q", locale, key)
			}
		}
	}
}

func TestPrinterFormatsCatalogKeys(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if got := bundle.Printer("en-US").Sprintf("board.card.availability", 3); got != "3 spots left" {
		t.Fatalf("en-US availability = %q", got)
	}
	if got := bundle.Printer("pt-BR").Sprintf("board.card.availability", -1); got != "-1 vagas restantes" {
		t.Fatalf("pt-BR availability = %q", got)
	}
	if got := bundle.Printer("fr-FR").Sprintf("board.card.no_participants"); got != "No participants yet" {
		t.Fatalf("fallback printer = %q", got)
	}
}

func TestMatchAcceptLanguage(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: BaseLocale},
		{header: "pt-BR,pt;q=0.9", want: "pt-BR"},
		{header: "pt", want: "pt-BR"},
		{header: "en-GB", want: BaseLocale},
		{header: "ja", want: BaseLocale},
		{header: ";;;", want: BaseLocale},
	}
	for _, tc := range tests {
		if got := bundle.Match(tc.header); got != tc.want {
			t.Fatalf("Match(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	value, ok := bundle.Message("fr-FR", "board.signup.submit")
	if !ok || value != "Sign Up" {
		t.Fatalf("Message() = %q, %v", value, ok)
	}
	if _, ok := bundle.Message(BaseLocale, "board.missing"); ok {
		t.Fatal("expected missing key")
	}
}

func TestLoadFromFSRejectsKeyOutsideNamespace(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/board.yaml"), `locale: "en-US"
namespace: "board"
messages:
  "other.bad": "nope"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRejectsLocaleMismatch(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/board.yaml"), `locale: "pt-BR"
namespace: "board"
messages:
  "board.a": "a"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected locale mismatch error")
	}
}

func TestLoadFromFSRejectsUnknownFields(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/board.yaml"), `locale: "en-US"
namespace: "board"
extra: true
messages:
  "board.a": "a"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected strict parse error")
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/pt-BR/board.yaml"), `locale: "pt-BR"
namespace: "board"
messages:
  "board.a": "a"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected missing base locale error")
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
