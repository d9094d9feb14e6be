package observability

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestRequestLoggerLogsMethodAndPath(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := RequestLogger(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/board/activities", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}

	entry := decodeLine(t, &buf)
	if entry["method"] != "GET" || entry["path"] != "/board/activities" || entry["request_id"] != "req-123" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["status"] != float64(http.StatusNoContent) {
		t.Fatalf("status field = %v", entry["status"])
	}
}

func TestRequestLoggerCapturesImplicitStatusOKAndBytes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := RequestLogger(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	entry := decodeLine(t, &buf)
	if entry["status"] != float64(http.StatusOK) || entry["bytes"] != float64(2) {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry["latency"]; !ok {
		t.Fatalf("latency missing: %v", entry)
	}
	if entry["request_id"] != "-" {
		t.Fatalf("request_id = %v, want -", entry["request_id"])
	}
}

func TestStatusRecorderReportsMissingHijacker(t *testing.T) {
	t.Parallel()

	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder()}
	if _, _, err := rec.Hijack(); err == nil {
		t.Fatal("expected hijack error from recorder without hijacker")
	}
}
