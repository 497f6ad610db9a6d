package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vlx/internal/bootstrap"
	catalogdomain "vlx/internal/modules/catalog/domain"
	"vlx/internal/platform/clock"
	"vlx/internal/platform/id"
	"vlx/internal/platform/kv"
	"vlx/internal/platform/logging"
)

type staticSource []catalogdomain.Lab

func (s staticSource) List(context.Context) ([]catalogdomain.Lab, error) {
	return append([]catalogdomain.Lab(nil), s...), nil
}

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	labs := staticSource{{
		ID:     "optics",
		Title:  "Refraction",
		Branch: "physics",
		Tools:  []catalogdomain.Tool{{ID: "laser"}, {ID: "prism"}, {ID: "lens"}, {ID: "screen"}},
		Parameters: []catalogdomain.ParameterSpec{
			{Name: "angle", Unit: "deg", Min: 0, Max: 90},
			{Name: "index", Min: 1, Max: 2, Default: 1},
		},
	}}
	app := bootstrap.Wire(bootstrap.Deps{
		Store: kv.NewMemoryStore(),
		Labs:  labs,
		Clock: clock.Fixed(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)),
		IDs:   id.UUID{},
		Log:   logging.Discard(),
	})
	t.Cleanup(func() { _ = app.Close() })
	return app.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("%s %s: content type = %q", method, path, ct)
	}
	var out map[string]any
	trimmed := bytes.TrimSpace(rec.Body.Bytes())
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return rec.Code, out
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	t.Parallel()
	h := newHandler(t)

	if code, body := do(t, h, http.MethodPost, "/labs/optics/enter", `{"tools":["laser"]}`); code != http.StatusUnprocessableEntity || body["code"] != "missing_mode" {
		t.Fatalf("enter without mode: %d %v", code, body)
	}
	if code, body := do(t, h, http.MethodGet, "/labs/optics/workplace", ""); code != http.StatusUnprocessableEntity {
		t.Fatalf("workplace before entering: %d %v", code, body)
	}
	if code, body := do(t, h, http.MethodGet, "/labs/optics/entrance", ""); code != http.StatusOK || body["mode"] != "" {
		t.Fatalf("rejected config must not persist: %d %v", code, body)
	}

	code, body := do(t, h, http.MethodPost, "/labs/optics/enter", `{"mode":"team","difficulty":1,"tools":["laser","prism","lens"]}`)
	if code != http.StatusOK || body["mode"] != "team" {
		t.Fatalf("enter: %d %v", code, body)
	}
	code, body = do(t, h, http.MethodGet, "/labs/optics/workplace", "")
	if code != http.StatusOK || body["progress"] != float64(30) {
		t.Fatalf("open workplace: %d %v", code, body)
	}
	if code, body := do(t, h, http.MethodPost, "/labs/optics/complete", `{"score":90}`); code != http.StatusConflict || body["code"] != "not_ready" {
		t.Fatalf("early completion: %d %v", code, body)
	}

	do(t, h, http.MethodPut, "/labs/optics/workplace/parameters/0", `{"value":90}`)
	code, body = do(t, h, http.MethodPut, "/labs/optics/workplace/parameters/1", `{"value":5}`)
	if code != http.StatusOK || body["progress"] != float64(80) || body["ready"] != true {
		t.Fatalf("set parameters: %d %v", code, body)
	}

	code, body = do(t, h, http.MethodPost, "/labs/optics/complete", `{"score":88}`)
	if code != http.StatusOK {
		t.Fatalf("complete: %d %v", code, body)
	}
	result, _ := body["result"].(map[string]any)
	if result["score"] != float64(88) || result["labTitle"] != "Refraction" {
		t.Fatalf("unexpected result: %v", body)
	}

	if code, body := do(t, h, http.MethodPost, "/labs/optics/workplace/tools/screen", ""); code != http.StatusConflict || body["code"] != "session_completed" {
		t.Fatalf("mutation after completion: %d %v", code, body)
	}
	if code, body := do(t, h, http.MethodGet, "/results/latest", ""); code != http.StatusOK || body["score"] != float64(88) {
		t.Fatalf("latest result: %d %v", code, body)
	}
}

func TestEntrancePatchAndErrors(t *testing.T) {
	t.Parallel()
	h := newHandler(t)
	code, body := do(t, h, http.MethodPut, "/labs/optics/entrance", `{"mode":"solo","toggleTools":["laser","prism","lens","screen"],"sustainability":true}`)
	if code != http.StatusOK {
		t.Fatalf("patch entrance: %d %v", code, body)
	}
	if tools, _ := body["tools"].([]any); len(tools) != 3 || body["sustainability"] != true {
		t.Fatalf("expected three tools and sustainability, got %v", body)
	}
	if code, _ := do(t, h, http.MethodGet, "/labs/chemistry", ""); code != http.StatusNotFound {
		t.Fatalf("unknown lab: %d", code)
	}
	if code, body := do(t, h, http.MethodPut, "/labs/optics/entrance", `{"difficulty":`); code != http.StatusBadRequest || body["code"] != "invalid_input" {
		t.Fatalf("bad json: %d %v", code, body)
	}
	if code, _ := do(t, h, http.MethodPut, "/labs/optics/workplace/parameters/x", `{"value":1}`); code != http.StatusBadRequest {
		t.Fatalf("bad index: %d", code)
	}
	if code, _ := do(t, h, http.MethodGet, "/results/latest", ""); code != http.StatusNotFound {
		t.Fatalf("latest on empty history: %d", code)
	}
}

func TestListLabsAndSettings(t *testing.T) {
	t.Parallel()
	h := newHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/labs?branch=physics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var labs []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&labs); err != nil {
		t.Fatalf("decode labs: %v", err)
	}
	if rec.Code != http.StatusOK || len(labs) != 1 || labs[0]["id"] != "optics" {
		t.Fatalf("list labs: %d %v", rec.Code, labs)
	}

	code, body := do(t, h, http.MethodPut, "/settings", `{"fontSize":99,"highContrast":true}`)
	if code != http.StatusOK || body["fontSize"] != float64(20) || body["highContrast"] != true || body["hapticIntensity"] != float64(1) {
		t.Fatalf("update settings: %d %v", code, body)
	}
	if code, body := do(t, h, http.MethodGet, "/settings", ""); code != http.StatusOK || body["fontSize"] != float64(20) {
		t.Fatalf("get settings: %d %v", code, body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	h := newHandler(t)

	do(t, h, http.MethodPost, "/labs/optics/enter", `{"mode":"solo","tools":["laser"]}`)
	do(t, h, http.MethodGet, "/labs/optics/workplace", "")
	if code, _ := do(t, h, http.MethodPost, "/labs/optics/complete", `{"score":50}`); code != http.StatusConflict {
		t.Fatalf("complete: %d", code)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	text := rec.Body.String()
	for _, want := range []string{
		`vlx_session_completions_total{outcome="not_ready"} 1`,
		`vlx_http_requests_total{method="POST",route="/labs/{labID}/complete",status="409"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}
