package gateway_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coalesced/batchkv/gateway"
	"github.com/coalesced/batchkv/observability"
)

func newGateway(t *testing.T) *gateway.Gateway {
	t.Helper()
	cfg := gateway.DefaultConfig()
	g, err := gateway.New(&cfg, gateway.WithObserver(observability.NoOpObserver{}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = g.Close() })
	return g
}

func do(t *testing.T, g *gateway.Gateway, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	g.Handler().ServeHTTP(rec, req)
	return rec
}

func TestGateway_Health(t *testing.T) {
	g := newGateway(t)

	rec := do(t, g, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("GET /health status = %d, want 200", rec.Code)
	}
}

func TestGateway_PutGetDelete(t *testing.T) {
	g := newGateway(t)

	rec := do(t, g, http.MethodPut, "/keys/greeting", `{"text":"hello"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PUT status = %d, want 204 (body: %s)", rec.Code, rec.Body)
	}

	rec = do(t, g, http.MethodGet, "/keys/greeting", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200 (body: %s)", rec.Code, rec.Body)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"text":"hello"}` {
		t.Errorf("GET body = %s, want {\"text\":\"hello\"}", got)
	}

	rec = do(t, g, http.MethodDelete, "/keys/greeting", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want 204", rec.Code)
	}

	rec = do(t, g, http.MethodGet, "/keys/greeting", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET after delete status = %d, want 404", rec.Code)
	}
}

func TestGateway_GetMissingKey(t *testing.T) {
	g := newGateway(t)

	rec := do(t, g, http.MethodGet, "/keys/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET missing key status = %d, want 404", rec.Code)
	}
}

func TestGateway_PutRejectsInvalidJSON(t *testing.T) {
	g := newGateway(t)

	rec := do(t, g, http.MethodPut, "/keys/bad", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("PUT invalid body status = %d, want 400", rec.Code)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := gateway.DefaultConfig()

	if cfg.Listen != ":8080" {
		t.Errorf("got Listen %q, want :8080", cfg.Listen)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("got Store.Backend %q, want memory", cfg.Store.Backend)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"listen": ":9090",
		"coalesce": {"expire_seconds": 120},
		"store": {"backend": "redis", "addr": "localhost:6379"}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := gateway.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Listen != ":9090" {
		t.Errorf("got Listen %q, want :9090", cfg.Listen)
	}
	if cfg.Coalesce.ExpireSeconds != 120 {
		t.Errorf("got ExpireSeconds %d, want 120", cfg.Coalesce.ExpireSeconds)
	}
	if cfg.Coalesce.FlushDelayMS != 1 {
		t.Errorf("got FlushDelayMS %d, want default 1", cfg.Coalesce.FlushDelayMS)
	}
	if cfg.Store.Addr != "localhost:6379" {
		t.Errorf("got Store.Addr %q, want localhost:6379", cfg.Store.Addr)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := gateway.LoadConfig("/nonexistent/config.json"); err == nil {
		t.Error("LoadConfig(missing) error = nil, want error")
	}
}
