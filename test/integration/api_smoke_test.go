package integration_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/SodiqOgundairo/condolence-backend/internal/app/apiapp"
	"github.com/SodiqOgundairo/condolence-backend/internal/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	cfg.HTTP.Addr = ":0"
	// No postgres/redis/s3 behind these endpoints; the app runs degraded.
	cfg.Postgres.DSN = "postgres://nobody@127.0.0.1:1/none"

	app, err := apiapp.New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("create app: %v", err)
	}

	ts := httptest.NewServer(app.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", resp.StatusCode, http.StatusOK)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != "ok" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/admin/messages", "/admin/photos", "/admin/gifts"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		func() {
			defer func() { _ = resp.Body.Close() }()

			if resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("%s status = %d, want %d", path, resp.StatusCode, http.StatusUnauthorized)
			}

			var payload struct {
				Code string `json:"code"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
				t.Fatalf("decode %s response: %v", path, err)
			}
			if payload.Code != "UNAUTHORIZED" {
				t.Fatalf("%s code = %q, want UNAUTHORIZED", path, payload.Code)
			}
		}()
	}
}
