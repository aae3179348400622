package export

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kraitsura/nomofobia/pkg/loader"
	"github.com/kraitsura/nomofobia/pkg/model"
)

func newTestServer(t *testing.T, addr string) *PreviewServer {
	t.Helper()
	g, err := loader.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	p, err := NewPreviewServer(addr, g, nil)
	if err != nil {
		t.Fatalf("NewPreviewServer: %v", err)
	}
	return p
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestPreviewServerRoutes(t *testing.T) {
	p := newTestServer(t, "127.0.0.1:0")
	h := p.Handler()

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/", http.StatusOK, "Consciente"},
		{"/index.html", http.StatusOK, "Consciente"},
		{"/v/clasica", http.StatusOK, "Clásica"},
		{"/v/moderna", http.StatusOK, `id="progress"`},
		{"/moderna.html", http.StatusOK, "Moderna"},
		{"/v/retro", http.StatusNotFound, "unknown variant"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, h, tt.path)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body missing %q", tt.want)
			}
		})
	}
}

func TestPreviewServerNoCacheHeaders(t *testing.T) {
	rec := get(t, newTestServer(t, "127.0.0.1:0").Handler(), "/")
	if got := rec.Header().Get("Pragma"); got != "no-cache" {
		t.Errorf("Pragma = %q", got)
	}
	if rec.Header().Get("Cache-Control") == "" {
		t.Error("expected Cache-Control header")
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestPreviewServerStatusAndReload(t *testing.T) {
	p := newTestServer(t, "127.0.0.1:0")

	g, err := loader.LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	g.Brand.Name = "Recargada"
	p.SetGuide(g)

	rec := get(t, p.Handler(), "/__preview__/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var st previewStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Status != "running" || st.Brand != "Recargada" || st.Reloads != 1 {
		t.Errorf("status = %+v", st)
	}
	if len(st.Sections) != 6 || len(st.Variants) != len(model.Variants()) {
		t.Errorf("status = %+v", st)
	}

	if body := get(t, p.Handler(), "/").Body.String(); !strings.Contains(body, "Recargada") {
		t.Error("page not rendered from the reloaded guide")
	}
}

func TestPreviewServerRunShutsDown(t *testing.T) {
	p := newTestServer(t, "127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for p.Addr() == "127.0.0.1:0" && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	resp, err := http.Get(p.URL() + "/__preview__/status")
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), `"status":"running"`) {
		t.Errorf("body = %s", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestPreviewServerRunBadAddr(t *testing.T) {
	p := newTestServer(t, "256.0.0.1:bad")
	if err := p.Run(context.Background()); err == nil {
		t.Error("expected listen error")
	}
}
