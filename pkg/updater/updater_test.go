package updater

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsNewer(t *testing.T) {
	tests := []struct {
		tag, current string
		want         bool
	}{
		{"v0.3.1", "v0.3.0", true},
		{"v0.10.0", "v0.9.0", true},
		{"v0.3.0", "v0.3.0", false},
		{"v0.2.9", "v0.3.0", false},
		{"v1.0.0", "v1.0.0-rc.1", true},
		{"v1.0.0", "dev", false},
		{"latest", "v0.3.0", false},
	}
	for _, tt := range tests {
		if got := IsNewer(tt.tag, tt.current); got != tt.want {
			t.Errorf("IsNewer(%q, %q) = %v, want %v", tt.tag, tt.current, got, tt.want)
		}
	}
}

func TestCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tag_name":"v0.4.0","html_url":"https://example.com/r/v0.4.0"}`))
	}))
	defer srv.Close()

	c := Checker{Client: srv.Client(), URL: srv.URL}
	rel, newer, err := c.Check(context.Background(), "v0.3.0")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !newer || rel.TagName != "v0.4.0" || rel.HTMLURL == "" {
		t.Errorf("got %+v newer=%v", rel, newer)
	}

	_, newer, err = c.Check(context.Background(), "v0.4.0")
	if err != nil || newer {
		t.Errorf("same version: newer=%v err=%v", newer, err)
	}
}

func TestCheckErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	_, _, err := Checker{Client: srv.Client(), URL: srv.URL}.Check(context.Background(), "v0.3.0")
	if err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}

func TestCheckCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Checker{URL: "http://127.0.0.1:1"}.Check(ctx, "v0.3.0")
	if err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}
