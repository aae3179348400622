package main_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kraitsura/nomofobia/pkg/tuitest"
)

func runTUI(t *testing.T, args []string, steps ...tuitest.Step) *tuitest.Recording {
	t.Helper()
	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: append([]string{binPath, "--no-alt-screen"}, args...),
		Env:     testEnv(t),
		Width:   120,
		Height:  36,
		Steps:   steps,
		Timeout: 15 * time.Second,
	})
	if err != nil {
		t.Fatalf("run TUI: %v", err)
	}
	return rec
}

func TestTUINavigatesAndQuits(t *testing.T) {
	rec := runTUI(t, nil,
		tuitest.Keys(time.Second, "4"),
		tuitest.Keys(500*time.Millisecond, ""),
		tuitest.Keys(0, "q"),
	)

	if !rec.Contains("Nomofobia consciente") {
		t.Error("header never drawn")
	}
	if !rec.Contains("Causas frecuentes") {
		t.Error("causes section never shown")
	}
	if _, ok := rec.FinalFrame(); !ok {
		t.Fatal("no frames captured")
	}
	if !rec.Contains("🧠 Causas") {
		t.Error("active section never named in the status bar")
	}
}

func TestTUIHelpOverlay(t *testing.T) {
	rec := runTUI(t, []string{"--variant", "consciente"},
		tuitest.Keys(time.Second, "?"),
		tuitest.Keys(500*time.Millisecond, "x"),
		tuitest.Keys(200*time.Millisecond, "q"),
	)
	if !rec.Contains("Atajos de teclado") {
		t.Error("help overlay not drawn")
	}
	if !rec.Contains("autoevaluación") {
		t.Error("consciente help should list the assessment")
	}
}

func TestTUIReloadsWatchedContent(t *testing.T) {
	tests := []struct {
		name string
		// arg returns the --content value for a guide written to file.
		arg func(file string) string
	}{
		{"file", func(file string) string { return file }},
		{"directory", filepath.Dir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "guide.yaml")
			if err := os.WriteFile(file, []byte(minimalGuide), 0o644); err != nil {
				t.Fatal(err)
			}

			go func() {
				time.Sleep(time.Second)
				updated := strings.Replace(minimalGuide, "name: Mínima", "name: Renovada", 1)
				_ = os.WriteFile(file, []byte(updated), 0o644)
			}()

			rec := runTUI(t, []string{"--content", tt.arg(file), "--watch"},
				tuitest.Keys(2500*time.Millisecond, "q"),
			)
			if !rec.Contains("Mínima") {
				t.Error("initial content not drawn")
			}
			if !rec.Contains("Renovada") {
				t.Error("reloaded content not drawn")
			}
		})
	}
}
