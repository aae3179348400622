package main_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// binPath is built once in TestMain.
var binPath string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "nomofobia-e2e")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	name := "nomofobia"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	binPath = filepath.Join(dir, name)

	build := exec.Command("go", "build", "-o", binPath, "./cmd/nomofobia")
	build.Dir = moduleRoot()
	if out, err := build.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "build nomofobia: %v\n%s", err, out)
		os.RemoveAll(dir)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func moduleRoot() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..")
}

// testEnv isolates config and logs from the developer's machine.
func testEnv(t *testing.T, extra ...string) []string {
	t.Helper()
	home := t.TempDir()
	env := append(os.Environ(),
		"HOME="+home,
		"XDG_CONFIG_HOME="+filepath.Join(home, ".config"),
		"XDG_STATE_HOME="+filepath.Join(home, ".state"),
		"NOMOFOBIA_LOG_FILE=-",
	)
	return append(env, extra...)
}

// run executes the binary and returns stdout, stderr and the error.
func run(t *testing.T, env []string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command(binPath, args...)
	cmd.Env = env
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func TestSectionsJSON(t *testing.T) {
	out, stderr, err := run(t, testEnv(t), "sections", "--json")
	if err != nil {
		t.Fatalf("sections --json: %v\n%s", err, stderr)
	}
	var sections []struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal([]byte(out), &sections); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	want := []string{"inicio", "definicion", "sintomas", "causas", "tips", "experiencia"}
	if len(sections) != len(want) {
		t.Fatalf("got %d sections, want %d", len(sections), len(want))
	}
	for i, id := range want {
		if sections[i].ID != id {
			t.Errorf("section %d = %q, want %q", i, sections[i].ID, id)
		}
	}
}

func TestSectionsOutline(t *testing.T) {
	out, _, err := run(t, testEnv(t), "sections", "--outline")
	if err != nil {
		t.Fatalf("sections --outline: %v", err)
	}
	if !strings.Contains(out, "    Gestiona notificaciones") {
		t.Errorf("outline missing nested heading:\n%s", out)
	}
}

func TestPrintRendersEverySection(t *testing.T) {
	out, stderr, err := run(t, testEnv(t), "print", "--width", "100", "--variant", "clasica")
	if err != nil {
		t.Fatalf("print: %v\n%s", err, stderr)
	}
	for _, want := range []string{"Nomofobia consciente", "Síntomas más comunes", "Causas frecuentes", "Diseña tu plan personal"} {
		if !strings.Contains(out, want) {
			t.Errorf("print output missing %q", want)
		}
	}
}

func TestVariantFromEnv(t *testing.T) {
	_, stderr, err := run(t, testEnv(t, "NOMOFOBIA_VARIANT=retro"), "sections")
	if err == nil {
		t.Fatal("expected an error for an unknown variant")
	}
	if !strings.Contains(stderr, "unknown variant") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestConfigFile(t *testing.T) {
	env := testEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := filepath.Join(t.TempDir(), "guide.yaml")
	if err := os.WriteFile(content, []byte(minimalGuide), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfgPath, []byte("content: "+content+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, stderr, err := run(t, env, "--config", cfgPath, "sections")
	if err != nil {
		t.Fatalf("sections: %v\n%s", err, stderr)
	}
	if !strings.Contains(out, "1. inicio") || strings.Contains(out, "definicion") {
		t.Errorf("config content not used:\n%s", out)
	}
}

func TestInvalidContent(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "guide.yaml")
	if err := os.WriteFile(bad, []byte("sections:\n  - id: a\n  - id: a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, stderr, err := run(t, testEnv(t), "--content", bad, "sections")
	if err == nil {
		t.Fatal("expected duplicate section error")
	}
	if !strings.Contains(stderr, "duplicate") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestExportSite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	out, stderr, err := run(t, testEnv(t), "export", "--out", dir)
	if err != nil {
		t.Fatalf("export: %v\n%s", err, stderr)
	}
	for _, name := range []string{"index.html", "clasica.html", "moderna.html", "consciente.html"} {
		path := filepath.Join(dir, name)
		if !strings.Contains(out, path) {
			t.Errorf("export did not report %s", name)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if n := strings.Count(string(data), "<section id="); n != 6 {
			t.Errorf("%s has %d section anchors, want 6", name, n)
		}
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, testEnv(t), "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "nomofobia v") {
		t.Errorf("version output = %q", out)
	}
}

const minimalGuide = `brand:
  name: Mínima
sections:
  - id: inicio
    label: Inicio
hero:
  title: Hola
`

func TestSubcommandLogsToStderr(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	// Later entries win, so this clears the "-" set by testEnv.
	_, stderr, err := run(t, testEnv(t, "NOMOFOBIA_LOG_FILE="), "export", "--out", dir)
	if err != nil {
		t.Fatalf("export: %v\n%s", err, stderr)
	}
	if !strings.Contains(stderr, "site exported") {
		t.Errorf("export should log to stderr, got %q", stderr)
	}
}
