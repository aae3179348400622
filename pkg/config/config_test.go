package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Variant != "consciente" {
		t.Errorf("expected default variant consciente, got %q", cfg.Variant)
	}
	if !cfg.AltScreen {
		t.Error("alt screen should default to on")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load on missing file returned error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("missing file should give defaults (-want +got):\n%s", diff)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "variant: moderna\nlog_level: debug\nlookahead: 90\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("NOMOFOBIA_LOG_LEVEL", "warn")
	t.Setenv("NOMOFOBIA_ALT_SCREEN", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := DefaultConfig()
	want.Variant = "moderna" // file
	want.Lookahead = 90      // file
	want.LogLevel = "warn"   // env beats file
	want.AltScreen = false   // env beats default
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("variant: [unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		is      error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "unknown variant", mutate: func(c *Config) { c.Variant = "retro" }, wantErr: true, is: ErrUnknownVariant},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "chatty" }, wantErr: true},
		{name: "negative lookahead", mutate: func(c *Config) { c.Lookahead = -1 }, wantErr: true},
		{name: "watch without content", mutate: func(c *Config) { c.Watch = true }, wantErr: true},
		{name: "watch with content", mutate: func(c *Config) { c.Watch = true; c.Content = "guide.yaml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error %v is not %v", err, tt.is)
			}
		})
	}
}

func TestProfileOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Variant = "clasica"
	p := cfg.Profile()
	if p.Lookahead != 100 || p.Threshold != 300 {
		t.Fatalf("clasica profile = %+v", p)
	}
	cfg.Threshold = 500
	if got := cfg.Profile().Threshold; got != 500 {
		t.Errorf("threshold override = %d, want 500", got)
	}
}
