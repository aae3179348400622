package export

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/kraitsura/nomofobia/pkg/loader"
	"github.com/kraitsura/nomofobia/pkg/model"
)

func TestRenderOneAnchorPerSection(t *testing.T) {
	g, err := loader.LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, g, model.VariantConsciente.Profile()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, s := range g.Sections {
		if n := strings.Count(out, `<section id="`+s.ID+`"`); n != 1 {
			t.Errorf("section %q has %d anchors, want 1", s.ID, n)
		}
		if !strings.Contains(out, `href="#`+s.ID+`"`) {
			t.Errorf("nav link to %q missing", s.ID)
		}
	}
	if got := strings.Count(out, "<section "); got != len(g.Sections) {
		t.Errorf("%d sections rendered, want %d", got, len(g.Sections))
	}
	if !strings.Contains(out, `id="assessment"`) {
		t.Error("consciente page should include the self-assessment")
	}
	if !regexp.MustCompile(`lookahead = \s*120\b`).MatchString(out) {
		t.Error("scroll-spy script should use the variant lookahead")
	}
}

func TestRenderVariantDifferences(t *testing.T) {
	g, err := loader.LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}

	var clasica bytes.Buffer
	if err := r.Render(&clasica, g, model.VariantClasica.Profile()); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(clasica.String(), `id="assessment"`) || strings.Contains(clasica.String(), `id="progress"`) {
		t.Error("clasica has neither progress nor assessment")
	}
	if !regexp.MustCompile(`threshold = \s*300\b`).MatchString(clasica.String()) {
		t.Error("clasica threshold not applied")
	}
}

func TestRenderMarkdownFields(t *testing.T) {
	g, err := loader.LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	g.Definition.Body = "Texto con **énfasis** y <script>alert(1)</script>"

	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, g, model.VariantClasica.Profile()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<strong>énfasis</strong>") {
		t.Error("markdown not converted")
	}
	if strings.Contains(buf.String(), "<script>alert(1)</script>") {
		t.Error("raw HTML should not pass through")
	}
}

func TestRenderSkipsUnknownSections(t *testing.T) {
	g, err := loader.LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	g.Sections = append(g.Sections, model.Section{ID: "extra", Label: "Extra"})

	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, g, model.VariantModerna.Profile()); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), `<section id="extra"`) {
		t.Error("section without content should not get an anchor")
	}
}

func TestWriteSite(t *testing.T) {
	g, err := loader.LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(t.TempDir(), "site")

	files, err := WriteSite(dir, g)
	if err != nil {
		t.Fatalf("WriteSite: %v", err)
	}
	if len(files) != len(model.Variants())+1 {
		t.Errorf("wrote %d files: %v", len(files), files)
	}

	index, err := os.ReadFile(filepath.Join(dir, IndexFile))
	if err != nil {
		t.Fatal(err)
	}
	def, err := os.ReadFile(filepath.Join(dir, PageFile(model.DefaultVariant)))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(index, def) {
		t.Error("index should match the default variant page")
	}
	for _, v := range model.Variants() {
		if !strings.Contains(string(index), `href="`+PageFile(v)+`"`) {
			t.Errorf("index missing link to %s", PageFile(v))
		}
	}
}
