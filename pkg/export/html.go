// Package export renders the guide as a static HTML site and serves it for
// local preview.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/kraitsura/nomofobia/pkg/model"
)

// IndexFile is the entry page written by WriteSite.
const IndexFile = "index.html"

// PageFile returns the file name of a variant's page.
func PageFile(v model.Variant) string {
	return string(v) + ".html"
}

// Renderer turns a guide into HTML pages.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template
}

// NewRenderer parses the page template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("page").Funcs(template.FuncMap{
		"pageFile": PageFile,
	}).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Renderer{
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
		tmpl: tmpl,
	}, nil
}

// pageData is the template input for one variant.
type pageData struct {
	Guide    *model.Guide
	Profile  model.Profile
	Variants []model.Variant

	DefinitionLead template.HTML
	DefinitionBody template.HTML
	Glossary       template.HTML
}

func (r *Renderer) markdown(src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	// goldmark escapes raw HTML by default
	return template.HTML(buf.String()), nil
}

// Render writes the page for profile p to w.
func (r *Renderer) Render(w io.Writer, g *model.Guide, p model.Profile) error {
	data := pageData{
		Guide:    g,
		Profile:  p,
		Variants: model.Variants(),
	}
	var err error
	if data.DefinitionLead, err = r.markdown(g.Definition.Lead); err != nil {
		return err
	}
	if data.DefinitionBody, err = r.markdown(g.Definition.Body); err != nil {
		return err
	}
	if data.Glossary, err = r.markdown(g.Definition.Glossary); err != nil {
		return err
	}
	if err := r.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering %s page: %w", p.Variant, err)
	}
	return nil
}

// WriteSite writes one page per variant into dir, plus an index that is a
// copy of the default variant's page. It returns the files written.
func WriteSite(dir string, g *model.Guide) ([]string, error) {
	r, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	var written []string
	write := func(name string, p model.Profile) error {
		var buf bytes.Buffer
		if err := r.Render(&buf, g, p); err != nil {
			return err
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		written = append(written, path)
		return nil
	}

	for _, v := range model.Variants() {
		if err := write(PageFile(v), v.Profile()); err != nil {
			return written, err
		}
	}
	if err := write(IndexFile, model.DefaultVariant.Profile()); err != nil {
		return written, err
	}
	return written, nil
}
