package loader

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kraitsura/nomofobia/pkg/model"
)

//go:embed default_guide.yaml
var defaultGuide []byte

var (
	// ErrNoSections is returned when a guide defines no sections.
	ErrNoSections = errors.New("guide has no sections")
	// ErrDuplicateSection is returned when two sections share an id.
	ErrDuplicateSection = errors.New("duplicate section id")
)

// DefaultContent returns the raw bytes of the built-in guide.
func DefaultContent() []byte {
	return bytes.Clone(defaultGuide)
}

// LoadDefault parses the built-in guide.
func LoadDefault() (*model.Guide, error) {
	g, err := ParseGuide(defaultGuide)
	if err != nil {
		return nil, fmt.Errorf("built-in guide: %w", err)
	}
	return g, nil
}

// GuideFile is the file read when the content path is a directory.
const GuideFile = "guide.yaml"

// ResolvePath returns the file LoadGuide reads for path: a directory
// resolves to its GuideFile, anything else is returned unchanged.
func ResolvePath(path string) string {
	if path == "" {
		return ""
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, GuideFile)
	}
	return path
}

// LoadGuide reads the guide at path, or the built-in guide when path is empty.
// A directory path is resolved to its guide.yaml.
func LoadGuide(path string) (*model.Guide, error) {
	if path == "" {
		return LoadDefault()
	}
	return LoadGuideFromFile(ResolvePath(path))
}

// LoadGuideFromFile reads a guide directly from a specific YAML file path.
func LoadGuideFromFile(path string) (*model.Guide, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no guide found at %s", path)
		}
		return nil, fmt.Errorf("failed to read guide file: %w", err)
	}
	g, err := ParseGuide(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// ParseGuide decodes and validates guide YAML. Unknown keys are rejected so
// typos in hand-edited content surface immediately.
func ParseGuide(data []byte) (*model.Guide, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var g model.Guide
	if err := dec.Decode(&g); err != nil {
		return nil, fmt.Errorf("failed to decode guide: %w", err)
	}
	normalize(&g)

	if len(g.Sections) == 0 {
		return nil, ErrNoSections
	}
	seen := make(map[string]bool, len(g.Sections))
	for _, s := range g.Sections {
		if seen[s.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSection, s.ID)
		}
		seen[s.ID] = true
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid guide: %w", err)
	}
	return &g, nil
}

// normalize trims ids and fills labels that were left empty.
func normalize(g *model.Guide) {
	for i := range g.Sections {
		s := &g.Sections[i]
		s.ID = strings.TrimSpace(s.ID)
		if s.Label == "" {
			s.Label = s.ID
		}
	}
	for i := range g.Tips.Feedback {
		if g.Tips.Feedback[i].Tone == "" {
			g.Tips.Feedback[i].Tone = model.ToneInfo
		}
	}
}
