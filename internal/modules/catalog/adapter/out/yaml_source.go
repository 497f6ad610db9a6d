package out

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"vlx/internal/modules/catalog/domain"
	catalogout "vlx/internal/modules/catalog/port/out"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

type yamlCatalog struct {
	Labs []yamlLab `yaml:"labs"`
}

type yamlLab struct {
	ID            string          `yaml:"id"`
	Title         string          `yaml:"title"`
	Branch        string          `yaml:"branch"`
	Difficulty    int             `yaml:"difficulty"`
	Summary       string          `yaml:"summary"`
	Prerequisites []string        `yaml:"prerequisites"`
	Tools         []yamlTool      `yaml:"tools"`
	Parameters    []yamlParameter `yaml:"parameters"`
}

type yamlTool struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type yamlParameter struct {
	Name    string   `yaml:"name"`
	Unit    string   `yaml:"unit"`
	Min     float64  `yaml:"min"`
	Max     float64  `yaml:"max"`
	Default *float64 `yaml:"default"`
}

// YAMLLabSource reads the catalog from a YAML file. With an empty path it
// serves the built-in catalog.
type YAMLLabSource struct {
	path string
}

func NewYAMLLabSource(path string) catalogout.LabSource {
	return &YAMLLabSource{path: path}
}

func (s *YAMLLabSource) List(_ context.Context) ([]domain.Lab, error) {
	raw := defaultCatalog
	if s.path != "" {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", s.path, err)
		}
		raw = b
	}
	return ParseCatalog(raw)
}

// ParseCatalog decodes a YAML catalog document. A parameter without a default
// starts at its minimum.
func ParseCatalog(raw []byte) ([]domain.Lab, error) {
	var doc yamlCatalog
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	labs := make([]domain.Lab, 0, len(doc.Labs))
	for _, l := range doc.Labs {
		lab := domain.Lab{
			ID:            l.ID,
			Title:         l.Title,
			Branch:        l.Branch,
			Difficulty:    l.Difficulty,
			Summary:       l.Summary,
			Prerequisites: l.Prerequisites,
		}
		for _, t := range l.Tools {
			lab.Tools = append(lab.Tools, domain.Tool{ID: t.ID, Name: t.Name})
		}
		for _, p := range l.Parameters {
			def := p.Min
			if p.Default != nil {
				def = *p.Default
			}
			lab.Parameters = append(lab.Parameters, domain.ParameterSpec{Name: p.Name, Unit: p.Unit, Min: p.Min, Max: p.Max, Default: def})
		}
		labs = append(labs, lab)
	}
	return labs, nil
}
