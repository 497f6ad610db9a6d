package domain

import (
	"fmt"
	"strings"
)

type Tool struct {
	ID   string
	Name string
}

// ParameterSpec is the catalog definition of a tunable workplace parameter.
type ParameterSpec struct {
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64
}

type Lab struct {
	ID            string
	Title         string
	Branch        string
	Difficulty    int
	Summary       string
	Prerequisites []string
	Tools         []Tool
	Parameters    []ParameterSpec
}

func (p ParameterSpec) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("parameter name is required")
	}
	if p.Min > p.Max {
		return fmt.Errorf("parameter %s: min %.4g exceeds max %.4g", p.Name, p.Min, p.Max)
	}
	if p.Default < p.Min || p.Default > p.Max {
		return fmt.Errorf("parameter %s: default %.4g outside [%.4g, %.4g]", p.Name, p.Default, p.Min, p.Max)
	}
	return nil
}

func (l Lab) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("lab id is required")
	}
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("lab %s: title is required", l.ID)
	}
	if l.Difficulty < 0 || l.Difficulty > 2 {
		return fmt.Errorf("lab %s: difficulty must be 0..2", l.ID)
	}
	seen := map[string]struct{}{}
	for _, tool := range l.Tools {
		if strings.TrimSpace(tool.ID) == "" {
			return fmt.Errorf("lab %s: tool id is required", l.ID)
		}
		if _, ok := seen[tool.ID]; ok {
			return fmt.Errorf("lab %s: duplicate tool %s", l.ID, tool.ID)
		}
		seen[tool.ID] = struct{}{}
	}
	for _, p := range l.Parameters {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("lab %s: %w", l.ID, err)
		}
	}
	return nil
}

func (l Lab) HasTool(id string) bool {
	for _, tool := range l.Tools {
		if tool.ID == id {
			return true
		}
	}
	return false
}
