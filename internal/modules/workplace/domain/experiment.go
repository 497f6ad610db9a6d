package domain

import (
	"fmt"

	apperrors "vlx/internal/platform/errors"
)

// ExperimentState is the live workplace of one lab. Progress is derived and
// refreshed by every mutation; it is never set directly.
type ExperimentState struct {
	LabID         string      `json:"labId"`
	SelectedTools []string    `json:"selectedTools"`
	Parameters    []Parameter `json:"parameters"`
	Progress      int         `json:"progress"`
	Paused        bool        `json:"paused"`
}

// Workplace is what a lab's workplace persists: the experiment plus the
// sustainability flag carried over from the entrance.
type Workplace struct {
	Experiment            ExperimentState
	SustainabilityEnabled bool
}

func NewExperiment(labID string, tools []string, params []Parameter) ExperimentState {
	s := ExperimentState{
		LabID:         labID,
		SelectedTools: []string{},
		Parameters:    make([]Parameter, 0, len(params)),
	}
	for _, tool := range tools {
		s = s.withTool(tool)
	}
	for _, p := range params {
		p.Value = p.Clamp(p.Value)
		s.Parameters = append(s.Parameters, p)
	}
	return s.Recompute()
}

func (s ExperimentState) HasTool(id string) bool {
	for _, tool := range s.SelectedTools {
		if tool == id {
			return true
		}
	}
	return false
}

// ToggleTool deselects a selected tool or selects a new one while fewer than
// ToolTarget are selected. Selections past the target are ignored.
func (s ExperimentState) ToggleTool(id string) ExperimentState {
	if s.HasTool(id) {
		out := s.Clone()
		out.SelectedTools = out.SelectedTools[:0]
		for _, tool := range s.SelectedTools {
			if tool != id {
				out.SelectedTools = append(out.SelectedTools, tool)
			}
		}
		return out.Recompute()
	}
	return s.Clone().withTool(id).Recompute()
}

func (s ExperimentState) withTool(id string) ExperimentState {
	if id == "" || s.HasTool(id) || len(s.SelectedTools) >= ToolTarget {
		return s
	}
	s.SelectedTools = append(s.SelectedTools, id)
	return s
}

// SetParameter moves parameter index to value, clamped into its range.
func (s ExperimentState) SetParameter(index int, value float64) (ExperimentState, error) {
	if index < 0 || index >= len(s.Parameters) {
		return ExperimentState{}, fmt.Errorf("%w: parameter index %d out of range", apperrors.ErrInvalidInput, index)
	}
	out := s.Clone()
	p := out.Parameters[index]
	p.Value = p.Clamp(value)
	out.Parameters[index] = p
	return out.Recompute(), nil
}

// Reset deselects every tool and moves every parameter to its minimum.
func (s ExperimentState) Reset() ExperimentState {
	out := s.Clone()
	out.SelectedTools = out.SelectedTools[:0]
	out.Paused = false
	for i := range out.Parameters {
		out.Parameters[i].Value = out.Parameters[i].Min
	}
	return out.Recompute()
}

func (s ExperimentState) TogglePause() ExperimentState {
	out := s.Clone()
	out.Paused = !out.Paused
	return out
}

func (s ExperimentState) Recompute() ExperimentState {
	s.Progress = ComputeProgress(len(s.SelectedTools), s.Parameters)
	return s
}

func (s ExperimentState) Clone() ExperimentState {
	out := s
	out.SelectedTools = append(make([]string, 0, len(s.SelectedTools)), s.SelectedTools...)
	out.Parameters = append(make([]Parameter, 0, len(s.Parameters)), s.Parameters...)
	return out
}
