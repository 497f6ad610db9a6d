package domain_test

import (
	"errors"
	"testing"

	"vlx/internal/modules/workplace/domain"
	apperrors "vlx/internal/platform/errors"
)

func TestToolTogglingCapsAtTarget(t *testing.T) {
	t.Parallel()
	state := domain.NewExperiment("optics", []string{"a", "b", "c"}, twoParams(0, 10))
	if state.Progress != 30 {
		t.Fatalf("expected 30 from three tools, got %d", state.Progress)
	}
	for _, tool := range []string{"d", "e", "f"} {
		state = state.ToggleTool(tool)
	}
	if len(state.SelectedTools) != domain.ToolTarget || state.HasTool("f") {
		t.Fatalf("expected five tools without f, got %v", state.SelectedTools)
	}
	if state.Progress != 50 {
		t.Fatalf("expected 50, got %d", state.Progress)
	}
	state = state.ToggleTool("a")
	if state.HasTool("a") || state.Progress != 40 {
		t.Fatalf("expected a removed and progress 40, got %v %d", state.SelectedTools, state.Progress)
	}
}

func TestMutationsDoNotAliasPreviousState(t *testing.T) {
	t.Parallel()
	before := domain.NewExperiment("optics", []string{"a"}, twoParams(0, 10))
	after, err := before.SetParameter(0, 45)
	if err != nil {
		t.Fatalf("set parameter: %v", err)
	}
	after = after.ToggleTool("b")
	if before.Parameters[0].Value != 0 || len(before.SelectedTools) != 1 {
		t.Fatalf("original state mutated: %+v", before)
	}
	if after.Parameters[0].Value != 45 || len(after.SelectedTools) != 2 {
		t.Fatalf("unexpected new state: %+v", after)
	}
}

func TestSetParameterClampsAndChecksIndex(t *testing.T) {
	t.Parallel()
	state := domain.NewExperiment("optics", nil, twoParams(0, 10))
	state, err := state.SetParameter(1, 500)
	if err != nil {
		t.Fatalf("set parameter: %v", err)
	}
	if state.Parameters[1].Value != 50 || state.Progress != 25 {
		t.Fatalf("expected clamp to max, got %+v", state)
	}
	state, err = state.SetParameter(1, -5)
	if err != nil {
		t.Fatalf("set parameter: %v", err)
	}
	if state.Parameters[1].Value != 10 {
		t.Fatalf("expected clamp to min, got %v", state.Parameters[1].Value)
	}
	if _, err := state.SetParameter(2, 1); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid index, got %v", err)
	}
}

func TestResetReturnsToZero(t *testing.T) {
	t.Parallel()
	state := domain.NewExperiment("optics", []string{"a", "b"}, twoParams(90, 50)).TogglePause()
	if state.Progress != 70 || !state.Paused {
		t.Fatalf("unexpected setup: %+v", state)
	}
	state = state.Reset()
	if state.Progress != 0 || len(state.SelectedTools) != 0 || state.Paused {
		t.Fatalf("expected cleared state, got %+v", state)
	}
	for _, p := range state.Parameters {
		if p.Value != p.Min {
			t.Fatalf("expected %s at min, got %v", p.Name, p.Value)
		}
	}
}
