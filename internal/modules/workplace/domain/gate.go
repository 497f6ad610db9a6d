package domain

import apperrors "vlx/internal/platform/errors"

type Phase string

const (
	PhaseInProgress Phase = "in_progress"
	PhaseCompleted  Phase = "completed"
)

// CompletionThreshold is the minimum progress that allows completion.
const CompletionThreshold = 80

// Gate decides whether a session may complete. Completed is terminal.
type Gate struct {
	phase Phase
}

func NewGate() Gate {
	return Gate{phase: PhaseInProgress}
}

func (g Gate) Phase() Phase {
	if g.phase == "" {
		return PhaseInProgress
	}
	return g.phase
}

func (g Gate) Completed() bool {
	return g.phase == PhaseCompleted
}

// Attempt moves the gate to Completed when progress reaches the threshold.
// Below it the gate stays in progress and ErrNotReady is returned; a gate that
// already completed reports ErrSessionCompleted.
func (g *Gate) Attempt(progress int) error {
	if g.Completed() {
		return apperrors.ErrSessionCompleted
	}
	if progress < CompletionThreshold {
		return apperrors.ErrNotReady
	}
	g.phase = PhaseCompleted
	return nil
}
