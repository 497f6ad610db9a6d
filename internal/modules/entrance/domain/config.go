package domain

import (
	"fmt"
	"strings"

	apperrors "vlx/internal/platform/errors"
)

type Mode string

const (
	ModeUnset Mode = ""
	ModeSolo  Mode = "solo"
	ModeTeam  Mode = "team"
)

const (
	// MaxTools caps the loadout chosen at the entrance.
	MaxTools      = 3
	MaxDifficulty = 2
)

// SessionConfig is the user's choice for one lab, captured before a session
// starts. It is stored whole; every save replaces the previous record.
type SessionConfig struct {
	LabID              string   `json:"labId"`
	Mode               Mode     `json:"mode"`
	Difficulty         int      `json:"difficulty"`
	Tools              []string `json:"tools"`
	SkipTutorial       bool     `json:"skipTutorial"`
	SustainabilityMode bool     `json:"sustainability"`
}

func Default(labID string) SessionConfig {
	return SessionConfig{LabID: labID, Tools: []string{}}
}

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSolo:
		return ModeSolo, nil
	case ModeTeam:
		return ModeTeam, nil
	case ModeUnset:
		return ModeUnset, nil
	default:
		return ModeUnset, fmt.Errorf("%w: unknown mode %q", apperrors.ErrInvalidInput, s)
	}
}

func ValidDifficulty(d int) bool {
	return d >= 0 && d <= MaxDifficulty
}

// Validate gates entry into a session. An unset mode is reported as
// ErrMissingMode; malformed fields as ErrInvalidInput.
func (c SessionConfig) Validate() error {
	if c.Mode == ModeUnset {
		return apperrors.ErrMissingMode
	}
	if c.Mode != ModeSolo && c.Mode != ModeTeam {
		return fmt.Errorf("%w: unknown mode %q", apperrors.ErrInvalidInput, string(c.Mode))
	}
	if !ValidDifficulty(c.Difficulty) {
		return fmt.Errorf("%w: difficulty must be 0..%d", apperrors.ErrInvalidInput, MaxDifficulty)
	}
	if len(c.Tools) > MaxTools {
		return fmt.Errorf("%w: at most %d tools", apperrors.ErrInvalidInput, MaxTools)
	}
	seen := map[string]struct{}{}
	for _, tool := range c.Tools {
		if _, ok := seen[tool]; ok {
			return fmt.Errorf("%w: duplicate tool %s", apperrors.ErrInvalidInput, tool)
		}
		seen[tool] = struct{}{}
	}
	return nil
}

func (c SessionConfig) HasTool(id string) bool {
	for _, tool := range c.Tools {
		if tool == id {
			return true
		}
	}
	return false
}

// AddTool appends id to the loadout. A duplicate or a tool beyond MaxTools is
// ignored and reported through the second return value only.
func (c SessionConfig) AddTool(id string) (SessionConfig, bool) {
	if c.HasTool(id) || len(c.Tools) >= MaxTools {
		return c, false
	}
	out := c.Clone()
	out.Tools = append(out.Tools, id)
	return out, true
}

// ToggleTool removes id when selected, otherwise tries AddTool.
func (c SessionConfig) ToggleTool(id string) SessionConfig {
	if !c.HasTool(id) {
		out, _ := c.AddTool(id)
		return out
	}
	out := c.Clone()
	out.Tools = out.Tools[:0]
	for _, tool := range c.Tools {
		if tool != id {
			out.Tools = append(out.Tools, tool)
		}
	}
	return out
}

func (c SessionConfig) Clone() SessionConfig {
	out := c
	out.Tools = append(make([]string, 0, len(c.Tools)), c.Tools...)
	return out
}
