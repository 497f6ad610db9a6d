package in

import (
	"context"

	"vlx/internal/modules/entrance/dto"
)

type Usecase interface {
	Load(ctx context.Context, labID string) (dto.ConfigOutput, error)
	SetMode(ctx context.Context, labID, mode string) (dto.ConfigOutput, error)
	SetDifficulty(ctx context.Context, labID string, difficulty int) (dto.ConfigOutput, error)
	ToggleTool(ctx context.Context, labID, toolID string) (dto.ConfigOutput, error)
	SetSkipTutorial(ctx context.Context, labID string, skip bool) (dto.ConfigOutput, error)
	SetSustainability(ctx context.Context, labID string, enabled bool) (dto.ConfigOutput, error)
	Enter(ctx context.Context, input dto.EnterInput) (dto.ConfigOutput, error)
	// Admit returns the persisted configuration of a lab, or ErrMissingMode
	// when it does not allow a session to start.
	Admit(ctx context.Context, labID string) (dto.ConfigOutput, error)
}
