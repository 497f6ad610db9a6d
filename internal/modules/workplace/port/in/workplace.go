package in

import (
	"context"

	"vlx/internal/modules/workplace/dto"
)

type Usecase interface {
	// Open starts or resumes the workplace of a lab. The lab's entrance
	// configuration must allow a session to start.
	Open(ctx context.Context, labID string) (dto.StateOutput, error)
	ToggleTool(ctx context.Context, labID, toolID string) (dto.StateOutput, error)
	SetParameter(ctx context.Context, input dto.SetParameterInput) (dto.StateOutput, error)
	TogglePause(ctx context.Context, labID string) (dto.StateOutput, error)
	Reset(ctx context.Context, labID string) (dto.StateOutput, error)
	AttemptComplete(ctx context.Context, input dto.CompleteInput) (dto.CompleteOutput, error)
	// Close discards the in-memory session; the last saved state remains.
	Close(ctx context.Context, labID string) error
}
