package in

import (
	"context"

	workplacedto "vlx/internal/modules/workplace/dto"
	workplacein "vlx/internal/modules/workplace/port/in"
)

type CLIHandler struct {
	usecase workplacein.Usecase
}

func NewCLIHandler(usecase workplacein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context, labID string) (workplacedto.StateOutput, error) {
	return h.usecase.Open(ctx, labID)
}

func (h CLIHandler) ToggleTools(ctx context.Context, labID string, tools []string) (workplacedto.StateOutput, error) {
	out, err := h.usecase.Open(ctx, labID)
	if err != nil {
		return workplacedto.StateOutput{}, err
	}
	for _, tool := range tools {
		if out, err = h.usecase.ToggleTool(ctx, labID, tool); err != nil {
			return workplacedto.StateOutput{}, err
		}
	}
	return out, nil
}

func (h CLIHandler) SetParameter(ctx context.Context, labID string, index int, value float64) (workplacedto.StateOutput, error) {
	return h.usecase.SetParameter(ctx, workplacedto.SetParameterInput{LabID: labID, Index: index, Value: value})
}

func (h CLIHandler) TogglePause(ctx context.Context, labID string) (workplacedto.StateOutput, error) {
	return h.usecase.TogglePause(ctx, labID)
}

func (h CLIHandler) Reset(ctx context.Context, labID string) (workplacedto.StateOutput, error) {
	return h.usecase.Reset(ctx, labID)
}

func (h CLIHandler) Complete(ctx context.Context, labID string, score int) (workplacedto.CompleteOutput, error) {
	return h.usecase.AttemptComplete(ctx, workplacedto.CompleteInput{LabID: labID, Score: score})
}
