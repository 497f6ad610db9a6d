package in

import (
	"context"

	entrancedto "vlx/internal/modules/entrance/dto"
	entrancein "vlx/internal/modules/entrance/port/in"
)

type CLIHandler struct {
	usecase entrancein.Usecase
}

func NewCLIHandler(usecase entrancein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context, labID string) (entrancedto.ConfigOutput, error) {
	return h.usecase.Load(ctx, labID)
}

// Set applies only the fields that were given on the command line.
func (h CLIHandler) Set(ctx context.Context, labID string, mode *string, difficulty *int, skipTutorial, sustainability *bool, toggleTools []string) (entrancedto.ConfigOutput, error) {
	out, err := h.usecase.Load(ctx, labID)
	if err != nil {
		return entrancedto.ConfigOutput{}, err
	}
	if mode != nil {
		if out, err = h.usecase.SetMode(ctx, labID, *mode); err != nil {
			return entrancedto.ConfigOutput{}, err
		}
	}
	if difficulty != nil {
		if out, err = h.usecase.SetDifficulty(ctx, labID, *difficulty); err != nil {
			return entrancedto.ConfigOutput{}, err
		}
	}
	if skipTutorial != nil {
		if out, err = h.usecase.SetSkipTutorial(ctx, labID, *skipTutorial); err != nil {
			return entrancedto.ConfigOutput{}, err
		}
	}
	if sustainability != nil {
		if out, err = h.usecase.SetSustainability(ctx, labID, *sustainability); err != nil {
			return entrancedto.ConfigOutput{}, err
		}
	}
	for _, tool := range toggleTools {
		if out, err = h.usecase.ToggleTool(ctx, labID, tool); err != nil {
			return entrancedto.ConfigOutput{}, err
		}
	}
	return out, nil
}

func (h CLIHandler) Enter(ctx context.Context, input entrancedto.EnterInput) (entrancedto.ConfigOutput, error) {
	return h.usecase.Enter(ctx, input)
}
