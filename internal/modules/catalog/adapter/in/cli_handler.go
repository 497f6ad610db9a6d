package in

import (
	"context"

	catalogdto "vlx/internal/modules/catalog/dto"
	catalogin "vlx/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListLabs(ctx context.Context, branch string) ([]catalogdto.LabOutput, error) {
	return h.usecase.ListLabs(ctx, catalogdto.ListInput{Branch: branch})
}

func (h CLIHandler) GetLab(ctx context.Context, labID string) (catalogdto.LabDetailOutput, error) {
	return h.usecase.GetLab(ctx, labID)
}
