package in

import (
	"context"

	resultsdto "vlx/internal/modules/results/dto"
	resultsin "vlx/internal/modules/results/port/in"
)

type CLIHandler struct {
	usecase resultsin.Usecase
}

func NewCLIHandler(usecase resultsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]resultsdto.RecordOutput, error) {
	return h.usecase.History(ctx)
}

func (h CLIHandler) Latest(ctx context.Context) (resultsdto.RecordOutput, error) {
	return h.usecase.Latest(ctx)
}

func (h CLIHandler) Export(ctx context.Context, dir string) (resultsdto.ExportOutput, error) {
	return h.usecase.Export(ctx, resultsdto.ExportInput{Dir: dir})
}
