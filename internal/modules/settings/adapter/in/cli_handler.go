package in

import (
	"context"

	settingsdto "vlx/internal/modules/settings/dto"
	settingsin "vlx/internal/modules/settings/port/in"
)

type CLIHandler struct {
	usecase settingsin.Usecase
}

func NewCLIHandler(usecase settingsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (settingsdto.SettingsOutput, error) {
	return h.usecase.Get(ctx)
}

func (h CLIHandler) Set(ctx context.Context, input settingsdto.UpdateInput) (settingsdto.SettingsOutput, error) {
	return h.usecase.Update(ctx, input)
}
