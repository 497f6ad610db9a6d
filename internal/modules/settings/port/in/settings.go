package in

import (
	"context"

	"vlx/internal/modules/settings/dto"
)

type Usecase interface {
	Get(ctx context.Context) (dto.SettingsOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.SettingsOutput, error)
	// Subscribe registers fn to receive every saved change. The returned
	// function removes the subscription.
	Subscribe(fn func(dto.SettingsOutput)) (unsubscribe func())
}
