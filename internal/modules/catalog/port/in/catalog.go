package in

import (
	"context"

	"vlx/internal/modules/catalog/dto"
)

type Usecase interface {
	ListLabs(ctx context.Context, input dto.ListInput) ([]dto.LabOutput, error)
	GetLab(ctx context.Context, labID string) (dto.LabDetailOutput, error)
}
