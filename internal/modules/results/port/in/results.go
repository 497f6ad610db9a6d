package in

import (
	"context"

	"vlx/internal/modules/results/dto"
)

type Usecase interface {
	// Record stamps a new result and appends it to the bounded history.
	Record(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error)
	History(ctx context.Context) ([]dto.RecordOutput, error)
	Latest(ctx context.Context) (dto.RecordOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
