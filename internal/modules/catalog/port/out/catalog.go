package out

import (
	"context"

	"vlx/internal/modules/catalog/domain"
)

// LabSource supplies the read-only lab catalog.
type LabSource interface {
	List(ctx context.Context) ([]domain.Lab, error)
}
