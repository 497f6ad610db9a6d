package out

import (
	"context"

	"vlx/internal/modules/entrance/domain"
)

type ConfigStore interface {
	Load(ctx context.Context, labID string) (domain.SessionConfig, bool, error)
	Save(ctx context.Context, config domain.SessionConfig) error
}
