package out

import (
	"context"

	"vlx/internal/modules/results/domain"
)

type HistoryStore interface {
	Load(ctx context.Context) (domain.HistoryBuffer, error)
	Save(ctx context.Context, history domain.HistoryBuffer) error
}

type Exporter interface {
	// Export writes records under dir and returns the index path and one
	// note path per record.
	Export(ctx context.Context, dir string, records []domain.ResultRecord) (string, []string, error)
}
