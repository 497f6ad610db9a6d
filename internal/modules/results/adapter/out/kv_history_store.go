package out

import (
	"context"
	"log/slog"

	"vlx/internal/modules/results/domain"
	resultsout "vlx/internal/modules/results/port/out"
	"vlx/internal/platform/kv"
)

// KVHistoryStore persists the history as one array, newest last, under
// vlx-results-history.
type KVHistoryStore struct {
	store kv.Store
	log   *slog.Logger
}

func NewKVHistoryStore(store kv.Store, log *slog.Logger) resultsout.HistoryStore {
	return &KVHistoryStore{store: store, log: log}
}

func (s *KVHistoryStore) Load(ctx context.Context) (domain.HistoryBuffer, error) {
	records, _, err := kv.Load[[]domain.ResultRecord](ctx, s.store, s.log, kv.ResultHistory, "")
	if err != nil {
		return domain.HistoryBuffer{}, err
	}
	return domain.NewHistoryBuffer(records), nil
}

func (s *KVHistoryStore) Save(ctx context.Context, history domain.HistoryBuffer) error {
	return kv.Save(ctx, s.store, kv.ResultHistory, "", history.Records())
}
