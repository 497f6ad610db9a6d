package service

import (
	"context"

	"vlx/internal/modules/results/domain"
	resultsout "vlx/internal/modules/results/port/out"
	"vlx/internal/platform/clock"
	"vlx/internal/platform/id"
)

type ResultService struct {
	clock clock.Clock
	ids   id.Generator
	store resultsout.HistoryStore
}

func NewResultService(clock clock.Clock, ids id.Generator, store resultsout.HistoryStore) *ResultService {
	return &ResultService{clock: clock, ids: ids, store: store}
}

// Record builds a result stamped with the current time and a fresh id. It
// does not touch the history.
func (s *ResultService) Record(labID, labTitle string, score int) (domain.ResultRecord, error) {
	return domain.NewResultRecord(s.ids.New(), labID, labTitle, score, s.clock.Now())
}

// AppendToHistory loads the history, appends record and writes the whole
// buffer back. Concurrent appenders overwrite each other.
func (s *ResultService) AppendToHistory(ctx context.Context, record domain.ResultRecord) (domain.HistoryBuffer, error) {
	history, err := s.store.Load(ctx)
	if err != nil {
		return domain.HistoryBuffer{}, err
	}
	history = history.Append(record)
	if err := s.store.Save(ctx, history); err != nil {
		return domain.HistoryBuffer{}, err
	}
	return history, nil
}

func (s *ResultService) History(ctx context.Context) (domain.HistoryBuffer, error) {
	return s.store.Load(ctx)
}
