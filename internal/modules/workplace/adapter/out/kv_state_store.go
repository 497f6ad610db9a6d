package out

import (
	"context"
	"log/slog"

	"vlx/internal/modules/workplace/domain"
	workplaceout "vlx/internal/modules/workplace/port/out"
	"vlx/internal/platform/kv"
)

// record is the value stored under workplace-{labId}.
type record struct {
	SelectedTools         []string               `json:"selectedTools"`
	Experiment            domain.ExperimentState `json:"experiment"`
	SustainabilityEnabled bool                   `json:"sustainabilityEnabled"`
}

type KVStateStore struct {
	store kv.Store
	log   *slog.Logger
}

func NewKVStateStore(store kv.Store, log *slog.Logger) workplaceout.StateStore {
	return &KVStateStore{store: store, log: log}
}

func (s *KVStateStore) Load(ctx context.Context, labID string) (domain.Workplace, bool, error) {
	rec, found, err := kv.Load[record](ctx, s.store, s.log, kv.Workplace, labID)
	if err != nil || !found {
		return domain.Workplace{}, false, err
	}
	// The top-level selectedTools wins over the experiment's copy.
	exp := domain.NewExperiment(labID, rec.SelectedTools, rec.Experiment.Parameters)
	exp.Paused = rec.Experiment.Paused
	return domain.Workplace{Experiment: exp, SustainabilityEnabled: rec.SustainabilityEnabled}, true, nil
}

func (s *KVStateStore) Save(ctx context.Context, w domain.Workplace) error {
	rec := record{
		SelectedTools:         w.Experiment.SelectedTools,
		Experiment:            w.Experiment,
		SustainabilityEnabled: w.SustainabilityEnabled,
	}
	return kv.Save(ctx, s.store, kv.Workplace, w.Experiment.LabID, rec)
}
