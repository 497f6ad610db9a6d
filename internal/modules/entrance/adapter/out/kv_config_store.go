package out

import (
	"context"
	"log/slog"

	"vlx/internal/modules/entrance/domain"
	entranceout "vlx/internal/modules/entrance/port/out"
	"vlx/internal/platform/kv"
)

// KVConfigStore keeps one SessionConfig per lab under lab-entrance-{labId}.
type KVConfigStore struct {
	store kv.Store
	log   *slog.Logger
}

func NewKVConfigStore(store kv.Store, log *slog.Logger) entranceout.ConfigStore {
	return &KVConfigStore{store: store, log: log}
}

func (s *KVConfigStore) Load(ctx context.Context, labID string) (domain.SessionConfig, bool, error) {
	cfg, found, err := kv.Load[domain.SessionConfig](ctx, s.store, s.log, kv.Entrance, labID)
	if err != nil || !found {
		return domain.SessionConfig{}, false, err
	}
	cfg.LabID = labID
	if cfg.Tools == nil {
		cfg.Tools = []string{}
	}
	return cfg, true, nil
}

func (s *KVConfigStore) Save(ctx context.Context, config domain.SessionConfig) error {
	return kv.Save(ctx, s.store, kv.Entrance, config.LabID, config)
}
