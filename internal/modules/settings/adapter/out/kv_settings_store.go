package out

import (
	"context"
	"log/slog"

	"vlx/internal/modules/settings/domain"
	settingsout "vlx/internal/modules/settings/port/out"
	"vlx/internal/platform/kv"
)

type KVSettingsStore struct {
	store kv.Store
	log   *slog.Logger
}

func NewKVSettingsStore(store kv.Store, log *slog.Logger) settingsout.SettingsStore {
	return &KVSettingsStore{store: store, log: log}
}

func (s *KVSettingsStore) Load(ctx context.Context) (domain.AccessibilitySettings, bool, error) {
	return kv.Load[domain.AccessibilitySettings](ctx, s.store, s.log, kv.Accessibility, "")
}

func (s *KVSettingsStore) Save(ctx context.Context, settings domain.AccessibilitySettings) error {
	return kv.Save(ctx, s.store, kv.Accessibility, "", settings)
}
