package service

import (
	"context"

	"vlx/internal/modules/settings/domain"
	settingsout "vlx/internal/modules/settings/port/out"
)

type SettingsService struct {
	store settingsout.SettingsStore
}

func NewSettingsService(store settingsout.SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

func (s *SettingsService) Load(ctx context.Context) (domain.AccessibilitySettings, error) {
	settings, found, err := s.store.Load(ctx)
	if err != nil {
		return domain.AccessibilitySettings{}, err
	}
	if !found {
		return domain.Default(), nil
	}
	return settings.Normalize(), nil
}

func (s *SettingsService) Save(ctx context.Context, settings domain.AccessibilitySettings) (domain.AccessibilitySettings, error) {
	settings = settings.Normalize()
	if err := s.store.Save(ctx, settings); err != nil {
		return domain.AccessibilitySettings{}, err
	}
	return settings, nil
}
