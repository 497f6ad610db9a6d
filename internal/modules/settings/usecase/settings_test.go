package usecase_test

import (
	"context"
	"testing"

	settingsout "vlx/internal/modules/settings/adapter/out"
	"vlx/internal/modules/settings/dto"
	settingsin "vlx/internal/modules/settings/port/in"
	"vlx/internal/modules/settings/service"
	"vlx/internal/modules/settings/usecase"
	"vlx/internal/platform/kv"
	"vlx/internal/platform/logging"
)

func newInteractor(store kv.Store) settingsin.Usecase {
	return usecase.NewInteractor(service.NewSettingsService(settingsout.NewKVSettingsStore(store, logging.Discard())))
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestDefaultsWhenNothingSaved(t *testing.T) {
	t.Parallel()
	got, err := newInteractor(kv.NewMemoryStore()).Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != (dto.SettingsOutput{FontSize: 16, HapticIntensity: 1}) {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestUpdateMergesClampsAndPersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	uc := newInteractor(store)
	if _, err := uc.Update(ctx, dto.UpdateInput{HighContrast: boolPtr(true)}); err != nil {
		t.Fatalf("update contrast: %v", err)
	}
	got, err := uc.Update(ctx, dto.UpdateInput{FontSize: intPtr(30), HapticIntensity: intPtr(-4)})
	if err != nil {
		t.Fatalf("update sizes: %v", err)
	}
	want := dto.SettingsOutput{FontSize: 20, HighContrast: true, HapticIntensity: 0}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	reloaded, err := newInteractor(store).Get(ctx)
	if err != nil || reloaded != want {
		t.Fatalf("expected persisted %+v, got %+v (%v)", want, reloaded, err)
	}
	if keys := store.Keys(); len(keys) != 1 || keys[0] != "accessibility-settings" {
		t.Fatalf("expected one global key, got %v", keys)
	}
}

func TestSubscribersSeeUpdatesUntilUnsubscribed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newInteractor(kv.NewMemoryStore())
	var first, second []dto.SettingsOutput
	stopFirst := uc.Subscribe(func(s dto.SettingsOutput) { first = append(first, s) })
	stopSecond := uc.Subscribe(func(s dto.SettingsOutput) { second = append(second, s) })
	defer stopSecond()

	if _, err := uc.Update(ctx, dto.UpdateInput{FontSize: intPtr(18)}); err != nil {
		t.Fatalf("update: %v", err)
	}
	stopFirst()
	stopFirst()
	if _, err := uc.Update(ctx, dto.UpdateInput{HighContrast: boolPtr(true)}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(first) != 1 || first[0].FontSize != 18 {
		t.Fatalf("unexpected first subscriber events: %+v", first)
	}
	if len(second) != 2 || !second[1].HighContrast || second[1].FontSize != 18 {
		t.Fatalf("unexpected second subscriber events: %+v", second)
	}
}
