package usecase_test

import (
	"context"
	"errors"
	"testing"

	catalogdomain "vlx/internal/modules/catalog/domain"
	catalogservice "vlx/internal/modules/catalog/service"
	catalogusecase "vlx/internal/modules/catalog/usecase"
	entranceout "vlx/internal/modules/entrance/adapter/out"
	"vlx/internal/modules/entrance/dto"
	entrancein "vlx/internal/modules/entrance/port/in"
	"vlx/internal/modules/entrance/service"
	"vlx/internal/modules/entrance/usecase"
	apperrors "vlx/internal/platform/errors"
	"vlx/internal/platform/kv"
	"vlx/internal/platform/logging"
)

type staticSource []catalogdomain.Lab

func (s staticSource) List(context.Context) ([]catalogdomain.Lab, error) {
	return append([]catalogdomain.Lab(nil), s...), nil
}

var testLabs = staticSource{{
	ID:     "optics",
	Title:  "Optics",
	Branch: "physics",
	Tools: []catalogdomain.Tool{
		{ID: "laser", Name: "Laser"},
		{ID: "prism", Name: "Prism"},
		{ID: "lens", Name: "Lens"},
		{ID: "screen", Name: "Screen"},
		{ID: "ruler", Name: "Ruler"},
	},
}}

func newInteractor(store kv.Store) entrancein.Usecase {
	catalog := catalogusecase.NewInteractor(catalogservice.NewCatalogService(testLabs))
	svc := service.NewEntranceService(entranceout.NewKVConfigStore(store, logging.Discard()))
	return usecase.NewInteractor(svc, catalog)
}

func TestLoadReturnsDefaultsForUnknownConfig(t *testing.T) {
	t.Parallel()
	uc := newInteractor(kv.NewMemoryStore())
	cfg, err := uc.Load(context.Background(), "optics")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LabID != "optics" || cfg.Mode != "" || cfg.Difficulty != 0 || len(cfg.Tools) != 0 || cfg.SkipTutorial || cfg.Sustainability {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestMutationsPersistWholeRecord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	uc := newInteractor(store)
	if _, err := uc.SetMode(ctx, "optics", "team"); err != nil {
		t.Fatalf("set mode: %v", err)
	}
	if _, err := uc.SetDifficulty(ctx, "optics", 2); err != nil {
		t.Fatalf("set difficulty: %v", err)
	}
	if _, err := uc.ToggleTool(ctx, "optics", "laser"); err != nil {
		t.Fatalf("toggle tool: %v", err)
	}
	if _, err := uc.SetSkipTutorial(ctx, "optics", true); err != nil {
		t.Fatalf("skip tutorial: %v", err)
	}
	if _, err := uc.SetSustainability(ctx, "optics", true); err != nil {
		t.Fatalf("sustainability: %v", err)
	}

	reloaded, err := newInteractor(store).Load(ctx, "optics")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Mode != "team" || reloaded.Difficulty != 2 || len(reloaded.Tools) != 1 || reloaded.Tools[0] != "laser" || !reloaded.SkipTutorial || !reloaded.Sustainability {
		t.Fatalf("unexpected reloaded config: %+v", reloaded)
	}
	if keys := store.Keys(); len(keys) != 1 || keys[0] != "lab-entrance-optics" {
		t.Fatalf("expected a single entrance key, got %v", keys)
	}
}

func TestFourthToolIsIgnoredSilently(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newInteractor(kv.NewMemoryStore())
	for _, tool := range []string{"laser", "prism", "lens"} {
		if _, err := uc.ToggleTool(ctx, "optics", tool); err != nil {
			t.Fatalf("toggle %s: %v", tool, err)
		}
	}
	cfg, err := uc.ToggleTool(ctx, "optics", "screen")
	if err != nil {
		t.Fatalf("expected no error for a fourth tool, got %v", err)
	}
	if len(cfg.Tools) != 3 || cfg.Tools[0] != "laser" || cfg.Tools[1] != "prism" || cfg.Tools[2] != "lens" {
		t.Fatalf("expected loadout unchanged, got %v", cfg.Tools)
	}

	cfg, err = uc.ToggleTool(ctx, "optics", "prism")
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if len(cfg.Tools) != 2 || cfg.Tools[1] != "lens" {
		t.Fatalf("expected prism removed, got %v", cfg.Tools)
	}
}

func TestEnterWithoutModeFailsWithoutWriting(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	uc := newInteractor(store)
	_, err := uc.Enter(context.Background(), dto.EnterInput{LabID: "optics", Tools: []string{"laser"}})
	if !errors.Is(err, apperrors.ErrMissingMode) {
		t.Fatalf("expected missing mode, got %v", err)
	}
	if keys := store.Keys(); len(keys) != 0 {
		t.Fatalf("expected no persistence side effect, got keys %v", keys)
	}
	if _, err := uc.Admit(context.Background(), "optics"); !errors.Is(err, apperrors.ErrMissingMode) {
		t.Fatalf("expected admit to refuse, got %v", err)
	}
}

func TestEnterPersistsAndAdmits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	uc := newInteractor(store)
	entered, err := uc.Enter(ctx, dto.EnterInput{
		LabID:      "optics",
		Mode:       "Solo",
		Difficulty: 1,
		Tools:      []string{"laser", "prism", "lens", "screen", "ruler"},
	})
	if err != nil {
		t.Fatalf("enter: %v", err)
	}
	if entered.Mode != "solo" || len(entered.Tools) != 3 || entered.Tools[2] != "lens" {
		t.Fatalf("expected solo with first three tools, got %+v", entered)
	}
	admitted, err := newInteractor(store).Admit(ctx, "optics")
	if err != nil {
		t.Fatalf("admit: %v", err)
	}
	if admitted.Difficulty != 1 || len(admitted.Tools) != 3 {
		t.Fatalf("unexpected admitted config: %+v", admitted)
	}
}

func TestCatalogChecks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newInteractor(kv.NewMemoryStore())
	if _, err := uc.Load(ctx, "chemistry"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected unknown lab, got %v", err)
	}
	if _, err := uc.ToggleTool(ctx, "optics", "burette"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected unknown tool, got %v", err)
	}
	if _, err := uc.Enter(ctx, dto.EnterInput{LabID: "optics", Mode: "team", Tools: []string{"burette"}}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected unknown tool on enter, got %v", err)
	}
	if _, err := uc.SetMode(ctx, "optics", "duo"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid mode, got %v", err)
	}
	if _, err := uc.SetMode(ctx, "optics", ""); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected unset mode to be refused, got %v", err)
	}
	if _, err := uc.SetDifficulty(ctx, "optics", 3); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid difficulty, got %v", err)
	}
}

func TestCorruptConfigFallsBackToDefaults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	if err := store.Set(ctx, kv.Entrance.Key("optics"), []byte("{not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	cfg, err := newInteractor(store).Load(ctx, "optics")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mode != "" || len(cfg.Tools) != 0 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}
