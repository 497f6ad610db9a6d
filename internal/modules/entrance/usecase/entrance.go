package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	catalogin "vlx/internal/modules/catalog/port/in"
	"vlx/internal/modules/entrance/domain"
	"vlx/internal/modules/entrance/dto"
	entrancein "vlx/internal/modules/entrance/port/in"
	"vlx/internal/modules/entrance/service"
	apperrors "vlx/internal/platform/errors"
)

type Interactor struct {
	svc     *service.EntranceService
	catalog catalogin.Usecase
	mu      sync.Mutex
}

// NewInteractor wires the entrance use cases. A nil catalog disables lab and
// tool checks.
func NewInteractor(svc *service.EntranceService, catalog catalogin.Usecase) entrancein.Usecase {
	return &Interactor{svc: svc, catalog: catalog}
}

func (i *Interactor) Load(ctx context.Context, labID string) (dto.ConfigOutput, error) {
	if err := i.checkLab(ctx, labID); err != nil {
		return dto.ConfigOutput{}, err
	}
	cfg, err := i.svc.Load(ctx, labID)
	if err != nil {
		return dto.ConfigOutput{}, err
	}
	return toOutput(cfg), nil
}

func (i *Interactor) SetMode(ctx context.Context, labID, mode string) (dto.ConfigOutput, error) {
	parsed, err := domain.ParseMode(mode)
	if err != nil {
		return dto.ConfigOutput{}, err
	}
	if parsed == domain.ModeUnset {
		return dto.ConfigOutput{}, fmt.Errorf("%w: mode must be solo or team", apperrors.ErrInvalidInput)
	}
	return i.mutate(ctx, labID, func(cfg domain.SessionConfig) (domain.SessionConfig, error) {
		cfg.Mode = parsed
		return cfg, nil
	})
}

func (i *Interactor) SetDifficulty(ctx context.Context, labID string, difficulty int) (dto.ConfigOutput, error) {
	if !domain.ValidDifficulty(difficulty) {
		return dto.ConfigOutput{}, fmt.Errorf("%w: difficulty must be 0..%d", apperrors.ErrInvalidInput, domain.MaxDifficulty)
	}
	return i.mutate(ctx, labID, func(cfg domain.SessionConfig) (domain.SessionConfig, error) {
		cfg.Difficulty = difficulty
		return cfg, nil
	})
}

func (i *Interactor) ToggleTool(ctx context.Context, labID, toolID string) (dto.ConfigOutput, error) {
	toolID = strings.TrimSpace(toolID)
	if toolID == "" {
		return dto.ConfigOutput{}, fmt.Errorf("%w: tool id is required", apperrors.ErrInvalidInput)
	}
	if err := i.checkTools(ctx, labID, []string{toolID}); err != nil {
		return dto.ConfigOutput{}, err
	}
	return i.mutate(ctx, labID, func(cfg domain.SessionConfig) (domain.SessionConfig, error) {
		return cfg.ToggleTool(toolID), nil
	})
}

func (i *Interactor) SetSkipTutorial(ctx context.Context, labID string, skip bool) (dto.ConfigOutput, error) {
	return i.mutate(ctx, labID, func(cfg domain.SessionConfig) (domain.SessionConfig, error) {
		cfg.SkipTutorial = skip
		return cfg, nil
	})
}

func (i *Interactor) SetSustainability(ctx context.Context, labID string, enabled bool) (dto.ConfigOutput, error) {
	return i.mutate(ctx, labID, func(cfg domain.SessionConfig) (domain.SessionConfig, error) {
		cfg.SustainabilityMode = enabled
		return cfg, nil
	})
}

// Enter persists input as the lab's configuration when it passes
// validation. Tools past the cap are dropped the same way ToggleTool drops
// them.
func (i *Interactor) Enter(ctx context.Context, input dto.EnterInput) (dto.ConfigOutput, error) {
	labID := strings.TrimSpace(input.LabID)
	if labID == "" {
		return dto.ConfigOutput{}, fmt.Errorf("%w: lab id is required", apperrors.ErrInvalidInput)
	}
	mode, err := domain.ParseMode(input.Mode)
	if err != nil {
		return dto.ConfigOutput{}, err
	}
	cfg := domain.Default(labID)
	cfg.Mode = mode
	cfg.Difficulty = input.Difficulty
	cfg.SkipTutorial = input.SkipTutorial
	cfg.SustainabilityMode = input.Sustainability
	for _, tool := range input.Tools {
		tool = strings.TrimSpace(tool)
		if tool == "" {
			continue
		}
		cfg, _ = cfg.AddTool(tool)
	}
	if err := cfg.Validate(); err != nil {
		return dto.ConfigOutput{}, err
	}
	if err := i.checkTools(ctx, labID, cfg.Tools); err != nil {
		return dto.ConfigOutput{}, err
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	entered, err := i.svc.Enter(ctx, cfg)
	if err != nil {
		return dto.ConfigOutput{}, err
	}
	return toOutput(entered), nil
}

func (i *Interactor) Admit(ctx context.Context, labID string) (dto.ConfigOutput, error) {
	cfg, err := i.svc.Load(ctx, labID)
	if err != nil {
		return dto.ConfigOutput{}, err
	}
	if err := cfg.Validate(); err != nil {
		return dto.ConfigOutput{}, err
	}
	return toOutput(cfg), nil
}

func (i *Interactor) mutate(ctx context.Context, labID string, fn func(domain.SessionConfig) (domain.SessionConfig, error)) (dto.ConfigOutput, error) {
	if err := i.checkLab(ctx, labID); err != nil {
		return dto.ConfigOutput{}, err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	cfg, err := i.svc.Mutate(ctx, labID, fn)
	if err != nil {
		return dto.ConfigOutput{}, err
	}
	return toOutput(cfg), nil
}

func (i *Interactor) checkLab(ctx context.Context, labID string) error {
	if i.catalog == nil {
		return nil
	}
	_, err := i.catalog.GetLab(ctx, labID)
	return err
}

func (i *Interactor) checkTools(ctx context.Context, labID string, tools []string) error {
	if i.catalog == nil {
		return nil
	}
	lab, err := i.catalog.GetLab(ctx, labID)
	if err != nil {
		return err
	}
	for _, tool := range tools {
		if !lab.HasTool(tool) {
			return fmt.Errorf("%w: lab %s has no tool %s", apperrors.ErrInvalidInput, lab.ID, tool)
		}
	}
	return nil
}

func toOutput(cfg domain.SessionConfig) dto.ConfigOutput {
	return dto.ConfigOutput{
		LabID:          cfg.LabID,
		Mode:           string(cfg.Mode),
		Difficulty:     cfg.Difficulty,
		Tools:          append([]string{}, cfg.Tools...),
		SkipTutorial:   cfg.SkipTutorial,
		Sustainability: cfg.SustainabilityMode,
	}
}
