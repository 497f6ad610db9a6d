package service

import (
	"context"
	"fmt"
	"strings"

	"vlx/internal/modules/entrance/domain"
	entranceout "vlx/internal/modules/entrance/port/out"
	apperrors "vlx/internal/platform/errors"
)

type EntranceService struct {
	store entranceout.ConfigStore
}

func NewEntranceService(store entranceout.ConfigStore) *EntranceService {
	return &EntranceService{store: store}
}

// Load returns the persisted configuration or the defaults when none exists.
func (s *EntranceService) Load(ctx context.Context, labID string) (domain.SessionConfig, error) {
	labID = strings.TrimSpace(labID)
	if labID == "" {
		return domain.SessionConfig{}, fmt.Errorf("%w: lab id is required", apperrors.ErrInvalidInput)
	}
	cfg, found, err := s.store.Load(ctx, labID)
	if err != nil {
		return domain.SessionConfig{}, err
	}
	if !found {
		return domain.Default(labID), nil
	}
	return cfg, nil
}

func (s *EntranceService) Save(ctx context.Context, config domain.SessionConfig) error {
	if strings.TrimSpace(config.LabID) == "" {
		return fmt.Errorf("%w: lab id is required", apperrors.ErrInvalidInput)
	}
	return s.store.Save(ctx, config)
}

// Mutate applies fn to the current configuration and persists the whole
// record when fn succeeds.
func (s *EntranceService) Mutate(ctx context.Context, labID string, fn func(domain.SessionConfig) (domain.SessionConfig, error)) (domain.SessionConfig, error) {
	current, err := s.Load(ctx, labID)
	if err != nil {
		return domain.SessionConfig{}, err
	}
	next, err := fn(current.Clone())
	if err != nil {
		return domain.SessionConfig{}, err
	}
	next.LabID = current.LabID
	if err := s.store.Save(ctx, next); err != nil {
		return domain.SessionConfig{}, err
	}
	return next, nil
}

// Enter validates config and persists it only when it allows a session to
// start. A rejected config leaves the stored record untouched.
func (s *EntranceService) Enter(ctx context.Context, config domain.SessionConfig) (domain.SessionConfig, error) {
	if err := config.Validate(); err != nil {
		return domain.SessionConfig{}, err
	}
	if err := s.Save(ctx, config); err != nil {
		return domain.SessionConfig{}, err
	}
	return config, nil
}
