package service

import (
	"context"
	"fmt"
	"strings"

	"vlx/internal/modules/workplace/domain"
	workplaceout "vlx/internal/modules/workplace/port/out"
	apperrors "vlx/internal/platform/errors"
)

type WorkplaceService struct {
	store    workplaceout.StateStore
	labs     workplaceout.LabResolver
	entrance workplaceout.EntranceGate
}

func NewWorkplaceService(store workplaceout.StateStore, labs workplaceout.LabResolver, entrance workplaceout.EntranceGate) *WorkplaceService {
	return &WorkplaceService{store: store, labs: labs, entrance: entrance}
}

// Open admits labID through the entrance and returns its saved workplace, or
// a fresh one built from the lab and the entrance loadout.
func (s *WorkplaceService) Open(ctx context.Context, labID string) (domain.Workplace, workplaceout.LabInfo, error) {
	labID = strings.TrimSpace(labID)
	if labID == "" {
		return domain.Workplace{}, workplaceout.LabInfo{}, fmt.Errorf("%w: lab id is required", apperrors.ErrInvalidInput)
	}
	lab, err := s.labs.Resolve(ctx, labID)
	if err != nil {
		return domain.Workplace{}, workplaceout.LabInfo{}, err
	}
	admission, err := s.entrance.Admit(ctx, lab.ID)
	if err != nil {
		return domain.Workplace{}, workplaceout.LabInfo{}, err
	}
	saved, found, err := s.store.Load(ctx, lab.ID)
	if err != nil {
		return domain.Workplace{}, workplaceout.LabInfo{}, err
	}
	if found {
		return saved, lab, nil
	}
	fresh := domain.Workplace{
		Experiment:            domain.NewExperiment(lab.ID, admission.Tools, lab.Parameters),
		SustainabilityEnabled: admission.Sustainability,
	}
	if err := s.store.Save(ctx, fresh); err != nil {
		return domain.Workplace{}, workplaceout.LabInfo{}, err
	}
	return fresh, lab, nil
}

func (s *WorkplaceService) Save(ctx context.Context, w domain.Workplace) error {
	return s.store.Save(ctx, w)
}
