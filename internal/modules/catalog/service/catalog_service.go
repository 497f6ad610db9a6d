package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"vlx/internal/modules/catalog/domain"
	catalogout "vlx/internal/modules/catalog/port/out"
	apperrors "vlx/internal/platform/errors"
)

type CatalogService struct {
	source catalogout.LabSource
}

func NewCatalogService(source catalogout.LabSource) *CatalogService {
	return &CatalogService{source: source}
}

// List returns every lab ordered by branch, then title. A catalog holding an
// invalid or duplicated lab is rejected as a whole.
func (s *CatalogService) List(ctx context.Context) ([]domain.Lab, error) {
	labs, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	seen := make(map[string]struct{}, len(labs))
	for _, lab := range labs {
		if err := lab.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		if _, ok := seen[lab.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate lab id %s", apperrors.ErrInvalidInput, lab.ID)
		}
		seen[lab.ID] = struct{}{}
	}
	sort.SliceStable(labs, func(i, j int) bool {
		if labs[i].Branch != labs[j].Branch {
			return labs[i].Branch < labs[j].Branch
		}
		return labs[i].Title < labs[j].Title
	})
	return labs, nil
}

func (s *CatalogService) Get(ctx context.Context, labID string) (domain.Lab, error) {
	labID = strings.TrimSpace(labID)
	if labID == "" {
		return domain.Lab{}, fmt.Errorf("%w: lab id is required", apperrors.ErrInvalidInput)
	}
	labs, err := s.List(ctx)
	if err != nil {
		return domain.Lab{}, err
	}
	for _, lab := range labs {
		if lab.ID == labID {
			return lab, nil
		}
	}
	return domain.Lab{}, fmt.Errorf("%w: lab %s", apperrors.ErrNotFound, labID)
}
