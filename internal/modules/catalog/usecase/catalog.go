package usecase

import (
	"context"
	"strings"

	"vlx/internal/modules/catalog/domain"
	"vlx/internal/modules/catalog/dto"
	catalogin "vlx/internal/modules/catalog/port/in"
	"vlx/internal/modules/catalog/service"
)

type Interactor struct {
	svc *service.CatalogService
}

func NewInteractor(svc *service.CatalogService) catalogin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListLabs(ctx context.Context, input dto.ListInput) ([]dto.LabOutput, error) {
	labs, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	branch := strings.ToLower(strings.TrimSpace(input.Branch))
	out := make([]dto.LabOutput, 0, len(labs))
	for _, lab := range labs {
		if branch != "" && strings.ToLower(lab.Branch) != branch {
			continue
		}
		out = append(out, dto.LabOutput{ID: lab.ID, Title: lab.Title, Branch: lab.Branch, Difficulty: lab.Difficulty})
	}
	return out, nil
}

func (i *Interactor) GetLab(ctx context.Context, labID string) (dto.LabDetailOutput, error) {
	lab, err := i.svc.Get(ctx, labID)
	if err != nil {
		return dto.LabDetailOutput{}, err
	}
	return toDetail(lab), nil
}

func toDetail(lab domain.Lab) dto.LabDetailOutput {
	tools := make([]dto.ToolOutput, 0, len(lab.Tools))
	for _, t := range lab.Tools {
		tools = append(tools, dto.ToolOutput{ID: t.ID, Name: t.Name})
	}
	params := make([]dto.ParameterOutput, 0, len(lab.Parameters))
	for _, p := range lab.Parameters {
		params = append(params, dto.ParameterOutput{Name: p.Name, Unit: p.Unit, Min: p.Min, Max: p.Max, Default: p.Default})
	}
	return dto.LabDetailOutput{
		ID:            lab.ID,
		Title:         lab.Title,
		Branch:        lab.Branch,
		Difficulty:    lab.Difficulty,
		Summary:       lab.Summary,
		Prerequisites: append([]string(nil), lab.Prerequisites...),
		Tools:         tools,
		Parameters:    params,
	}
}
