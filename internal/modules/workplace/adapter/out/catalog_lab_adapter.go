package out

import (
	"context"

	catalogin "vlx/internal/modules/catalog/port/in"
	"vlx/internal/modules/workplace/domain"
	workplaceout "vlx/internal/modules/workplace/port/out"
)

type CatalogLabAdapter struct {
	catalog catalogin.Usecase
}

func NewCatalogLabAdapter(catalog catalogin.Usecase) workplaceout.LabResolver {
	return &CatalogLabAdapter{catalog: catalog}
}

func (a *CatalogLabAdapter) Resolve(ctx context.Context, labID string) (workplaceout.LabInfo, error) {
	lab, err := a.catalog.GetLab(ctx, labID)
	if err != nil {
		return workplaceout.LabInfo{}, err
	}
	info := workplaceout.LabInfo{ID: lab.ID, Title: lab.Title}
	for _, tool := range lab.Tools {
		info.Tools = append(info.Tools, tool.ID)
	}
	for _, p := range lab.Parameters {
		info.Parameters = append(info.Parameters, domain.Parameter{Name: p.Name, Unit: p.Unit, Min: p.Min, Max: p.Max, Value: p.Default})
	}
	return info, nil
}
