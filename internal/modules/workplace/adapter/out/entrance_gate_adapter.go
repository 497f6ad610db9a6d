package out

import (
	"context"

	entrancein "vlx/internal/modules/entrance/port/in"
	workplaceout "vlx/internal/modules/workplace/port/out"
)

type EntranceGateAdapter struct {
	entrance entrancein.Usecase
}

func NewEntranceGateAdapter(entrance entrancein.Usecase) workplaceout.EntranceGate {
	return &EntranceGateAdapter{entrance: entrance}
}

func (a *EntranceGateAdapter) Admit(ctx context.Context, labID string) (workplaceout.Admission, error) {
	cfg, err := a.entrance.Admit(ctx, labID)
	if err != nil {
		return workplaceout.Admission{}, err
	}
	return workplaceout.Admission{Tools: cfg.Tools, Sustainability: cfg.Sustainability}, nil
}
