package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"vlx/internal/modules/results/domain"
	"vlx/internal/modules/results/dto"
	resultsin "vlx/internal/modules/results/port/in"
	resultsout "vlx/internal/modules/results/port/out"
	"vlx/internal/modules/results/service"
	apperrors "vlx/internal/platform/errors"
)

type Interactor struct {
	svc      *service.ResultService
	exporter resultsout.Exporter
	mu       sync.Mutex
}

// NewInteractor wires the result use cases. Export fails when exporter is nil.
func NewInteractor(svc *service.ResultService, exporter resultsout.Exporter) resultsin.Usecase {
	return &Interactor{svc: svc, exporter: exporter}
}

func (i *Interactor) Record(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error) {
	record, err := i.svc.Record(input.LabID, input.LabTitle, input.Score)
	if err != nil {
		return dto.RecordOutput{}, err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, err := i.svc.AppendToHistory(ctx, record); err != nil {
		return dto.RecordOutput{}, err
	}
	return toOutput(record), nil
}

func (i *Interactor) History(ctx context.Context) ([]dto.RecordOutput, error) {
	history, err := i.svc.History(ctx)
	if err != nil {
		return nil, err
	}
	records := history.Records()
	out := make([]dto.RecordOutput, 0, len(records))
	for _, r := range records {
		out = append(out, toOutput(r))
	}
	return out, nil
}

func (i *Interactor) Latest(ctx context.Context) (dto.RecordOutput, error) {
	history, err := i.svc.History(ctx)
	if err != nil {
		return dto.RecordOutput{}, err
	}
	latest, ok := history.Latest()
	if !ok {
		return dto.RecordOutput{}, fmt.Errorf("%w: no results recorded", apperrors.ErrNotFound)
	}
	return toOutput(latest), nil
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	dir := strings.TrimSpace(input.Dir)
	if dir == "" {
		return dto.ExportOutput{}, fmt.Errorf("%w: export directory is required", apperrors.ErrInvalidInput)
	}
	if i.exporter == nil {
		return dto.ExportOutput{}, fmt.Errorf("%w: result export is not configured", apperrors.ErrInvalidInput)
	}
	history, err := i.svc.History(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	index, notes, err := i.exporter.Export(ctx, dir, history.Records())
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Dir: dir, Index: index, Notes: notes}, nil
}

func toOutput(r domain.ResultRecord) dto.RecordOutput {
	return dto.RecordOutput{ID: r.ID, LabID: r.LabID, LabTitle: r.LabTitle, Score: r.Score, Timestamp: r.Timestamp}
}
