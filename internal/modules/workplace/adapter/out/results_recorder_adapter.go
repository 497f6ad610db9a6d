package out

import (
	"context"

	resultsdto "vlx/internal/modules/results/dto"
	resultsin "vlx/internal/modules/results/port/in"
	workplaceout "vlx/internal/modules/workplace/port/out"
)

type ResultsRecorderAdapter struct {
	results resultsin.Usecase
}

func NewResultsRecorderAdapter(results resultsin.Usecase) workplaceout.ResultRecorder {
	return &ResultsRecorderAdapter{results: results}
}

func (a *ResultsRecorderAdapter) Record(ctx context.Context, labID, labTitle string, score int) (workplaceout.RecordedResult, error) {
	out, err := a.results.Record(ctx, resultsdto.RecordInput{LabID: labID, LabTitle: labTitle, Score: score})
	if err != nil {
		return workplaceout.RecordedResult{}, err
	}
	return workplaceout.RecordedResult{ID: out.ID, Score: out.Score, Timestamp: out.Timestamp}, nil
}
