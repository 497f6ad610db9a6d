package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"vlx/internal/modules/workplace/domain"
	"vlx/internal/modules/workplace/dto"
	workplacein "vlx/internal/modules/workplace/port/in"
	workplaceout "vlx/internal/modules/workplace/port/out"
	"vlx/internal/modules/workplace/service"
	apperrors "vlx/internal/platform/errors"
)

// session is one visit to a lab's workplace. It lives until Close, or until a
// later Open replaces it after completion.
type session struct {
	lab       workplaceout.LabInfo
	workplace domain.Workplace
	gate      domain.Gate
}

type Interactor struct {
	svc      *service.WorkplaceService
	recorder workplaceout.ResultRecorder

	mu       sync.Mutex
	sessions map[string]*session
}

func NewInteractor(svc *service.WorkplaceService, recorder workplaceout.ResultRecorder) workplacein.Usecase {
	return &Interactor{svc: svc, recorder: recorder, sessions: map[string]*session{}}
}

func (i *Interactor) Open(ctx context.Context, labID string) (dto.StateOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if s, ok := i.sessions[key(labID)]; ok && !s.gate.Completed() {
		return toOutput(s), nil
	}
	s, err := i.open(ctx, labID)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return toOutput(s), nil
}

func (i *Interactor) ToggleTool(ctx context.Context, labID, toolID string) (dto.StateOutput, error) {
	toolID = strings.TrimSpace(toolID)
	return i.mutate(ctx, labID, func(s *session) (domain.ExperimentState, error) {
		if !contains(s.lab.Tools, toolID) {
			return domain.ExperimentState{}, fmt.Errorf("%w: lab %s has no tool %q", apperrors.ErrInvalidInput, s.lab.ID, toolID)
		}
		return s.workplace.Experiment.ToggleTool(toolID), nil
	})
}

func (i *Interactor) SetParameter(ctx context.Context, input dto.SetParameterInput) (dto.StateOutput, error) {
	return i.mutate(ctx, input.LabID, func(s *session) (domain.ExperimentState, error) {
		return s.workplace.Experiment.SetParameter(input.Index, input.Value)
	})
}

func (i *Interactor) TogglePause(ctx context.Context, labID string) (dto.StateOutput, error) {
	return i.mutate(ctx, labID, func(s *session) (domain.ExperimentState, error) {
		return s.workplace.Experiment.TogglePause(), nil
	})
}

func (i *Interactor) Reset(ctx context.Context, labID string) (dto.StateOutput, error) {
	return i.mutate(ctx, labID, func(s *session) (domain.ExperimentState, error) {
		return s.workplace.Experiment.Reset(), nil
	})
}

// AttemptComplete records a result for the session when its progress passes
// the completion threshold. The session is completed only once the result
// has been recorded.
func (i *Interactor) AttemptComplete(ctx context.Context, input dto.CompleteInput) (dto.CompleteOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	s, err := i.current(ctx, input.LabID)
	if err != nil {
		return dto.CompleteOutput{}, err
	}
	gate := s.gate
	if err := gate.Attempt(s.workplace.Experiment.Progress); err != nil {
		return dto.CompleteOutput{}, err
	}
	result, err := i.recorder.Record(ctx, s.lab.ID, s.lab.Title, input.Score)
	if err != nil {
		return dto.CompleteOutput{}, err
	}
	s.gate = gate
	return dto.CompleteOutput{
		State:     toOutput(s),
		ResultID:  result.ID,
		Score:     result.Score,
		Timestamp: result.Timestamp,
	}, nil
}

func (i *Interactor) Close(_ context.Context, labID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.sessions, key(labID))
	return nil
}

func (i *Interactor) mutate(ctx context.Context, labID string, fn func(*session) (domain.ExperimentState, error)) (dto.StateOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	s, err := i.current(ctx, labID)
	if err != nil {
		return dto.StateOutput{}, err
	}
	if s.gate.Completed() {
		return dto.StateOutput{}, apperrors.ErrSessionCompleted
	}
	next, err := fn(s)
	if err != nil {
		return dto.StateOutput{}, err
	}
	w := domain.Workplace{Experiment: next, SustainabilityEnabled: s.workplace.SustainabilityEnabled}
	if err := i.svc.Save(ctx, w); err != nil {
		return dto.StateOutput{}, err
	}
	s.workplace = w
	return toOutput(s), nil
}

// current returns the open session of labID, opening one when needed.
// Callers hold i.mu.
func (i *Interactor) current(ctx context.Context, labID string) (*session, error) {
	if s, ok := i.sessions[key(labID)]; ok {
		return s, nil
	}
	return i.open(ctx, labID)
}

func (i *Interactor) open(ctx context.Context, labID string) (*session, error) {
	w, lab, err := i.svc.Open(ctx, labID)
	if err != nil {
		return nil, err
	}
	s := &session{lab: lab, workplace: w, gate: domain.NewGate()}
	i.sessions[key(labID)] = s
	return s, nil
}

func key(labID string) string {
	return strings.TrimSpace(labID)
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

func toOutput(s *session) dto.StateOutput {
	exp := s.workplace.Experiment
	params := make([]dto.ParameterOutput, 0, len(exp.Parameters))
	for _, p := range exp.Parameters {
		params = append(params, dto.ParameterOutput{Name: p.Name, Unit: p.Unit, Min: p.Min, Max: p.Max, Value: p.Value})
	}
	return dto.StateOutput{
		LabID:                 exp.LabID,
		LabTitle:              s.lab.Title,
		SelectedTools:         append([]string{}, exp.SelectedTools...),
		Parameters:            params,
		Progress:              exp.Progress,
		Paused:                exp.Paused,
		SustainabilityEnabled: s.workplace.SustainabilityEnabled,
		Phase:                 string(s.gate.Phase()),
		Ready:                 exp.Progress >= domain.CompletionThreshold,
	}
}
