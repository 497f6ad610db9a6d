package out

import (
	"context"
	"time"

	"vlx/internal/modules/workplace/domain"
)

type StateStore interface {
	Load(ctx context.Context, labID string) (domain.Workplace, bool, error)
	Save(ctx context.Context, workplace domain.Workplace) error
}

// LabInfo is the part of a catalog lab the workplace is built from.
type LabInfo struct {
	ID         string
	Title      string
	Tools      []string
	Parameters []domain.Parameter
}

type LabResolver interface {
	Resolve(ctx context.Context, labID string) (LabInfo, error)
}

// Admission is the entrance configuration a session starts with.
type Admission struct {
	Tools          []string
	Sustainability bool
}

type EntranceGate interface {
	Admit(ctx context.Context, labID string) (Admission, error)
}

type RecordedResult struct {
	ID        string
	Score     int
	Timestamp time.Time
}

type ResultRecorder interface {
	Record(ctx context.Context, labID, labTitle string, score int) (RecordedResult, error)
}
