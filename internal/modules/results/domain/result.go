package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "vlx/internal/platform/errors"
)

const (
	// HistoryCapacity is the number of results kept; older ones are evicted.
	HistoryCapacity = 10
	MaxScore        = 100
)

// ResultRecord is the immutable outcome of one completed session.
type ResultRecord struct {
	ID        string    `json:"id"`
	LabID     string    `json:"labId"`
	LabTitle  string    `json:"labTitle"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

func NewResultRecord(id, labID, labTitle string, score int, at time.Time) (ResultRecord, error) {
	labID = strings.TrimSpace(labID)
	if labID == "" {
		return ResultRecord{}, fmt.Errorf("%w: lab id is required", apperrors.ErrInvalidInput)
	}
	if score < 0 || score > MaxScore {
		return ResultRecord{}, fmt.Errorf("%w: score must be 0..%d", apperrors.ErrInvalidInput, MaxScore)
	}
	title := strings.TrimSpace(labTitle)
	if title == "" {
		title = labID
	}
	return ResultRecord{ID: id, LabID: labID, LabTitle: title, Score: score, Timestamp: at.UTC()}, nil
}
