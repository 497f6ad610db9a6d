package dto

import "time"

type RecordInput struct {
	LabID    string
	LabTitle string
	Score    int
}

type RecordOutput struct {
	ID        string
	LabID     string
	LabTitle  string
	Score     int
	Timestamp time.Time
}

type ExportInput struct {
	Dir string
}

type ExportOutput struct {
	Dir   string
	Index string
	Notes []string
}
