package dto

import "time"

type ParameterOutput struct {
	Name  string
	Unit  string
	Min   float64
	Max   float64
	Value float64
}

type StateOutput struct {
	LabID                 string
	LabTitle              string
	SelectedTools         []string
	Parameters            []ParameterOutput
	Progress              int
	Paused                bool
	SustainabilityEnabled bool
	Phase                 string
	Ready                 bool
}

type SetParameterInput struct {
	LabID string
	Index int
	Value float64
}

type CompleteInput struct {
	LabID string
	Score int
}

type CompleteOutput struct {
	State     StateOutput
	ResultID  string
	Score     int
	Timestamp time.Time
}
