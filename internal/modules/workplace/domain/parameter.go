package domain

import "math"

// Parameter is one adjustable experiment input. Value stays within [Min, Max].
type Parameter struct {
	Name  string  `json:"name"`
	Unit  string  `json:"unit,omitempty"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Value float64 `json:"value"`
}

// Ratio is the normalized position of Value between Min and Max. A
// degenerate range contributes nothing.
func (p Parameter) Ratio() float64 {
	span := p.Max - p.Min
	if span <= 0 {
		return 0
	}
	r := (p.Value - p.Min) / span
	return math.Max(0, math.Min(1, r))
}

// Clamp pins v to the parameter range.
func (p Parameter) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return p.Min
	}
	return math.Max(p.Min, math.Min(p.Max, v))
}
