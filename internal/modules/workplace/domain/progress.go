package domain

import "math"

const (
	// ToolTarget is the number of selected tools that earns the full tool
	// share. It is larger than the entrance loadout cap, so a session entered
	// with three tools needs more tools picked in the workplace to reach it.
	ToolTarget  = 5
	toolWeight  = 50.0
	paramWeight = 50.0
)

// ComputeProgress derives the 0..100 progress of an experiment from its
// selected tools and parameter positions.
func ComputeProgress(selectedTools int, params []Parameter) int {
	toolFactor := math.Min(float64(selectedTools)/ToolTarget, 1) * toolWeight
	paramFactor := 0.0
	if len(params) > 0 {
		sum := 0.0
		for _, p := range params {
			sum += p.Ratio()
		}
		paramFactor = sum / float64(len(params)) * paramWeight
	}
	total := math.Min(toolFactor+paramFactor, 100)
	if total < 0 {
		total = 0
	}
	return int(math.Round(total))
}
