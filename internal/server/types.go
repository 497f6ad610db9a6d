package server

import (
	"time"

	catalogdto "vlx/internal/modules/catalog/dto"
	entrancedto "vlx/internal/modules/entrance/dto"
	resultsdto "vlx/internal/modules/results/dto"
	settingsdto "vlx/internal/modules/settings/dto"
	workplacedto "vlx/internal/modules/workplace/dto"
)

type labResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Branch     string `json:"branch"`
	Difficulty int    `json:"difficulty"`
}

type toolResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type parameterSpecResponse struct {
	Name    string  `json:"name"`
	Unit    string  `json:"unit,omitempty"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

type labDetailResponse struct {
	labResponse
	Summary       string                  `json:"summary,omitempty"`
	Prerequisites []string                `json:"prerequisites"`
	Tools         []toolResponse          `json:"tools"`
	Parameters    []parameterSpecResponse `json:"parameters"`
}

// configBody is both the SessionConfig response and the enter request.
type configBody struct {
	LabID          string   `json:"labId,omitempty"`
	Mode           string   `json:"mode"`
	Difficulty     int      `json:"difficulty"`
	Tools          []string `json:"tools"`
	SkipTutorial   bool     `json:"skipTutorial"`
	Sustainability bool     `json:"sustainability"`
}

type entrancePatch struct {
	Mode           *string  `json:"mode"`
	Difficulty     *int     `json:"difficulty"`
	SkipTutorial   *bool    `json:"skipTutorial"`
	Sustainability *bool    `json:"sustainability"`
	ToggleTools    []string `json:"toggleTools"`
}

type parameterResponse struct {
	Name  string  `json:"name"`
	Unit  string  `json:"unit,omitempty"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Value float64 `json:"value"`
}

type stateResponse struct {
	LabID                 string              `json:"labId"`
	LabTitle              string              `json:"labTitle"`
	SelectedTools         []string            `json:"selectedTools"`
	Parameters            []parameterResponse `json:"parameters"`
	Progress              int                 `json:"progress"`
	Paused                bool                `json:"paused"`
	SustainabilityEnabled bool                `json:"sustainabilityEnabled"`
	Phase                 string              `json:"phase"`
	Ready                 bool                `json:"ready"`
}

type parameterBody struct {
	Value float64 `json:"value"`
}

type completeBody struct {
	Score int `json:"score"`
}

type resultResponse struct {
	ID        string    `json:"id"`
	LabID     string    `json:"labId"`
	LabTitle  string    `json:"labTitle"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

type completeResponse struct {
	State  stateResponse  `json:"state"`
	Result resultResponse `json:"result"`
}

type settingsBody struct {
	FontSize        int  `json:"fontSize"`
	HighContrast    bool `json:"highContrast"`
	HapticIntensity int  `json:"hapticIntensity"`
}

type settingsPatch struct {
	FontSize        *int  `json:"fontSize"`
	HighContrast    *bool `json:"highContrast"`
	HapticIntensity *int  `json:"hapticIntensity"`
}

func toLabDetail(lab catalogdto.LabDetailOutput) labDetailResponse {
	out := labDetailResponse{
		labResponse:   labResponse{ID: lab.ID, Title: lab.Title, Branch: lab.Branch, Difficulty: lab.Difficulty},
		Summary:       lab.Summary,
		Prerequisites: append([]string{}, lab.Prerequisites...),
		Tools:         make([]toolResponse, 0, len(lab.Tools)),
		Parameters:    make([]parameterSpecResponse, 0, len(lab.Parameters)),
	}
	for _, t := range lab.Tools {
		out.Tools = append(out.Tools, toolResponse{ID: t.ID, Name: t.Name})
	}
	for _, p := range lab.Parameters {
		out.Parameters = append(out.Parameters, parameterSpecResponse{Name: p.Name, Unit: p.Unit, Min: p.Min, Max: p.Max, Default: p.Default})
	}
	return out
}

func toConfig(cfg entrancedto.ConfigOutput) configBody {
	return configBody{
		LabID:          cfg.LabID,
		Mode:           cfg.Mode,
		Difficulty:     cfg.Difficulty,
		Tools:          append([]string{}, cfg.Tools...),
		SkipTutorial:   cfg.SkipTutorial,
		Sustainability: cfg.Sustainability,
	}
}

func toState(s workplacedto.StateOutput) stateResponse {
	params := make([]parameterResponse, 0, len(s.Parameters))
	for _, p := range s.Parameters {
		params = append(params, parameterResponse{Name: p.Name, Unit: p.Unit, Min: p.Min, Max: p.Max, Value: p.Value})
	}
	return stateResponse{
		LabID:                 s.LabID,
		LabTitle:              s.LabTitle,
		SelectedTools:         append([]string{}, s.SelectedTools...),
		Parameters:            params,
		Progress:              s.Progress,
		Paused:                s.Paused,
		SustainabilityEnabled: s.SustainabilityEnabled,
		Phase:                 s.Phase,
		Ready:                 s.Ready,
	}
}

func toResult(r resultsdto.RecordOutput) resultResponse {
	return resultResponse{ID: r.ID, LabID: r.LabID, LabTitle: r.LabTitle, Score: r.Score, Timestamp: r.Timestamp}
}

func toSettings(s settingsdto.SettingsOutput) settingsBody {
	return settingsBody{FontSize: s.FontSize, HighContrast: s.HighContrast, HapticIntensity: s.HapticIntensity}
}
