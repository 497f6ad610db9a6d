package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	catalogdto "vlx/internal/modules/catalog/dto"
	entrancedto "vlx/internal/modules/entrance/dto"
	settingsdto "vlx/internal/modules/settings/dto"
	workplacedto "vlx/internal/modules/workplace/dto"
	apperrors "vlx/internal/platform/errors"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the application's sentinel errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, apperrors.ErrMissingMode):
		status, code = http.StatusUnprocessableEntity, "missing_mode"
	case errors.Is(err, apperrors.ErrNotReady):
		status, code = http.StatusConflict, "not_ready"
	case errors.Is(err, apperrors.ErrSessionCompleted):
		status, code = http.StatusConflict, "session_completed"
	case errors.Is(err, apperrors.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, apperrors.ErrInvalidInput):
		status, code = http.StatusBadRequest, "invalid_input"
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error(), Code: code})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", apperrors.ErrInvalidInput, err)
	}
	return nil
}

func (s *Server) handleListLabs(w http.ResponseWriter, r *http.Request) {
	labs, err := s.uc.Catalog.ListLabs(r.Context(), catalogdto.ListInput{Branch: r.URL.Query().Get("branch")})
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]labResponse, 0, len(labs))
	for _, lab := range labs {
		out = append(out, labResponse{ID: lab.ID, Title: lab.Title, Branch: lab.Branch, Difficulty: lab.Difficulty})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetLab(w http.ResponseWriter, r *http.Request) {
	lab, err := s.uc.Catalog.GetLab(r.Context(), chi.URLParam(r, "labID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLabDetail(lab))
}

func (s *Server) handleGetEntrance(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.uc.Entrance.Load(r.Context(), chi.URLParam(r, "labID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toConfig(cfg))
}

// handlePutEntrance applies the fields present in the body one by one, the
// same way the entrance form does.
func (s *Server) handlePutEntrance(w http.ResponseWriter, r *http.Request) {
	var req entrancePatch
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	ctx := r.Context()
	labID := chi.URLParam(r, "labID")
	cfg, err := s.uc.Entrance.Load(ctx, labID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	steps := []func() (entrancedto.ConfigOutput, error){}
	if req.Mode != nil {
		steps = append(steps, func() (entrancedto.ConfigOutput, error) { return s.uc.Entrance.SetMode(ctx, labID, *req.Mode) })
	}
	if req.Difficulty != nil {
		steps = append(steps, func() (entrancedto.ConfigOutput, error) {
			return s.uc.Entrance.SetDifficulty(ctx, labID, *req.Difficulty)
		})
	}
	if req.SkipTutorial != nil {
		steps = append(steps, func() (entrancedto.ConfigOutput, error) {
			return s.uc.Entrance.SetSkipTutorial(ctx, labID, *req.SkipTutorial)
		})
	}
	if req.Sustainability != nil {
		steps = append(steps, func() (entrancedto.ConfigOutput, error) {
			return s.uc.Entrance.SetSustainability(ctx, labID, *req.Sustainability)
		})
	}
	for _, tool := range req.ToggleTools {
		tool := tool
		steps = append(steps, func() (entrancedto.ConfigOutput, error) { return s.uc.Entrance.ToggleTool(ctx, labID, tool) })
	}
	for _, step := range steps {
		if cfg, err = step(); err != nil {
			s.writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, toConfig(cfg))
}

func (s *Server) handleEnter(w http.ResponseWriter, r *http.Request) {
	var req configBody
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	cfg, err := s.uc.Entrance.Enter(r.Context(), entrancedto.EnterInput{
		LabID:          chi.URLParam(r, "labID"),
		Mode:           req.Mode,
		Difficulty:     req.Difficulty,
		Tools:          req.Tools,
		SkipTutorial:   req.SkipTutorial,
		Sustainability: req.Sustainability,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toConfig(cfg))
}

func (s *Server) handleGetWorkplace(w http.ResponseWriter, r *http.Request) {
	s.writeState(w, func() (workplacedto.StateOutput, error) {
		return s.uc.Workplace.Open(r.Context(), chi.URLParam(r, "labID"))
	})
}

func (s *Server) handleToggleTool(w http.ResponseWriter, r *http.Request) {
	s.writeState(w, func() (workplacedto.StateOutput, error) {
		return s.uc.Workplace.ToggleTool(r.Context(), chi.URLParam(r, "labID"), chi.URLParam(r, "toolID"))
	})
}

func (s *Server) handleSetParameter(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: parameter index must be an integer", apperrors.ErrInvalidInput))
		return
	}
	var req parameterBody
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeState(w, func() (workplacedto.StateOutput, error) {
		return s.uc.Workplace.SetParameter(r.Context(), workplacedto.SetParameterInput{
			LabID: chi.URLParam(r, "labID"),
			Index: index,
			Value: req.Value,
		})
	})
}

func (s *Server) handleTogglePause(w http.ResponseWriter, r *http.Request) {
	s.writeState(w, func() (workplacedto.StateOutput, error) {
		return s.uc.Workplace.TogglePause(r.Context(), chi.URLParam(r, "labID"))
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.writeState(w, func() (workplacedto.StateOutput, error) {
		return s.uc.Workplace.Reset(r.Context(), chi.URLParam(r, "labID"))
	})
}

func (s *Server) writeState(w http.ResponseWriter, fn func() (workplacedto.StateOutput, error)) {
	state, err := fn()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toState(state))
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	var req completeBody
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	out, err := s.uc.Workplace.AttemptComplete(r.Context(), workplacedto.CompleteInput{
		LabID: chi.URLParam(r, "labID"),
		Score: req.Score,
	})
	s.metrics.observeCompletion(err)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, completeResponse{
		State: toState(out.State),
		Result: resultResponse{
			ID:        out.ResultID,
			LabID:     out.State.LabID,
			LabTitle:  out.State.LabTitle,
			Score:     out.Score,
			Timestamp: out.Timestamp,
		},
	})
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	records, err := s.uc.Results.History(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]resultResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toResult(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLatestResult(w http.ResponseWriter, r *http.Request) {
	rec, err := s.uc.Results.Latest(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResult(rec))
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.uc.Settings.Get(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettings(settings))
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsPatch
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	settings, err := s.uc.Settings.Update(r.Context(), settingsdto.UpdateInput{
		FontSize:        req.FontSize,
		HighContrast:    req.HighContrast,
		HapticIntensity: req.HapticIntensity,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettings(settings))
}
