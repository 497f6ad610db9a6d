// Package server exposes the lab session commands over HTTP with JSON bodies.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	catalogin "vlx/internal/modules/catalog/port/in"
	entrancein "vlx/internal/modules/entrance/port/in"
	resultsin "vlx/internal/modules/results/port/in"
	settingsin "vlx/internal/modules/settings/port/in"
	workplacein "vlx/internal/modules/workplace/port/in"
)

// Usecases are the inbound ports the routes dispatch to.
type Usecases struct {
	Catalog   catalogin.Usecase
	Entrance  entrancein.Usecase
	Workplace workplacein.Usecase
	Results   resultsin.Usecase
	Settings  settingsin.Usecase
}

type Server struct {
	uc      Usecases
	log     *slog.Logger
	metrics *Metrics
	router  chi.Router
}

// New creates a Server with all routes configured.
func New(uc Usecases, log *slog.Logger) *Server {
	s := &Server{uc: uc, log: log, metrics: NewMetrics(), router: chi.NewRouter()}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(Recover(s.log))
	s.router.Use(RequestLogging(s.log))
	s.router.Use(s.metrics.Instrument)

	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.router.Get("/labs", s.handleListLabs)
	s.router.Route("/labs/{labID}", func(r chi.Router) {
		r.Get("/", s.handleGetLab)
		r.Get("/entrance", s.handleGetEntrance)
		r.Put("/entrance", s.handlePutEntrance)
		r.Post("/enter", s.handleEnter)
		r.Get("/workplace", s.handleGetWorkplace)
		r.Post("/workplace/tools/{toolID}", s.handleToggleTool)
		r.Put("/workplace/parameters/{index}", s.handleSetParameter)
		r.Post("/workplace/pause", s.handleTogglePause)
		r.Post("/workplace/reset", s.handleReset)
		r.Post("/complete", s.handleComplete)
	})
	s.router.Get("/results", s.handleListResults)
	s.router.Get("/results/latest", s.handleLatestResult)
	s.router.Get("/settings", s.handleGetSettings)
	s.router.Put("/settings", s.handlePutSettings)
}
