package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	cataloginadapter "vlx/internal/modules/catalog/adapter/in"
	catalogoutadapter "vlx/internal/modules/catalog/adapter/out"
	catalogin "vlx/internal/modules/catalog/port/in"
	catalogout "vlx/internal/modules/catalog/port/out"
	catalogservice "vlx/internal/modules/catalog/service"
	catalogusecase "vlx/internal/modules/catalog/usecase"
	entranceinadapter "vlx/internal/modules/entrance/adapter/in"
	entranceoutadapter "vlx/internal/modules/entrance/adapter/out"
	entrancein "vlx/internal/modules/entrance/port/in"
	entranceservice "vlx/internal/modules/entrance/service"
	entranceusecase "vlx/internal/modules/entrance/usecase"
	resultsinadapter "vlx/internal/modules/results/adapter/in"
	resultsoutadapter "vlx/internal/modules/results/adapter/out"
	resultsin "vlx/internal/modules/results/port/in"
	resultsservice "vlx/internal/modules/results/service"
	resultsusecase "vlx/internal/modules/results/usecase"
	settingsinadapter "vlx/internal/modules/settings/adapter/in"
	settingsoutadapter "vlx/internal/modules/settings/adapter/out"
	settingsin "vlx/internal/modules/settings/port/in"
	settingsservice "vlx/internal/modules/settings/service"
	settingsusecase "vlx/internal/modules/settings/usecase"
	workplaceinadapter "vlx/internal/modules/workplace/adapter/in"
	workplaceoutadapter "vlx/internal/modules/workplace/adapter/out"
	workplacein "vlx/internal/modules/workplace/port/in"
	workplaceservice "vlx/internal/modules/workplace/service"
	workplaceusecase "vlx/internal/modules/workplace/usecase"
	"vlx/internal/platform/clock"
	"vlx/internal/platform/config"
	"vlx/internal/platform/id"
	"vlx/internal/platform/kv"
	"vlx/internal/server"
	uiapp "vlx/internal/ui/app"
)

type App struct {
	CatalogCLI   cataloginadapter.CLIHandler
	EntranceCLI  entranceinadapter.CLIHandler
	WorkplaceCLI workplaceinadapter.CLIHandler
	ResultsCLI   resultsinadapter.CLIHandler
	SettingsCLI  settingsinadapter.CLIHandler

	Catalog   catalogin.Usecase
	Entrance  entrancein.Usecase
	Workplace workplacein.Usecase
	Results   resultsin.Usecase
	Settings  settingsin.Usecase

	log     *slog.Logger
	release func() error
}

// Deps are the outer resources the modules are wired on.
type Deps struct {
	Store   kv.Store
	Labs    catalogout.LabSource
	Clock   clock.Clock
	IDs     id.Generator
	Log     *slog.Logger
	Release func() error
}

// New opens the configured store and catalog and wires every module.
func New(cfg config.Config, log *slog.Logger) (*App, error) {
	store, release, err := kv.Open(cfg.Store, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	log.Debug("store opened", "driver", cfg.Store, "path", cfg.DBPath)
	return Wire(Deps{
		Store:   store,
		Labs:    labSource(cfg, log),
		Clock:   clock.SystemClock{},
		IDs:     id.UUID{},
		Log:     log,
		Release: release,
	}), nil
}

func labSource(cfg config.Config, log *slog.Logger) catalogout.LabSource {
	switch {
	case cfg.CatalogPlugin != "":
		log.Info("using catalog plugin", "binary", cfg.CatalogPlugin)
		return catalogoutadapter.NewPluginLabSource(cfg.CatalogPlugin, log)
	case cfg.CatalogPath != "":
		log.Info("using catalog file", "path", cfg.CatalogPath)
		return catalogoutadapter.NewYAMLLabSource(cfg.CatalogPath)
	default:
		return catalogoutadapter.NewYAMLLabSource("")
	}
}

// Wire builds the module graph on deps.
func Wire(deps Deps) *App {
	log := deps.Log
	catalogUC := catalogusecase.NewInteractor(catalogservice.NewCatalogService(deps.Labs))

	entranceUC := entranceusecase.NewInteractor(
		entranceservice.NewEntranceService(entranceoutadapter.NewKVConfigStore(deps.Store, log)),
		catalogUC,
	)

	resultsUC := resultsusecase.NewInteractor(
		resultsservice.NewResultService(deps.Clock, deps.IDs, resultsoutadapter.NewKVHistoryStore(deps.Store, log)),
		resultsoutadapter.NewMarkdownExporter(),
	)

	workplaceUC := workplaceusecase.NewInteractor(
		workplaceservice.NewWorkplaceService(
			workplaceoutadapter.NewKVStateStore(deps.Store, log),
			workplaceoutadapter.NewCatalogLabAdapter(catalogUC),
			workplaceoutadapter.NewEntranceGateAdapter(entranceUC),
		),
		workplaceoutadapter.NewResultsRecorderAdapter(resultsUC),
	)

	settingsUC := settingsusecase.NewInteractor(settingsservice.NewSettingsService(settingsoutadapter.NewKVSettingsStore(deps.Store, log)))

	release := deps.Release
	if release == nil {
		release = func() error { return nil }
	}
	return &App{
		CatalogCLI:   cataloginadapter.NewCLIHandler(catalogUC),
		EntranceCLI:  entranceinadapter.NewCLIHandler(entranceUC),
		WorkplaceCLI: workplaceinadapter.NewCLIHandler(workplaceUC),
		ResultsCLI:   resultsinadapter.NewCLIHandler(resultsUC),
		SettingsCLI:  settingsinadapter.NewCLIHandler(settingsUC),
		Catalog:      catalogUC,
		Entrance:     entranceUC,
		Workplace:    workplaceUC,
		Results:      resultsUC,
		Settings:     settingsUC,
		log:          log,
		release:      release,
	}
}

// Close releases the store.
func (a *App) Close() error {
	return a.release()
}

// Handler returns the HTTP API over the app's use cases.
func (a *App) Handler() http.Handler {
	return server.New(server.Usecases{
		Catalog:   a.Catalog,
		Entrance:  a.Entrance,
		Workplace: a.Workplace,
		Results:   a.Results,
		Settings:  a.Settings,
	}, a.log)
}

// Serve runs the HTTP API on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, app *App) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		app.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		app.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.CatalogCLI, app.EntranceCLI, app.WorkplaceCLI, app.ResultsCLI, app.Settings)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
