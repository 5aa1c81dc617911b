// Package ui exposes the dashboard engine over a thin JSON HTTP surface.
// Handlers only translate requests and responses; every piece of dashboard
// semantics lives behind the engine.
package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/singleflight"

	"salesboard/internal"
	"salesboard/internal/config"
	"salesboard/internal/dashboard"
)

// App represents the UI application
type App struct {
	router  *chi.Mux
	engine  *dashboard.Engine
	cfg     *config.Config
	logger  *internal.Logger
	renders singleflight.Group
}

// NewApp creates a new UI application around a fresh engine
func NewApp(cfg *config.Config) *App {
	app := &App{
		router: chi.NewRouter(),
		engine: dashboard.NewEngine(),
		cfg:    cfg,
		logger: internal.DefaultLogger.Component("UI"),
	}

	app.setupMiddleware()
	app.setupRoutes()
	return app
}

// Engine exposes the underlying engine, mainly for tests
func (a *App) Engine() *dashboard.Engine {
	return a.engine
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/api/health", a.handleHealth)

	a.router.Post("/api/upload", a.handleUpload)
	a.router.Post("/api/roles", a.handleSetRole)
	a.router.Post("/api/filters", a.handleSetFilters)

	a.router.Get("/api/dashboard", a.handleDashboard)
	a.router.Get("/api/export.csv", a.handleExport)
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.cfg.Server.Port
	a.logger.Info("Starting salesboard server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router returns the HTTP handler, mainly for tests
func (a *App) Router() http.Handler {
	return a.router
}
