// Package ui serves the dashboard: upload page, column-mapping form, KPI
// metrics, chart payloads, and the processed-data download.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"salesboard/adapters/tabular"
	"salesboard/internal"
	"salesboard/internal/config"
	"salesboard/internal/pipeline"
	"salesboard/internal/session"
	"salesboard/ports"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App represents the dashboard application
type App struct {
	router    *chi.Mux
	store     *session.Store
	reader    ports.ReaderPort
	pipe      *pipeline.Pipeline
	templates *template.Template
	config    *config.Config
	logger    *internal.Logger
}

// NewApp creates the dashboard application
func NewApp(cfg *config.Config) (*App, error) {
	funcMap := template.FuncMap{
		"mul": func(a, b float64) float64 { return a * b },
		"div": func(a, b float64) float64 {
			if b == 0 {
				return 0
			}
			return a / b
		},
		"add":      func(a, b int) int { return a + b },
		"upper":    strings.ToUpper,
		"currency": formatCurrency,
		"percent":  formatPercent,
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		store:     session.NewStore(cfg.Session.TTL, cfg.Session.MaxPerHost),
		reader:    tabular.NewDataReader(),
		pipe:      pipeline.New(pipeline.DefaultCleanConfig()),
		templates: templates,
		config:    cfg,
		logger:    internal.DefaultLogger,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	// Serve static files; URL paths match the embedded paths directly
	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Main pages
	a.router.Get("/", a.handleIndex)

	// Session lifecycle
	a.router.Post("/api/sessions/upload", a.handleUpload)
	a.router.Post("/api/sessions/{id}/mapping", a.handleMapping)
	a.router.Post("/api/sessions/{id}/filters", a.handleFilters)

	// Derived data
	a.router.Get("/api/sessions/{id}/metrics", a.handleMetrics)
	a.router.Get("/api/sessions/{id}/charts/{kind}", a.handleChart)
	a.router.Get("/api/sessions/{id}/options", a.handleFilterOptions)
	a.router.Get("/api/sessions/{id}/preview", a.handlePreview)
	a.router.Get("/api/sessions/{id}/download", a.handleDownload)
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.config.Server.Port
	a.logger.Info("[App] starting dashboard server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the handler for tests
func (a *App) Router() http.Handler {
	return a.router
}

// renderTemplate renders a page template
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.logger.Error("[App] template %s: %v", templateName, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
