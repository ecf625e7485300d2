// Package api serves the pipeline's aggregates as JSON over a chi router.
package api

import (
	"net/http"
	"strconv"

	"gotips/domain/tips"
	"gotips/internal"
	"gotips/internal/analysis"
	"gotips/internal/errors"
	"gotips/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SelectionResolver picks the selection a request should be filtered with.
type SelectionResolver func(r *http.Request) (tips.Selection, error)

// QueryResolver resolves selections from the query string alone; requests
// without filters see everything.
func QueryResolver(r *http.Request) (tips.Selection, error) {
	sel, _, err := SelectionFromQuery(r.URL.Query(), tips.AllSelection())
	return sel, err
}

// Config holds the dependencies of the JSON API
type Config struct {
	Tables  ports.TableProvider
	Options analysis.Options
	Resolve SelectionResolver
	Logger  *internal.Logger
	// RequestLogging adds chi's request logger; off when mounted under gin,
	// which logs on its own.
	RequestLogging bool
}

// API is the JSON surface of the dashboard
type API struct {
	router  *chi.Mux
	tables  ports.TableProvider
	options analysis.Options
	resolve SelectionResolver
	logger  *internal.Logger
}

// New builds the router
func New(cfg Config) *API {
	if cfg.Resolve == nil {
		cfg.Resolve = QueryResolver
	}
	if cfg.Logger == nil {
		cfg.Logger = internal.DefaultLogger
	}
	a := &API{
		router:  chi.NewRouter(),
		tables:  cfg.Tables,
		options: cfg.Options,
		resolve: cfg.Resolve,
		logger:  cfg.Logger,
	}

	if cfg.RequestLogging {
		a.router.Use(middleware.Logger)
	}
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
	a.setupRoutes()
	return a
}

func (a *API) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)

	a.router.Route("/api", func(r chi.Router) {
		r.Get("/snapshot", a.handleSnapshot)
		r.Get("/rows", a.handleRows)
		r.Get("/describe", a.handleDescribe)
		r.Get("/top", a.handleTop)
		r.Get("/value-counts/{column}", a.handleValueCounts)
		r.Get("/crosstab", a.handleCrosstab)
		r.Get("/schema", a.handleSchema)
	})
}

// ServeHTTP makes the API mountable under another router
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Start serves the API on addr
func (a *API) Start(addr string) error {
	a.logger.Info("[API] Listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// view resolves the request's selection and filters the table with it
func (a *API) view(r *http.Request) (*analysis.View, error) {
	sel, err := a.resolve(r)
	if err != nil {
		return nil, err
	}
	table, err := a.tables.Prepare(r.Context())
	if err != nil {
		return nil, err
	}
	return analysis.FilterSelection(table, sel), nil
}

func intParam(r *http.Request, key string, def, max int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.InvalidInput(key + " must be a non-negative integer")
	}
	if n > max {
		n = max
	}
	return n, nil
}
