package ui

import (
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"gotips/domain/core"
	"gotips/domain/tips"
	"gotips/internal"
	"gotips/internal/analysis"
	"gotips/internal/api"
	"gotips/internal/config"
	"gotips/internal/session"
	"gotips/ports"

	"github.com/gin-gonic/gin"
)

// Server is the gin web server behind the tips dashboard
type Server struct {
	router    *gin.Engine
	tables    ports.TableProvider
	sessions  *session.Store
	api       *api.API
	templates *template.Template
	files     fs.FS
	options   analysis.Options
	cookie    string
	cookieTTL time.Duration
	logger    *internal.Logger
}

// NewServer wires templates, middleware and routes. files must contain
// ui/templates and ui/static, as the binary's embedded filesystem does.
func NewServer(cfg *config.Config, tables ports.TableProvider, files fs.FS, logger *internal.Logger) (*Server, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:   gin.New(),
		tables:   tables,
		sessions: session.NewStore(cfg.Session.TTL),
		files:    files,
		options: analysis.Options{
			TopN:          cfg.Dashboard.TopN,
			HistogramBins: cfg.Dashboard.HistogramBins,
		},
		cookie:    cfg.Session.CookieName,
		cookieTTL: cfg.Session.TTL,
		logger:    logger,
	}
	s.api = api.New(api.Config{
		Tables:  tables,
		Options: s.options,
		Resolve: s.resolveSelection,
		Logger:  logger,
	})

	if err := s.loadTemplates(); err != nil {
		return nil, err
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/export.xlsx", s.handleExport)

	// JSON endpoints are served by the chi API
	s.router.GET("/healthz", gin.WrapH(s.api))
	s.router.GET("/api/*path", gin.WrapH(s.api))
}

// Handler exposes the router for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("[Server] Starting tips dashboard on http://%s", addr)
	return s.router.Run(addr)
}

// resolveSelection lets API calls inherit the visitor's dashboard filters
func (s *Server) resolveSelection(r *http.Request) (tips.Selection, error) {
	fallback := tips.AllSelection()
	if id, ok := s.sessionFromRequest(r); ok {
		fallback = s.sessions.Selection(id)
	}
	sel, _, err := api.SelectionFromQuery(r.URL.Query(), fallback)
	return sel, err
}

func (s *Server) sessionFromRequest(r *http.Request) (core.SessionID, bool) {
	c, err := r.Cookie(s.cookie)
	if err != nil {
		return "", false
	}
	id, err := core.ParseSessionID(c.Value)
	if err != nil {
		return "", false
	}
	return id, true
}
