package ui

import (
	"io/fs"
	"net/http"

	"gotips/domain/core"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session_id"

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
	s.router.Use(s.ensureSession())

	staticFS, err := fs.Sub(s.files, "ui/static")
	if err != nil {
		s.logger.Warn("[setupMiddleware] Static files unavailable: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// ensureSession makes sure every visitor carries a session cookie
func (s *Server) ensureSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := s.sessionFromRequest(c.Request)
		if !ok {
			id = core.NewSessionID()
			s.logger.Debug("[EnsureSession] New session %s", id)
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(s.cookie, id.String(), int(s.cookieTTL.Seconds()), "/", "", false, true)
		c.Set(sessionKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) core.SessionID {
	if v, ok := c.Get(sessionKey); ok {
		if id, ok := v.(core.SessionID); ok {
			return id
		}
	}
	return ""
}
