package server

import (
	"net/http"
	"time"

	"github.com/existflow/tempo/internal/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server is the in-memory development backend. It implements exactly the
// REST contract the Tempo client consumes, nothing more.
type Server struct {
	store *Store
	echo  *echo.Echo
}

// New creates a new devserver, optionally seeded with demo data
func New(seed bool) *Server {
	s := &Server{store: NewStore()}
	if seed {
		s.store.Seed()
	}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	// Custom logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			res := c.Response()
			logger.Info("HTTP Request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("duration", time.Since(start).String()))

			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Health check
	e.GET("/health", s.handleHealth)

	// API v1
	api := e.Group("/api/v1")

	// Auth endpoints (public)
	api.POST("/login", s.handleLogin)

	// Protected endpoints
	protected := api.Group("")
	protected.Use(s.authMiddleware)
	protected.POST("/logout", s.handleLogout)
	protected.GET("/me", s.handleMe)
	protected.GET("/projects", s.handleProjects)
	protected.GET("/time-entries", s.handleListEntries)
	protected.POST("/time-entries", s.handleCreateEntry)
	protected.PUT("/time-entries/:id", s.handleUpdateEntry)
	protected.DELETE("/time-entries/:id", s.handleDeleteEntry)
	protected.GET("/tasks", s.handleListTasks)
	protected.PATCH("/tasks/:id/status", s.handleTaskStatus)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
