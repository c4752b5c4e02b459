// Package server exposes grid searches and step-by-step search sessions over
// HTTP so a browser front end can animate them.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdrpinto/dijkstra"
)

// Options configures a Server.
type Options struct {
	Logger      *slog.Logger
	MaxSessions int
	SessionTTL  time.Duration
	AllowOrigin string
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLogger sets the request and search logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithMaxSessions caps the number of live stepper sessions.
func WithMaxSessions(n int) Option {
	return func(o *Options) { o.MaxSessions = n }
}

// WithSessionTTL sets how long a session may sit without a step before it is
// reclaimed. Zero or negative disables expiry.
func WithSessionTTL(ttl time.Duration) Option {
	return func(o *Options) { o.SessionTTL = ttl }
}

// WithAllowOrigin sets the CORS origin; empty disables CORS headers.
func WithAllowOrigin(origin string) Option {
	return func(o *Options) { o.AllowOrigin = origin }
}

type session struct {
	mu      sync.Mutex
	stepper *dijkstra.Stepper
	start   dijkstra.Cell
	goal    dijkstra.Cell
	created time.Time

	// lastUsed is guarded by mu
	lastUsed time.Time
}

// Server serves one immutable grid.
type Server struct {
	grid    *dijkstra.Grid
	blocked []dijkstra.Cell
	opts    Options
	now     func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

// New returns a server for grid.
func New(grid *dijkstra.Grid, options ...Option) *Server {
	opts := Options{Logger: slog.Default(), MaxSessions: 64, SessionTTL: 10 * time.Minute}
	for _, option := range options {
		option(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Server{grid: grid, opts: opts, now: time.Now, sessions: make(map[uuid.UUID]*session)}
	b := grid.Bounds()
	for r := b.Rows.Lo; r < b.Rows.Hi; r++ {
		for c := b.Cols.Lo; c < b.Cols.Hi; c++ {
			cell := dijkstra.Cell{Row: r, Col: c}
			if !grid.Open(cell) {
				s.blocked = append(s.blocked, cell)
			}
		}
	}
	return s
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	if s.opts.AllowOrigin != "" {
		router.Use(corsMiddleware(s.opts.AllowOrigin))
	}

	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api", brotliMiddleware())
	api.GET("/grid", s.handleGrid)
	api.POST("/search", s.handleSearch)
	api.POST("/sessions", s.handleCreateSession)
	api.POST("/sessions/:id/step", s.handleStep)
	api.DELETE("/sessions/:id", s.handleDeleteSession)
	return router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		began := time.Now()
		c.Next()
		s.opts.Logger.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(began))
	}
}

func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept-Encoding")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// expireSessionsLocked closes and drops every session idle for longer than
// SessionTTL. s.mu must be held.
func (s *Server) expireSessionsLocked(now time.Time) {
	if s.opts.SessionTTL <= 0 {
		return
	}
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := now.Sub(sess.lastUsed)
		sess.mu.Unlock()
		if idle <= s.opts.SessionTTL {
			continue
		}
		delete(s.sessions, id)
		sess.stepper.Close()
		s.opts.Logger.Info("session expired", "id", id, "idle", idle, "age", now.Sub(sess.created))
	}
}

// statusFor maps search errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dijkstra.ErrOutOfBounds), errors.Is(err, dijkstra.ErrStartOrGoalObstructed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, dijkstra.ErrNoPathFound):
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}
