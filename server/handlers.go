package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pdrpinto/dijkstra"
)

type searchRequest struct {
	Start  *dijkstra.Cell `json:"start" binding:"required"`
	Goal   *dijkstra.Cell `json:"goal" binding:"required"`
	Frames bool           `json:"frames"`
}

type searchResponse struct {
	Found         bool              `json:"found"`
	Route         []dijkstra.Cell   `json:"route,omitempty"`
	TotalCost     float64           `json:"totalCost"`
	ExpandedNodes int               `json:"expandedNodes"`
	Frames        [][]dijkstra.Cell `json:"frames,omitempty"`
	ExecutionTime float64           `json:"executionTimeMs"`
	Error         string            `json:"error,omitempty"`
}

type gridResponse struct {
	Bounds        dijkstra.Bounds    `json:"bounds"`
	Costs         dijkstra.CostTable `json:"costs"`
	CornerCutting bool               `json:"cornerCutting"`
	Blocked       []dijkstra.Cell    `json:"blocked"`
}

type snapshotResponse struct {
	Step       int             `json:"step"`
	Current    dijkstra.Cell   `json:"current"`
	Cost       float64         `json:"cost"`
	Start      dijkstra.Cell   `json:"start"`
	Goal       dijkstra.Cell   `json:"goal"`
	Open       []dijkstra.Cell `json:"open,omitempty"`
	Discovered []dijkstra.Cell `json:"discovered,omitempty"`
	Done       bool            `json:"done"`
	Found      bool            `json:"found"`
	Route      []dijkstra.Cell `json:"route,omitempty"`
	Error      string          `json:"error,omitempty"`
}

func (s *Server) handleGrid(c *gin.Context) {
	c.JSON(http.StatusOK, gridResponse{
		Bounds:        s.grid.Bounds(),
		Costs:         s.grid.Costs(),
		CornerCutting: s.grid.CornerCutting(),
		Blocked:       s.blocked,
	})
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	began := time.Now()
	res, err := dijkstra.Search(c.Request.Context(), s.grid, *req.Start, *req.Goal, dijkstra.WithLogger(s.opts.Logger))
	resp := searchResponse{
		Found:         res.Found,
		Route:         res.Route,
		TotalCost:     res.TotalCost,
		ExpandedNodes: res.ExpandedNodes,
		ExecutionTime: float64(time.Since(began).Microseconds()) / 1000.0,
	}
	if req.Frames {
		resp.Frames = res.Frames
	}
	if err != nil {
		resp.Error = err.Error()
		c.JSON(statusFor(err), resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	// steppers outlive the request; DELETE cancels them
	stepper, err := dijkstra.NewStepper(context.Background(), s.grid, *req.Start, *req.Goal)
	if err != nil {
		c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	now := s.now()
	s.mu.Lock()
	s.expireSessionsLocked(now)
	if len(s.sessions) >= s.opts.MaxSessions {
		s.mu.Unlock()
		stepper.Close()
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "too many sessions"})
		return
	}
	id := uuid.New()
	s.sessions[id] = &session{stepper: stepper, start: *req.Start, goal: *req.Goal, created: now, lastUsed: now}
	s.mu.Unlock()

	s.opts.Logger.Info("session created", "id", id, "start", *req.Start, "goal", *req.Goal)
	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

func (s *Server) lookup(c *gin.Context) (uuid.UUID, *session, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, nil, false
	}
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return id, nil, false
	}
	return id, sess, true
}

func (s *Server) handleStep(c *gin.Context) {
	_, sess, ok := s.lookup(c)
	if !ok {
		return
	}

	sess.mu.Lock()
	snap, err := sess.stepper.Step()
	sess.lastUsed = s.now()
	var open []dijkstra.Cell
	if c.Query("open") == "true" {
		open = sess.stepper.Open()
	}
	sess.mu.Unlock()

	resp := snapshotResponse{
		Step:       snap.StepIndex,
		Current:    snap.Current,
		Cost:       snap.Cost,
		Start:      sess.start,
		Goal:       sess.goal,
		Open:       open,
		Discovered: snap.Discovered,
		Done:       snap.Done,
		Found:      snap.Found,
		Route:      snap.Route,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	id, sess, ok := s.lookup(c)
	if !ok {
		return
	}
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	sess.stepper.Close()
	c.Status(http.StatusNoContent)
}
