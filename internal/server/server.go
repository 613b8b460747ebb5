// Package server exposes the generation pipeline over HTTP: submit a prompt,
// poll the task, then inspect or download the finished project.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bowerbird "github.com/bowerbird-suite/bowerbird"
	"github.com/bowerbird-suite/bowerbird/internal/orchestrator"
	"github.com/bowerbird-suite/bowerbird/internal/project"
	"github.com/bowerbird-suite/bowerbird/internal/task"
)

// Options wires the server's collaborators.
type Options struct {
	Orchestrator *orchestrator.Orchestrator
	Store        *project.Store
	Tasks        *task.Store
	Logger       *zap.Logger
	CleanupKeep  int
}

// Server is the HTTP front end.
type Server struct {
	engine *gin.Engine
	orch   *orchestrator.Orchestrator
	store  *project.Store
	tasks  *task.Store
	log    *zap.Logger
	keep   int
}

// New builds the server and registers all routes.
func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	s := &Server{
		engine: engine,
		orch:   opts.Orchestrator,
		store:  opts.Store,
		tasks:  opts.Tasks,
		log:    log,
		keep:   opts.CleanupKeep,
	}

	engine.Use(gin.Recovery(), s.requestLogger())

	engine.GET("/", s.handleRoot)
	engine.GET("/health", s.handleHealth)
	engine.POST("/generate", s.handleGenerate)
	engine.GET("/status/:task_id", s.handleStatus)
	engine.GET("/tasks", s.handleTasks)
	engine.GET("/projects", s.handleListProjects)
	engine.GET("/projects/:name", s.handleProjectInfo)
	engine.GET("/projects/:name/download", s.handleDownload)
	engine.DELETE("/projects/:name", s.handleDeleteProject)
	engine.POST("/cleanup", s.handleCleanup)

	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "bowerbird",
		"version": bowerbird.Version,
		"endpoints": gin.H{
			"generate": "POST /generate",
			"status":   "GET /status/{task_id}",
			"tasks":    "GET /tasks",
			"projects": "GET /projects",
			"health":   "GET /health",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type generateRequest struct {
	Prompt       string         `json:"prompt" binding:"required"`
	ProjectName  string         `json:"project_name"`
	OutputFormat string         `json:"output_format"`
	Options      map[string]any `json:"options"`
}

// handleGenerate accepts a prompt, registers a task, and kicks off
// generation in the background. Responds immediately with the task id.
func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	t := s.tasks.Create(req.Prompt)
	go s.orch.Run(context.Background(), t.ID, orchestrator.Request{
		Prompt:      req.Prompt,
		ProjectName: req.ProjectName,
		Zip:         req.OutputFormat == "zip",
	})

	s.log.Info("generation queued", zap.String("task", t.ID))
	c.JSON(http.StatusAccepted, gin.H{
		"task_id":          t.ID,
		"status":           t.Status,
		"check_status_url": "/status/" + t.ID,
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	t, err := s.tasks.Get(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) handleTasks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tasks": s.tasks.List()})
}

func (s *Server) handleListProjects(c *gin.Context) {
	infos, err := s.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if infos == nil {
		infos = []project.Info{}
	}
	c.JSON(http.StatusOK, gin.H{"projects": infos})
}

func (s *Server) handleProjectInfo(c *gin.Context) {
	info, err := s.store.Info(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

// handleDownload zips the project on demand and streams the archive.
func (s *Server) handleDownload(c *gin.Context) {
	name := c.Param("name")
	zipPath, err := s.store.CreateArchive(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.FileAttachment(zipPath, name+".zip")
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	name := c.Param("name")
	if err := s.store.Delete(name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": name})
}

// handleCleanup deletes the oldest projects beyond the retention count. The
// keep query parameter overrides the configured retention.
func (s *Server) handleCleanup(c *gin.Context) {
	keep := s.keep
	if raw := c.Query("keep"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "keep must be a non-negative integer"})
			return
		}
		keep = n
	}

	removed, err := s.store.Cleanup(keep)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if removed == nil {
		removed = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"removed": removed,
		"kept":    keep,
	})
}
