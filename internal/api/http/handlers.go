// Package http exposes the dashboard operations over a JSON API.
// Every handler resolves its inputs explicitly; nothing depends on
// process-wide state, so concurrent clients never observe each
// other's navigation.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/filedash/filedash/internal/fs"
	"github.com/filedash/filedash/internal/infrastructure/logging"
	"github.com/filedash/filedash/internal/infrastructure/monitoring"
	"github.com/filedash/filedash/internal/session"
)

// Handlers bundles the services the API routes need.
type Handlers struct {
	fs       *fs.Service
	sessions *session.Manager
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(filesystem *fs.Service, sessions *session.Manager, metrics *monitoring.Metrics, logger *logging.Logger) *Handlers {
	return &Handlers{
		fs:       filesystem,
		sessions: sessions,
		metrics:  metrics,
		logger:   logger,
	}
}

// Register wires all routes onto the router.
func (h *Handlers) Register(r *gin.Engine) {
	r.GET("/", h.Index)
	r.GET("/health", h.Health)

	fsGroup := r.Group("/fs")
	{
		fsGroup.GET("/list", h.List)
		fsGroup.GET("/search", h.Search)
		fsGroup.GET("/glob", h.Glob)
		fsGroup.GET("/stat", h.Stat)
		fsGroup.GET("/read", h.Read)
		fsGroup.POST("/dirs", h.MakeDir)
		fsGroup.POST("/files", h.WriteFile)
		fsGroup.POST("/copy", h.Copy)
		fsGroup.POST("/move", h.Move)
		fsGroup.DELETE("", h.Delete)
	}

	sessGroup := r.Group("/sessions")
	{
		sessGroup.POST("", h.CreateSession)
		sessGroup.GET("/:id", h.GetSession)
		sessGroup.PUT("/:id/workdir", h.SetWorkdir)
		sessGroup.DELETE("/:id", h.DeleteSession)
	}
}

// Index returns service information.
func (h *Handlers) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "filedash-backend",
		"version": "1.0.0",
		"root":    h.fs.Root(),
	})
}

// Health returns a liveness response.
func (h *Handlers) Health(c *gin.Context) {
	stats := h.sessions.Stats()
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"sessions": stats["active_sessions"],
	})
}

// List returns the members of one directory, subdirectories first.
func (h *Handlers) List(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		badRequest(c, "path query parameter is required")
		return
	}

	timer := monitoring.NewTimer(h.metrics, "list")
	entries, err := h.fs.List(path)
	timer.Stop(err)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"path":    path,
		"entries": entries,
		"count":   len(entries),
	})
}

// Search walks a subtree and returns paths matching the filters.
func (h *Handlers) Search(c *gin.Context) {
	root := c.Query("root")
	if root == "" {
		badRequest(c, "root query parameter is required")
		return
	}
	q := fs.Query{
		Root:         root,
		NameContains: c.Query("contains"),
		Extension:    c.Query("ext"),
	}

	timer := monitoring.NewTimer(h.metrics, "search")
	matches, err := h.fs.Search(c.Request.Context(), q)
	timer.Stop(err)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.metrics.RecordSearch(len(matches))

	c.JSON(http.StatusOK, gin.H{
		"root":    root,
		"matches": matches,
		"count":   len(matches),
	})
}

// Glob matches a glob pattern under a directory.
func (h *Handlers) Glob(c *gin.Context) {
	dir := c.Query("dir")
	pattern := c.Query("pattern")
	if dir == "" || pattern == "" {
		badRequest(c, "dir and pattern query parameters are required")
		return
	}

	timer := monitoring.NewTimer(h.metrics, "glob")
	matches, err := h.fs.Glob(dir, pattern)
	timer.Stop(err)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dir":     dir,
		"pattern": pattern,
		"matches": matches,
		"count":   len(matches),
	})
}

// Stat returns detailed metadata for one path.
func (h *Handlers) Stat(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		badRequest(c, "path query parameter is required")
		return
	}

	timer := monitoring.NewTimer(h.metrics, "stat")
	info, err := h.fs.Stat(path)
	timer.Stop(err)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// Read returns a content preview for one file.
func (h *Handlers) Read(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		badRequest(c, "path query parameter is required")
		return
	}

	timer := monitoring.NewTimer(h.metrics, "read")
	preview, err := h.fs.ReadPreview(path)
	timer.Stop(err)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, preview)
}

// MakeDir creates a directory tree.
func (h *Handlers) MakeDir(c *gin.Context) {
	var req MakeDirRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	timer := monitoring.NewTimer(h.metrics, "mkdir")
	err := h.fs.MakeDir(req.Path)
	timer.Stop(err)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"path": req.Path})
}

// WriteFile creates or overwrites a file with the given content.
func (h *Handlers) WriteFile(c *gin.Context) {
	var req WriteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	timer := monitoring.NewTimer(h.metrics, "write")
	err := h.fs.WriteFile(req.Path, []byte(req.Content))
	timer.Stop(err)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"path": req.Path,
		"size": len(req.Content),
	})
}

// Copy duplicates a file, preserving permissions and modification time.
func (h *Handlers) Copy(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	timer := monitoring.NewTimer(h.metrics, "copy")
	err := h.fs.Copy(req.Source, req.Destination)
	timer.Stop(err)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"source":      req.Source,
		"destination": req.Destination,
	})
}

// Move renames a file or directory.
func (h *Handlers) Move(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	timer := monitoring.NewTimer(h.metrics, "move")
	err := h.fs.Move(req.Source, req.Destination)
	timer.Stop(err)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"source":      req.Source,
		"destination": req.Destination,
	})
}

// Delete removes a file or directory. Directories need recursive=true
// unless they are empty.
func (h *Handlers) Delete(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		badRequest(c, "path query parameter is required")
		return
	}
	recursive, _ := strconv.ParseBool(c.DefaultQuery("recursive", "false"))

	timer := monitoring.NewTimer(h.metrics, "delete")
	err := h.fs.Delete(path, recursive)
	timer.Stop(err)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"path":    path,
		"deleted": true,
	})
}

// CreateSession starts a new dashboard session.
func (h *Handlers) CreateSession(c *gin.Context) {
	s := h.sessions.Create()
	h.logger.Info("session created", zap.String("id", s.ID))
	c.JSON(http.StatusCreated, s)
}

// GetSession returns one session.
func (h *Handlers) GetSession(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s)
}

// SetWorkdir changes a session's working directory.
func (h *Handlers) SetWorkdir(c *gin.Context) {
	var req WorkdirRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	s, err := h.sessions.SetWorkingDir(c.Param("id"), req.Path)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// DeleteSession ends a session.
func (h *Handlers) DeleteSession(c *gin.Context) {
	if !h.sessions.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": session.ErrNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// fail maps service errors to HTTP status codes. Inaccessible paths
// are 404, failed mutations are 409, anything else is a 500.
func (h *Handlers) fail(c *gin.Context, err error) {
	var accessErr *fs.AccessError
	var ioErr *fs.IOError

	switch {
	case errors.As(err, &accessErr):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &ioErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
