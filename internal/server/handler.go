package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quantmind-br/repo2txt-go/internal/app"
	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/session"
	"github.com/quantmind-br/repo2txt-go/internal/tree"
	"github.com/quantmind-br/repo2txt-go/internal/utils"
)

// Handler translates HTTP requests into orchestrator calls on a session
type Handler struct {
	orch     *app.Orchestrator
	sessions *session.Registry
	token    string
	logger   *utils.Logger
}

// ListingRequest submits a repository URL
type ListingRequest struct {
	URL   string `json:"url" binding:"required"`
	Token string `json:"token"`
}

// ListingResponse describes the loaded listing
type ListingResponse struct {
	Session   string   `json:"session"`
	Repo      string   `json:"repository"`
	Ref       string   `json:"ref"`
	Path      string   `json:"path"`
	Files     []string `json:"files"`
	Tree      string   `json:"tree"`
	Truncated bool     `json:"truncated"`
	Warnings  []string `json:"warnings,omitempty"`
	Status    string   `json:"status"`
}

// ExportRequest selects files of the loaded listing for export.
// An empty selection is rejected.
type ExportRequest struct {
	Paths      []string `json:"paths"`
	Include    []string `json:"include"`
	Exclude    []string `json:"exclude"`
	Format     string   `json:"format"`
	KeepErrors bool     `json:"keep_errors"`
	Token      string   `json:"token"`
}

// RegisterRoutes mounts the API onto the given Gin engine
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	api.POST("/sessions", h.CreateSession)
	api.DELETE("/sessions/:id", h.DeleteSession)
	api.POST("/sessions/:id/listing", h.Listing)
	api.POST("/sessions/:id/export", h.Export)
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": h.sessions.Len()})
}

// CreateSession starts a new session
func (h *Handler) CreateSession(c *gin.Context) {
	s := h.sessions.Create()
	c.JSON(http.StatusCreated, gin.H{"session": s.ID()})
}

// DeleteSession discards a session and its listing
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Listing loads a repository URL into the session. A submission that is
// superseded while it runs is answered with 409.
func (h *Handler) Listing(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	var req ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span := trace.SpanFromContext(c.Request.Context())
	span.SetAttributes(attribute.String("session.id", s.ID()))

	ticket := s.Begin()
	listing, err := h.orch.Load(c.Request.Context(), req.URL, h.tokenFor(req.Token))
	if err != nil {
		if !s.Current(ticket) {
			err = fmt.Errorf("%w: %v", domain.ErrStaleSubmission, err)
		}
		h.log(s).Warn().Err(err).Str("url", req.URL).Msg("Listing failed")
		c.JSON(statusFor(err), gin.H{"error": app.FormatError(app.StageLoad, err)})
		return
	}
	if err := s.Commit(ticket, listing); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	files := listing.Files()
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}

	c.JSON(http.StatusOK, ListingResponse{
		Session:   s.ID(),
		Repo:      listing.Locator.FullName(),
		Ref:       listing.Location.Ref,
		Path:      listing.Location.Path,
		Files:     paths,
		Tree:      tree.Render(paths),
		Truncated: listing.Truncated,
		Warnings:  listing.Warnings,
		Status:    app.WithWarnings(app.StatusLoaded, listing.Warnings),
	})
}

// Export builds an artifact from the session's listing and returns it as
// an attachment
func (h *Handler) Export(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	format, err := domain.ParseExportFormat(req.Format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stage := app.StageFor(format)

	listing := s.Listing()
	if listing == nil {
		c.JSON(statusFor(ErrNoListing), gin.H{"error": app.FormatError(stage, ErrNoListing)})
		return
	}

	var files []domain.TreeEntry
	if len(req.Paths) > 0 || len(req.Include) > 0 {
		model, err := app.BuildSelection(listing, app.SelectionOptions{
			Paths:   req.Paths,
			Include: req.Include,
			Exclude: req.Exclude,
		})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": app.FormatError(stage, err)})
			return
		}
		files = model.Selected()
	}

	trace.SpanFromContext(c.Request.Context()).SetAttributes(
		attribute.String("session.id", s.ID()),
		attribute.String("export.format", string(format)),
		attribute.Int("export.selected", len(files)),
	)

	result, err := h.orch.Export(c.Request.Context(), listing, files,
		app.ExportOptions{Format: format, KeepErrors: req.KeepErrors}, h.tokenFor(req.Token))
	if err != nil {
		h.log(s).Warn().Err(err).Msg("Export failed")
		c.JSON(statusFor(err), gin.H{"error": app.FormatError(stage, err)})
		return
	}

	artifact := result.Artifact
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Header("X-Export-Entries", fmt.Sprint(artifact.Entries))
	c.Header("X-Export-Failures", fmt.Sprint(len(result.Failures)))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

func (h *Handler) tokenFor(requested string) string {
	if requested != "" {
		return requested
	}
	return h.token
}

func (h *Handler) log(s *session.Session) *utils.Logger {
	return h.logger.WithSession(s.ID())
}
