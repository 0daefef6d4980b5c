package tools

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"futureagent/internal/aigen"
	"futureagent/pkg/models"
)

// Drafter produces an AI draft review for a tool. Satisfied by aigen.Client.
type Drafter interface {
	DraftReview(ctx context.Context, toolName, category string) (*aigen.Draft, error)
}

type Handler struct {
	Repo    *Repo
	Fetcher *Fetcher
	Drafter Drafter
}

func NewHandler(repo *Repo, fetcher *Fetcher, drafter Drafter) *Handler {
	return &Handler{Repo: repo, Fetcher: fetcher, Drafter: drafter}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)               // GET /tools
	rg.GET("/featured", h.featured)  // GET /tools/featured
	rg.GET("/:slug", h.getBySlug)    // GET /tools/:slug
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/tools", h.save)              // POST /admin/tools
	rg.PUT("/tools/:id", h.save)           // PUT /admin/tools/:id
	rg.DELETE("/tools/:id", h.delete)      // DELETE /admin/tools/:id
	rg.POST("/tools/:slug/draft", h.draft) // POST /admin/tools/:slug/draft
}

func (h *Handler) list(c *gin.Context) {
	items := h.Fetcher.PublishedTools(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) featured(c *gin.Context) {
	items := h.Fetcher.FeaturedTools(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) getBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug required"})
		return
	}

	t := h.Fetcher.ToolBySlug(c.Request.Context(), slug)
	if t == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, t)
}

type saveReq struct {
	models.Tool
	Children *ChildCollections `json:"children,omitempty"`
}

func (h *Handler) save(c *gin.Context) {
	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	// PUT carries the id in the path
	if id := strings.TrimSpace(c.Param("id")); id != "" {
		req.ID = id
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.TrimSpace(req.Slug)
	if req.Name == "" || req.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and slug required"})
		return
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 5) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 0 and 5"})
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	if err := h.Repo.Upsert(c.Request.Context(), req.Tool); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	if req.Children != nil {
		if err := h.Repo.ReplaceChildren(c.Request.Context(), req.ID, *req.Children); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save children failed"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"id": req.ID, "slug": req.Slug})
}

func (h *Handler) delete(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}

	ok, err := h.Repo.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// draft generates an AI draft review for an existing tool. The draft is
// returned to the caller for editing, never written to the tool directly.
func (h *Handler) draft(c *gin.Context) {
	if h.Drafter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "draft generation not configured"})
		return
	}

	slug := strings.TrimSpace(c.Param("slug"))
	t, err := h.Repo.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if t == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	draft, err := h.Drafter.DraftReview(c.Request.Context(), t.Name, t.Category)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "draft generation failed"})
		return
	}

	c.JSON(http.StatusOK, draft)
}
