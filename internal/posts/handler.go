package posts

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Fetcher *Fetcher
}

func NewHandler(fetcher *Fetcher) *Handler {
	return &Handler{Fetcher: fetcher}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/latest", h.latest)           // GET /posts/latest
	rg.GET("/comparisons", h.comparisons) // GET /posts/comparisons
}

func (h *Handler) latest(c *gin.Context) {
	items := h.Fetcher.LatestBlogPosts(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) comparisons(c *gin.Context) {
	items := h.Fetcher.ComparisonPosts(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"items": items})
}
