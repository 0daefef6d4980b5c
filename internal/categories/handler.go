package categories

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
	rg.GET("", h.list) // GET /categories
}

func (h *Handler) list(c *gin.Context) {
	items := h.Fetcher.Categories(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"items": items})
}
