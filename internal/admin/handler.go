package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"futureagent/pkg/retry"
)

type Handler struct {
	Counts *CountsRepo
	Opts   retry.Options
}

func NewHandler(counts *CountsRepo, opts retry.Options) *Handler {
	return &Handler{Counts: counts, Opts: opts}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/counts", h.counts) // GET /admin/counts?table=tools&filter=published:1
}

func (h *Handler) counts(c *gin.Context) {
	table := strings.TrimSpace(c.Query("table"))
	if table == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "table required"})
		return
	}

	filterCol := ""
	var filterVal any
	if f := c.Query("filter"); f != "" {
		parts := strings.SplitN(f, ":", 2)
		if len(parts) != 2 || parts[0] == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "filter must be column:value"})
			return
		}
		filterCol = parts[0]
		filterVal = parts[1]
	}

	total, err := h.Counts.FetchCount(c.Request.Context(), table, filterCol, filterVal, h.Opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"table": table, "total": total})
}
