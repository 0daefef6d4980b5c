package compare

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Comparer *Comparer
}

func NewHandler(comparer *Comparer) *Handler {
	return &Handler{Comparer: comparer}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.compare) // GET /compare?tools=a,b
}

// compare expects exactly two comma-joined tokens. One token redirects to
// the single-tool view; any other count is a 404.
func (h *Handler) compare(c *gin.Context) {
	raw := strings.Split(c.Query("tools"), ",")
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t != "" {
			tokens = append(tokens, t)
		}
	}

	if len(tokens) == 1 {
		c.Redirect(http.StatusFound, "/tools/"+tokens[0])
		return
	}
	if len(tokens) != 2 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	result, err := h.Comparer.Compare(c.Request.Context(), tokens[0], tokens[1])
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "compare failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}
