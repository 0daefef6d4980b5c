package affiliate

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"futureagent/internal/events"
	"futureagent/pkg/models"
)

type Handler struct {
	Repo   *Repo
	Hub    *events.Hub
	Logger *log.Logger
}

func NewHandler(repo *Repo, hub *events.Hub, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{Repo: repo, Hub: hub, Logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:slug", h.redirect) // GET /go/:slug
}

// redirect issues the 302 first-class; the click record is a best-effort
// side effect that must never block or fail the redirect.
func (h *Handler) redirect(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	link, err := h.Repo.GetLink(c.Request.Context(), slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if link == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	event := models.ClickEvent{
		ID:        uuid.NewString(),
		ToolID:    link.ToolID,
		Slug:      link.Slug,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
		At:        time.Now().UTC(),
	}

	// Detached from the request context so a slow insert cannot delay the
	// redirect and a client disconnect cannot cancel the write.
	go h.logClick(event)

	c.Redirect(http.StatusFound, link.TargetURL)
}

func (h *Handler) logClick(event models.ClickEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.Repo.RecordClick(ctx, event); err != nil {
		h.Logger.Printf("click log failed for %s: %v", event.Slug, err)
		return
	}
	if h.Hub != nil {
		h.Hub.BroadcastJSON(gin.H{"type": "click", "event": event})
	}
}
