package newsletter

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"futureagent/pkg/models"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/subscribe", h.subscribe) // POST /newsletter/subscribe
}

type subscribeReq struct {
	Email  string `json:"email"`
	Source string `json:"source"`
}

func (h *Handler) subscribe(c *gin.Context) {
	var req subscribeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid email required"})
		return
	}

	err := h.Repo.Subscribe(c.Request.Context(), models.Subscriber{
		ID:     uuid.NewString(),
		Email:  email,
		Source: strings.TrimSpace(req.Source),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "subscribe failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "subscribed"})
}
