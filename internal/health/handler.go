package health

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	DB      *sql.DB
	Version string
}

func NewHandler(db *sql.DB, version string) *Handler {
	return &Handler{DB: db, Version: version}
}

type dbCheck struct {
	Status         string `json:"status"`
	ResponseTimeMs int64  `json:"responseTimeMs"`
	Error          string `json:"error,omitempty"`
}

type response struct {
	Status    string             `json:"status"`
	Timestamp time.Time          `json:"timestamp"`
	Checks    map[string]dbCheck `json:"checks"`
	Version   string             `json:"version"`
}

// Check probes the database and reports overall health. 200 when healthy,
// 503 otherwise; never cacheable.
func (h *Handler) Check(c *gin.Context) {
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.DB.PingContext(ctx)
	elapsed := time.Since(start).Milliseconds()

	check := dbCheck{Status: "ok", ResponseTimeMs: elapsed}
	status := "healthy"
	code := http.StatusOK
	if err != nil {
		check.Status = "error"
		check.Error = err.Error()
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, response{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Checks:    map[string]dbCheck{"database": check},
		Version:   h.Version,
	})
}
