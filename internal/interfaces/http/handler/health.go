package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/salesorder/backend/internal/infrastructure/logger"
	"github.com/salesorder/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves /health
type HealthHandler struct {
	BaseHandler
	db      Pinger
	timeout time.Duration
}

// HealthResponse is the /health payload
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, timeout: 2 * time.Second}
}

// Check pings the database and answers 200 or 503
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logger.GetGinLogger(c).Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, dto.Response{
			Success: false,
			Data:    HealthResponse{Status: "unhealthy", Database: "unreachable"},
			Error:   &dto.ErrorInfo{Code: dto.ErrCodeServiceUnavailable, Message: "database unreachable", RequestID: getRequestID(c)},
		})
		return
	}
	h.Success(c, HealthResponse{Status: "healthy", Database: "ok"})
}
