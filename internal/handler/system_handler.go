package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/studyhive-api/internal/service"
	appErrors "github.com/noah-isme/studyhive-api/pkg/errors"
	"github.com/noah-isme/studyhive-api/pkg/response"
)

// Pinger is a dependency probed by the readiness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// Ping implements Pinger.
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// SystemHandler exposes liveness, readiness and observability endpoints.
type SystemHandler struct {
	metrics *service.MetricsService
	deps    map[string]Pinger
	logger  *zap.Logger
}

// NewSystemHandler constructs a system handler. deps are probed by Ready.
func NewSystemHandler(metrics *service.MetricsService, deps map[string]Pinger, logger *zap.Logger) *SystemHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemHandler{metrics: metrics, deps: deps, logger: logger}
}

// Root answers with the plain-text banner.
func (h *SystemHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "study hive is running")
}

// Health responds with a generic OK payload for liveness usage.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready godoc
// @Summary Readiness probe
// @Tags System
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /ready [get]
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		if err := h.deps[name].Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed", zap.String("dependency", name), zap.Error(err))
			checks[name] = "down"
			healthy = false
			continue
		}
		checks[name] = "up"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.Envelope{
			Success: false,
			Data:    checks,
			Error:   appErrors.New("NOT_READY", http.StatusServiceUnavailable, "dependencies unavailable"),
		})
		return
	}
	response.JSON(c, http.StatusOK, checks, nil)
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *SystemHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
