package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyhive-api/internal/models"
	"github.com/noah-isme/studyhive-api/pkg/response"
)

type statsService interface {
	PublicStats(ctx context.Context) (*models.PublicStats, error)
}

// StatsHandler serves landing page counters.
type StatsHandler struct {
	service statsService
}

// NewStatsHandler constructs the handler.
func NewStatsHandler(svc statsService) *StatsHandler {
	return &StatsHandler{service: svc}
}

// PublicStats godoc
// @Summary Public counters
// @Description Estimated number of users, enrollments and classes
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /public-stat [get]
func (h *StatsHandler) PublicStats(c *gin.Context) {
	stats, err := h.service.PublicStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
