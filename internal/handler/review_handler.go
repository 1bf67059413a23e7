package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyhive-api/internal/models"
	"github.com/noah-isme/studyhive-api/internal/service"
	"github.com/noah-isme/studyhive-api/pkg/response"
)

type reviewService interface {
	Create(ctx context.Context, caller *models.JWTClaims, req service.CreateReviewRequest) (*models.WriteResult, error)
	List(ctx context.Context) ([]models.Review, error)
	ListByClass(ctx context.Context, classID string) ([]models.Review, error)
}

// ReviewHandler exposes class feedback.
type ReviewHandler struct {
	service reviewService
}

// NewReviewHandler constructs the handler.
func NewReviewHandler(svc reviewService) *ReviewHandler {
	return &ReviewHandler{service: svc}
}

// List godoc
// @Summary List reviews
// @Tags Reviews
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reviews, nil)
}

// Create godoc
// @Summary Review a class
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateReviewRequest true "Review"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /review [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	var req service.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.service.Create(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// ListByClass godoc
// @Summary Reviews of a class
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param classId path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /review/{classId} [get]
func (h *ReviewHandler) ListByClass(c *gin.Context) {
	reviews, err := h.service.ListByClass(c.Request.Context(), c.Param("classId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reviews, nil)
}
