package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyhive-api/internal/models"
	"github.com/noah-isme/studyhive-api/internal/service"
	appErrors "github.com/noah-isme/studyhive-api/pkg/errors"
	"github.com/noah-isme/studyhive-api/pkg/response"
)

type enrollmentService interface {
	Enroll(ctx context.Context, caller *models.JWTClaims, classID string, req service.EnrollRequest) (*models.WriteResult, bool, error)
	ListMine(ctx context.Context, email string) ([]models.Enrollment, error)
	ListAll(ctx context.Context) ([]models.Enrollment, error)
	Get(ctx context.Context, id string) (*models.Enrollment, error)
}

// EnrollmentHandler serves class enrolment endpoints.
type EnrollmentHandler struct {
	service enrollmentService
}

// NewEnrollmentHandler constructs the handler.
func NewEnrollmentHandler(svc enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc}
}

// Enroll godoc
// @Summary Enroll in class
// @Description Records the paid enrolment and increments the class enrolment counter
// @Tags Enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param payload body service.EnrollRequest false "Checkout details"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /enroll-class/{id} [put]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req service.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	res, partial, err := h.service.Enroll(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	writeResponse(c, http.StatusCreated, res, partial)
}

// ListMine godoc
// @Summary Enrollments of the caller
// @Tags Enrollments
// @Produce json
// @Security BearerAuth
// @Param email path string true "Student email"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /my-enroll-class/{email} [get]
func (h *EnrollmentHandler) ListMine(c *gin.Context) {
	items, err := h.service.ListMine(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// ListAll godoc
// @Summary List every enrollment
// @Tags Enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /enroll-class [get]
func (h *EnrollmentHandler) ListAll(c *gin.Context) {
	items, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get godoc
// @Summary Get enrollment
// @Tags Enrollments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /enroll-class/{id} [get]
func (h *EnrollmentHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}
