package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyhive-api/internal/models"
	"github.com/noah-isme/studyhive-api/internal/service"
	"github.com/noah-isme/studyhive-api/pkg/response"
)

type classService interface {
	Create(ctx context.Context, caller *models.JWTClaims, req service.CreateClassRequest) (*models.WriteResult, error)
	ListAccepted(ctx context.Context) ([]models.Class, error)
	ListAll(ctx context.Context) ([]models.Class, error)
	ListByTeacher(ctx context.Context, teacherEmail string) ([]models.Class, error)
	Get(ctx context.Context, id string) (*models.Class, error)
	Update(ctx context.Context, id string, req service.UpdateClassRequest) (*models.WriteResult, error)
	Accept(ctx context.Context, id string) (*models.WriteResult, error)
	Reject(ctx context.Context, id string) (*models.WriteResult, error)
	Delete(ctx context.Context, id string) (*models.WriteResult, error)
}

// ClassHandler exposes class authoring and moderation endpoints.
type ClassHandler struct {
	service classService
}

// NewClassHandler constructs the handler.
func NewClassHandler(svc classService) *ClassHandler {
	return &ClassHandler{service: svc}
}

// Create godoc
// @Summary Create class
// @Description Teachers submit a class for review; it starts Pending
// @Tags Classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateClassRequest true "Class"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req service.CreateClassRequest
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

// ListAccepted godoc
// @Summary Browse accepted classes
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /all-classes/accepted [get]
func (h *ClassHandler) ListAccepted(c *gin.Context) {
	classes, err := h.service.ListAccepted(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes, nil)
}

// ListAll godoc
// @Summary List every class
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /all-classes [get]
func (h *ClassHandler) ListAll(c *gin.Context) {
	classes, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes, nil)
}

// ListByTeacher godoc
// @Summary Classes of the calling teacher
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Param email path string true "Teacher email"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /my-classes/{email} [get]
func (h *ClassHandler) ListByTeacher(c *gin.Context) {
	classes, err := h.service.ListByTeacher(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes, nil)
}

// Get godoc
// @Summary Get class
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	class, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class, nil)
}

// Update godoc
// @Summary Update class
// @Tags Classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param payload body service.UpdateClassRequest true "Changed fields"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /update-classes/{id} [patch]
func (h *ClassHandler) Update(c *gin.Context) {
	var req service.UpdateClassRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Accept godoc
// @Summary Accept class
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes-accept/{id} [patch]
func (h *ClassHandler) Accept(c *gin.Context) {
	res, err := h.service.Accept(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Reject godoc
// @Summary Reject class
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes-reject/{id} [patch]
func (h *ClassHandler) Reject(c *gin.Context) {
	res, err := h.service.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Delete godoc
// @Summary Delete class
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /my-classes/{id} [delete]
func (h *ClassHandler) Delete(c *gin.Context) {
	res, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}
