package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyhive-api/internal/models"
	"github.com/noah-isme/studyhive-api/internal/service"
	"github.com/noah-isme/studyhive-api/pkg/response"
)

type teacherApplicationService interface {
	Apply(ctx context.Context, caller *models.JWTClaims, req service.ApplyTeachRequest) (*models.WriteResult, error)
	Save(ctx context.Context, caller *models.JWTClaims, req service.ApplyTeachRequest) (*service.UpsertOutcome, error)
	List(ctx context.Context) ([]models.TeacherApplication, error)
	Approve(ctx context.Context, actor, id, teacherEmail string) (*models.ApplicationDecision, bool, error)
	Reject(ctx context.Context, actor, id, teacherEmail string) (*models.ApplicationDecision, bool, error)
}

// TeacherApplicationHandler serves the teach-on-StudyHive workflow.
type TeacherApplicationHandler struct {
	service teacherApplicationService
}

// NewTeacherApplicationHandler constructs the handler.
func NewTeacherApplicationHandler(svc teacherApplicationService) *TeacherApplicationHandler {
	return &TeacherApplicationHandler{service: svc}
}

// Apply godoc
// @Summary Submit teacher application
// @Tags Teacher Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.ApplyTeachRequest true "Application"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /apply-teach [post]
func (h *TeacherApplicationHandler) Apply(c *gin.Context) {
	var req service.ApplyTeachRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.service.Apply(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// Save godoc
// @Summary Submit teacher application once
// @Description Inserts the application when the caller has none; otherwise returns the stored one unchanged
// @Tags Teacher Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.ApplyTeachRequest true "Application"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Router /apply-teach [put]
func (h *TeacherApplicationHandler) Save(c *gin.Context) {
	var req service.ApplyTeachRequest
	if !bindJSON(c, &req) {
		return
	}
	outcome, err := h.service.Save(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	upsertResponse(c, outcome)
}

// List godoc
// @Summary List teacher applications
// @Tags Teacher Applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /apply-teach [get]
func (h *TeacherApplicationHandler) List(c *gin.Context) {
	apps, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, apps, nil)
}

// Approve godoc
// @Summary Approve teacher application
// @Description Marks the application accepted and grants the Teacher role to the applicant
// @Tags Teacher Applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param teacherEmail path string true "Applicant email"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /apply-teach/{id}/{teacherEmail} [patch]
func (h *TeacherApplicationHandler) Approve(c *gin.Context) {
	decision, partial, err := h.service.Approve(c.Request.Context(), actorEmail(c), c.Param("id"), c.Param("teacherEmail"))
	if err != nil {
		response.Error(c, err)
		return
	}
	writeResponse(c, http.StatusOK, decision, partial)
}

// Reject godoc
// @Summary Reject teacher application
// @Tags Teacher Applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param teacherEmail path string true "Applicant email"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reject-teach/{id}/{teacherEmail} [patch]
func (h *TeacherApplicationHandler) Reject(c *gin.Context) {
	decision, partial, err := h.service.Reject(c.Request.Context(), actorEmail(c), c.Param("id"), c.Param("teacherEmail"))
	if err != nil {
		response.Error(c, err)
		return
	}
	writeResponse(c, http.StatusOK, decision, partial)
}
