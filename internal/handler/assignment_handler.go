package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyhive-api/internal/models"
	"github.com/noah-isme/studyhive-api/internal/service"
	"github.com/noah-isme/studyhive-api/pkg/response"
)

type assignmentService interface {
	Create(ctx context.Context, caller *models.JWTClaims, classID string, req service.CreateAssignmentRequest) (*models.WriteResult, bool, error)
	ListByClass(ctx context.Context, classID string) ([]models.Assignment, error)
}

type submissionService interface {
	Submit(ctx context.Context, caller *models.JWTClaims, assignmentID string, req service.SubmitAssignmentRequest) (*models.WriteResult, bool, error)
	ListByAssignment(ctx context.Context, assignmentID string) ([]models.AssignmentSubmission, error)
}

// AssignmentHandler serves classwork and submissions.
type AssignmentHandler struct {
	assignments assignmentService
	submissions submissionService
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(assignments assignmentService, submissions submissionService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments, submissions: submissions}
}

// Create godoc
// @Summary Add assignment to class
// @Description Inserts the assignment and increments the class assignment counter
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param payload body service.CreateAssignmentRequest true "Assignment"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /add-assignment/{id} [put]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req service.CreateAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}
	res, partial, err := h.assignments.Create(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	writeResponse(c, http.StatusCreated, res, partial)
}

// ListByClass godoc
// @Summary Assignments of a class
// @Tags Assignments
// @Produce json
// @Param classId path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /assignment/{classId} [get]
func (h *AssignmentHandler) ListByClass(c *gin.Context) {
	items, err := h.assignments.ListByClass(c.Request.Context(), c.Param("classId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Submit godoc
// @Summary Submit assignment
// @Description Inserts the submission and marks the assignment Submitted
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param payload body service.SubmitAssignmentRequest true "Submission"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /submit-assignment/{id} [put]
func (h *AssignmentHandler) Submit(c *gin.Context) {
	var req service.SubmitAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}
	res, partial, err := h.submissions.Submit(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	writeResponse(c, http.StatusCreated, res, partial)
}

// Submissions godoc
// @Summary Submissions of an assignment
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param assignmentId path string true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Router /assignment-submissions/{assignmentId} [get]
func (h *AssignmentHandler) Submissions(c *gin.Context) {
	items, err := h.submissions.ListByAssignment(c.Request.Context(), c.Param("assignmentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}
