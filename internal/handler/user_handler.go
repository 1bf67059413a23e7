package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyhive-api/internal/models"
	"github.com/noah-isme/studyhive-api/internal/service"
	"github.com/noah-isme/studyhive-api/pkg/response"
)

type userService interface {
	List(ctx context.Context, search string) ([]models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Save(ctx context.Context, req service.SaveUserRequest) (*service.UpsertOutcome, error)
	PromoteToAdmin(ctx context.Context, id string) (*models.WriteResult, error)
	Delete(ctx context.Context, id string) (*models.WriteResult, error)
}

// UserHandler handles account endpoints.
type UserHandler struct {
	service userService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc userService) *UserHandler {
	return &UserHandler{service: svc}
}

// List godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context(), "")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users, nil)
}

// Search godoc
// @Summary Search users
// @Description Admin listing with optional case-insensitive name/email search
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /users-admin [get]
func (h *UserHandler) Search(c *gin.Context) {
	users, err := h.service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users, map[string]interface{}{"count": len(users)})
}

// GetByEmail godoc
// @Summary Get user by email
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param email path string true "Email"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /user/{email} [get]
func (h *UserHandler) GetByEmail(c *gin.Context) {
	user, err := h.service.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}

// Save godoc
// @Summary Register user on first sign-in
// @Description Inserts the profile when the email is new; otherwise returns the stored user unchanged
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body service.SaveUserRequest true "Profile"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /user [put]
func (h *UserHandler) Save(c *gin.Context) {
	var req service.SaveUserRequest
	if !bindJSON(c, &req) {
		return
	}
	outcome, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	upsertResponse(c, outcome)
}

// PromoteToAdmin godoc
// @Summary Promote user to admin
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/admin/{id} [patch]
func (h *UserHandler) PromoteToAdmin(c *gin.Context) {
	res, err := h.service.PromoteToAdmin(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Delete godoc
// @Summary Delete user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	res, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}
