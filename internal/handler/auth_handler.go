package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyhive-api/internal/models"
	"github.com/noah-isme/studyhive-api/pkg/response"
)

type tokenIssuer interface {
	IssueToken(ctx context.Context, req models.TokenRequest) (*models.TokenResponse, error)
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service tokenIssuer
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc tokenIssuer) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Token godoc
// @Summary Issue access token
// @Description Sign an access token for the identity returned by the sign-in provider
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.TokenRequest true "Identity payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /jwt [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req models.TokenRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.service.IssueToken(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}
