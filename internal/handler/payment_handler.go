package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyhive-api/internal/models"
	"github.com/noah-isme/studyhive-api/internal/service"
	"github.com/noah-isme/studyhive-api/pkg/response"
)

type paymentService interface {
	CreateIntent(ctx context.Context, caller *models.JWTClaims, req service.PaymentIntentRequest) (*service.PaymentIntentResponse, error)
}

// PaymentHandler starts checkouts with the payment provider.
type PaymentHandler struct {
	service paymentService
}

// NewPaymentHandler constructs the handler.
func NewPaymentHandler(svc paymentService) *PaymentHandler {
	return &PaymentHandler{service: svc}
}

// CreateIntent godoc
// @Summary Create payment intent
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.PaymentIntentRequest true "Price"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req service.PaymentIntentRequest
	if !bindJSON(c, &req) {
		return
	}
	intent, err := h.service.CreateIntent(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, intent, nil)
}
