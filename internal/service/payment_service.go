package service

import (
	"context"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/studyhive-api/internal/models"
	appErrors "github.com/noah-isme/studyhive-api/pkg/errors"
	"github.com/noah-isme/studyhive-api/pkg/payment"
)

// PaymentIntentRequest is the checkout amount in major currency units.
type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"gt=0"`
}

// PaymentIntentResponse is handed to the browser checkout.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	Provider     string `json:"provider"`
	RedirectURL  string `json:"redirectUrl,omitempty"`
	OrderID      string `json:"orderId"`
}

// PaymentService creates payment intents through the configured provider.
type PaymentService struct {
	provider  payment.Provider
	currency  string
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService constructs the service.
func NewPaymentService(provider payment.Provider, currency string, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if currency == "" {
		currency = "usd"
	}
	return &PaymentService{provider: provider, currency: currency, metrics: metrics, validator: validate, logger: logger}
}

// AmountInCents converts a price to the smallest currency unit.
func AmountInCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateIntent asks the provider to authorise price for the caller.
func (s *PaymentService) CreateIntent(ctx context.Context, caller *models.JWTClaims, req PaymentIntentRequest) (*PaymentIntentResponse, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "price must be greater than zero")
	}
	if s.provider == nil {
		return nil, appErrors.Clone(appErrors.ErrPaymentProvider, "payment provider is not configured")
	}

	orderID := uuid.NewString()
	intent, err := s.provider.CreateIntent(ctx, payment.IntentRequest{
		OrderID:     orderID,
		AmountCents: AmountInCents(req.Price),
		Currency:    s.currency,
		Email:       caller.Email,
		Name:        caller.Name,
		Description: "StudyHive class enrollment",
	})
	s.metrics.RecordPaymentIntent(s.provider.Name(), err == nil)
	if err != nil {
		s.logger.Error("payment intent failed",
			zap.String("provider", s.provider.Name()),
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return nil, appErrors.Wrap(err, appErrors.ErrPaymentProvider.Code, appErrors.ErrPaymentProvider.Status, appErrors.ErrPaymentProvider.Message)
	}

	return &PaymentIntentResponse{
		ClientSecret: intent.ClientSecret,
		Provider:     intent.Provider,
		RedirectURL:  intent.RedirectURL,
		OrderID:      orderID,
	}, nil
}
