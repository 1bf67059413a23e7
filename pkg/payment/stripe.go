package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeProvider creates Stripe payment intents restricted to card payments.
type StripeProvider struct {
	api *client.API
}

// NewStripeProvider builds a provider using the secret API key.
func NewStripeProvider(secretKey string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api}
}

// Name implements Provider.
func (p *StripeProvider) Name() string { return "stripe" }

// CreateIntent implements Provider.
func (p *StripeProvider) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.AmountCents),
		Currency:           stripe.String(req.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	if req.Email != "" {
		params.ReceiptEmail = stripe.String(req.Email)
		params.AddMetadata("email", req.Email)
	}
	params.AddMetadata("order_id", req.OrderID)
	params.SetIdempotencyKey(req.OrderID)
	params.Context = ctx

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("create stripe payment intent: %w", err)
	}

	return &Intent{
		Provider:     p.Name(),
		ClientSecret: pi.ClientSecret,
		Reference:    pi.ID,
		OrderID:      req.OrderID,
	}, nil
}
