// Package payment adapts external payment-intent providers behind one interface.
package payment

import (
	"context"
	"fmt"

	"github.com/noah-isme/studyhive-api/pkg/config"
)

// IntentRequest describes a checkout to be authorised by the provider.
type IntentRequest struct {
	OrderID     string
	AmountCents int64
	Currency    string
	Email       string
	Name        string
	Description string
}

// Intent is the provider-neutral result handed back to the browser.
type Intent struct {
	Provider     string `json:"provider"`
	ClientSecret string `json:"clientSecret"`
	RedirectURL  string `json:"redirectUrl,omitempty"`
	Reference    string `json:"reference"`
	OrderID      string `json:"orderId"`
}

// Provider creates payment intents.
type Provider interface {
	Name() string
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}

// New builds the provider selected by configuration.
func New(cfg config.PaymentConfig) (Provider, error) {
	switch cfg.Provider {
	case "", config.PaymentProviderStripe:
		if cfg.StripeSecretKey == "" {
			return nil, fmt.Errorf("stripe secret key is required")
		}
		return NewStripeProvider(cfg.StripeSecretKey), nil
	case config.PaymentProviderMidtrans:
		if cfg.MidtransServerKey == "" {
			return nil, fmt.Errorf("midtrans server key is required")
		}
		return NewMidtransProvider(cfg.MidtransServerKey, cfg.MidtransProduction), nil
	default:
		return nil, fmt.Errorf("unsupported payment provider %q", cfg.Provider)
	}
}
