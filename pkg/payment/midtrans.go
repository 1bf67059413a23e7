package payment

import (
	"context"
	"fmt"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// MidtransProvider creates Snap transactions; the Snap token is used as the client secret.
type MidtransProvider struct {
	client snap.Client
}

// NewMidtransProvider builds a Snap client for sandbox or production.
func NewMidtransProvider(serverKey string, production bool) *MidtransProvider {
	p := &MidtransProvider{}
	if production {
		p.client.New(serverKey, midtrans.Production)
	} else {
		p.client.New(serverKey, midtrans.Sandbox)
	}
	return p
}

// Name implements Provider.
func (p *MidtransProvider) Name() string { return "midtrans" }

// CreateIntent implements Provider. Snap charges whole currency units.
func (p *MidtransProvider) CreateIntent(_ context.Context, req IntentRequest) (*Intent, error) {
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: (req.AmountCents + 50) / 100,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.Name,
			Email: req.Email,
		},
	}

	resp, mErr := p.client.CreateTransaction(snapReq)
	if mErr != nil {
		return nil, fmt.Errorf("create snap transaction: %w", mErr)
	}

	return &Intent{
		Provider:     p.Name(),
		ClientSecret: resp.Token,
		RedirectURL:  resp.RedirectURL,
		Reference:    req.OrderID,
		OrderID:      req.OrderID,
	}, nil
}
