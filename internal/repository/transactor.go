package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Transactor runs multi-document writes in a session transaction when the deployment supports it.
type Transactor struct {
	client  *mongo.Client
	enabled bool
}

// NewTransactor constructs a transactor. Transactions require a replica set or Atlas cluster.
func NewTransactor(client *mongo.Client, enabled bool) *Transactor {
	return &Transactor{client: client, enabled: enabled && client != nil}
}

// Enabled reports whether fn runs inside a transaction.
func (t *Transactor) Enabled() bool {
	return t != nil && t.enabled
}

// WithTransaction executes fn atomically when enabled, otherwise it calls fn directly.
func (t *Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.Enabled() {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
