package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/noah-isme/studyhive-api/pkg/config"
)

// Mongo owns the document store client for the lifetime of the process.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// NewMongo connects to MongoDB, retrying connect+ping with linear backoff.
func NewMongo(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Mongo, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	attempts := cfg.ConnectRetries
	if attempts <= 0 {
		attempts = 1
	}

	opts := options.Client().
		ApplyURI(MongoURI(cfg)).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetAppName(cfg.AppName).
		SetRetryWrites(true).
		SetRetryReads(true)
	if cfg.OpTimeout > 0 {
		opts.SetServerSelectionTimeout(cfg.OpTimeout)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		client, err := connect(ctx, opts, cfg.OpTimeout)
		if err == nil {
			logger.Info("connected to mongodb", zap.String("database", cfg.Database), zap.Int("attempt", attempt))
			return &Mongo{client: client, db: client.Database(cfg.Database), logger: logger}, nil
		}
		lastErr = err
		logger.Warn("mongodb connection failed", zap.Int("attempt", attempt), zap.Int("max_attempts", attempts), zap.Error(err))
		if attempt == attempts {
			break
		}

		timer := time.NewTimer(cfg.RetryDelay * time.Duration(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, fmt.Errorf("connect mongodb after %d attempts: %w", attempts, lastErr)
}

func connect(ctx context.Context, opts *options.ClientOptions, timeout time.Duration) (*mongo.Client, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// MongoURI builds the connection string, preferring an explicit MONGO_URI.
func MongoURI(cfg config.MongoConfig) string {
	if cfg.URI != "" {
		return cfg.URI
	}
	if cfg.User == "" {
		return fmt.Sprintf("mongodb://%s", cfg.Host)
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority&appName=%s",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		cfg.Host,
		url.QueryEscape(cfg.AppName),
	)
}

// Client exposes the underlying driver client.
func (m *Mongo) Client() *mongo.Client {
	return m.client
}

// Database returns the configured database handle.
func (m *Mongo) Database() *mongo.Database {
	return m.db
}

// Ping checks primary reachability.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}
