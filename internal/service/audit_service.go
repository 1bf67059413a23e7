package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/studyhive-api/internal/models"
)

type auditRepository interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// AuditEntry describes one journaled action.
type AuditEntry struct {
	Actor      string
	Action     string
	Resource   string
	ResourceID string
	Payload    interface{}
	IPAddress  string
	UserAgent  string
}

// AuditService writes admin actions and partial writes to the journal.
// Without a repository it only logs.
type AuditService struct {
	repo   auditRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewAuditService constructs the service. repo may be nil when the journal is disabled.
func NewAuditService(repo auditRepository, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, logger: logger, now: time.Now}
}

// Record journals entry.
func (s *AuditService) Record(ctx context.Context, entry AuditEntry) error {
	if s == nil {
		return nil
	}

	fields := []zap.Field{
		zap.String("action", entry.Action),
		zap.String("resource", entry.Resource),
		zap.String("resource_id", entry.ResourceID),
		zap.String("actor", entry.Actor),
	}
	if s.repo == nil {
		s.logger.Info("audit", fields...)
		return nil
	}

	var payload []byte
	if entry.Payload != nil {
		raw, err := json.Marshal(entry.Payload)
		if err != nil {
			s.logger.Warn("audit payload not serialisable", append(fields, zap.Error(err))...)
		} else {
			payload = raw
		}
	}

	log := &models.AuditLog{
		ID:        uuid.NewString(),
		Action:    entry.Action,
		Resource:  entry.Resource,
		Payload:   payload,
		IPAddress: entry.IPAddress,
		UserAgent: entry.UserAgent,
		CreatedAt: s.now().UTC(),
	}
	if entry.Actor != "" {
		actor := entry.Actor
		log.ActorEmail = &actor
	}
	if entry.ResourceID != "" {
		id := entry.ResourceID
		log.ResourceID = &id
	}

	if err := s.repo.Create(ctx, log); err != nil {
		s.logger.Error("audit journal write failed", append(fields, zap.Error(err))...)
		return err
	}
	return nil
}
