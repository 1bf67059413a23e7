package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/studyhive-api/internal/models"
)

// journalTimeout bounds the partial-write journal entry, which outlives the request.
const journalTimeout = 3 * time.Second

type transactor interface {
	Enabled() bool
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type repairQueue interface {
	Enqueue(task RepairTask) error
}

// MultiWrite is a primary write followed by a dependent write on another document.
type MultiWrite struct {
	Operation  string
	Resource   string
	ResourceID string
	Actor      string
	Primary    WriteStep
	FollowUp   WriteStep
}

// MultiWriteResult carries both acknowledgements. Partial is set when the follow-up
// failed outside a transaction and was handed to the repair queue.
type MultiWriteResult struct {
	Primary  *models.WriteResult
	FollowUp *models.WriteResult
	Partial  bool
}

// WriteCoordinator executes multi-step writes atomically when transactions are
// available, otherwise sequentially with journaled compensation.
type WriteCoordinator struct {
	tx      transactor
	repair  repairQueue
	audit   *AuditService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewWriteCoordinator constructs the coordinator. tx and repair may be nil.
func NewWriteCoordinator(tx transactor, repair repairQueue, audit *AuditService, metrics *MetricsService, logger *zap.Logger) *WriteCoordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WriteCoordinator{tx: tx, repair: repair, audit: audit, metrics: metrics, logger: logger}
}

// Execute runs w. An error is returned only when the primary write failed, or when
// both writes were rolled back together.
func (c *WriteCoordinator) Execute(ctx context.Context, w MultiWrite) (*MultiWriteResult, error) {
	start := time.Now()
	defer func() { c.metrics.ObserveStoreOperation(w.Operation, time.Since(start)) }()

	if c.tx != nil && c.tx.Enabled() {
		result := &MultiWriteResult{}
		err := c.tx.WithTransaction(ctx, func(txCtx context.Context) error {
			primary, err := w.Primary(txCtx)
			if err != nil {
				return err
			}
			followUp, err := w.FollowUp(txCtx)
			if err != nil {
				return err
			}
			result.Primary, result.FollowUp = primary, followUp
			return nil
		})
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	primary, err := w.Primary(ctx)
	if err != nil {
		return nil, err
	}
	result := &MultiWriteResult{Primary: primary}

	followUp, err := w.FollowUp(ctx)
	if err == nil {
		result.FollowUp = followUp
		return result, nil
	}

	result.Partial = true
	c.metrics.RecordPartialWrite(w.Operation)
	c.logger.Error("follow-up write failed",
		zap.String("operation", w.Operation),
		zap.String("resource", w.Resource),
		zap.String("resource_id", w.ResourceID),
		zap.String("primary_id", primary.InsertedID),
		zap.Error(err),
	)
	journalCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()
	_ = c.audit.Record(journalCtx, AuditEntry{
		Actor:      w.Actor,
		Action:     models.AuditActionPartialWrite,
		Resource:   w.Resource,
		ResourceID: w.ResourceID,
		Payload: map[string]interface{}{
			"operation":  w.Operation,
			"primary_id": primary.InsertedID,
			"error":      err.Error(),
		},
	})

	if c.repair == nil {
		return result, nil
	}
	task := RepairTask{Operation: w.Operation, Resource: w.Resource, ResourceID: w.ResourceID, Actor: w.Actor, Step: w.FollowUp}
	if qErr := c.repair.Enqueue(task); qErr != nil {
		c.logger.Error("repair enqueue failed, journal entry only", zap.String("operation", w.Operation), zap.Error(qErr))
		c.metrics.RecordRepair("dropped")
	}
	return result, nil
}
