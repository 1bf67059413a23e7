package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/studyhive-api/internal/models"
	"github.com/noah-isme/studyhive-api/pkg/jobs"
)

// JobTypeRepair identifies follow-up writes queued for retry.
const JobTypeRepair = "repair_follow_up"

// WriteStep performs one document write.
type WriteStep func(ctx context.Context) (*models.WriteResult, error)

// RepairTask is the payload of a repair job.
type RepairTask struct {
	Operation  string
	Resource   string
	ResourceID string
	Actor      string
	Step       WriteStep
}

// RepairConfig tunes the repair worker pool.
type RepairConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
}

// RepairService retries failed follow-up writes in the background.
type RepairService struct {
	queue   *jobs.Queue
	audit   *AuditService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewRepairService wires the repair queue. Call Start before enqueueing.
func NewRepairService(cfg RepairConfig, audit *AuditService, metrics *MetricsService, logger *zap.Logger) *RepairService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &RepairService{audit: audit, metrics: metrics, logger: logger}
	s.queue = jobs.NewQueue("repair", s.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		BufferSize: cfg.BufferSize,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
		OnGiveUp:   s.giveUp,
	})
	return s
}

// Start launches the workers.
func (s *RepairService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains in-flight work.
func (s *RepairService) Stop() {
	s.queue.Stop()
}

// Pending returns the number of queued repairs.
func (s *RepairService) Pending() int {
	return s.queue.Pending()
}

// Enqueue schedules task for retry. It never blocks; a full queue returns jobs.ErrQueueFull.
func (s *RepairService) Enqueue(task RepairTask) error {
	if task.Step == nil {
		return fmt.Errorf("repair %s: missing step", task.Operation)
	}
	return s.queue.TryEnqueue(jobs.Job{Type: JobTypeRepair, Payload: task})
}

func (s *RepairService) handle(ctx context.Context, job jobs.Job) error {
	task, ok := job.Payload.(RepairTask)
	if !ok {
		return fmt.Errorf("unexpected repair payload %T", job.Payload)
	}
	if _, err := task.Step(ctx); err != nil {
		s.metrics.RecordRepair("retry")
		return err
	}
	s.metrics.RecordRepair("repaired")
	s.logger.Info("follow-up write repaired",
		zap.String("operation", task.Operation),
		zap.String("resource_id", task.ResourceID),
		zap.Int("attempt", job.Attempt),
	)
	return nil
}

func (s *RepairService) giveUp(job jobs.Job, err error) {
	s.metrics.RecordRepair("abandoned")
	task, _ := job.Payload.(RepairTask)
	s.logger.Error("follow-up write abandoned",
		zap.String("operation", task.Operation),
		zap.String("resource_id", task.ResourceID),
		zap.Error(err),
	)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.audit.Record(ctx, AuditEntry{
		Actor:      task.Actor,
		Action:     models.AuditActionRepairFailed,
		Resource:   task.Resource,
		ResourceID: task.ResourceID,
		Payload:    map[string]interface{}{"operation": task.Operation, "error": err.Error(), "attempts": job.Attempt},
	})
}
