package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/noah-isme/studyhive-api/internal/models"
)

type submissionRepository interface {
	Insert(ctx context.Context, submission *models.AssignmentSubmission) (*models.WriteResult, error)
	ListByAssignment(ctx context.Context, assignmentID string) ([]models.AssignmentSubmission, error)
}

type assignmentStatusRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.AssignmentStatus) (*models.WriteResult, error)
}

// SubmitAssignmentRequest carries a student's answer.
type SubmitAssignmentRequest struct {
	Name    string `json:"name"`
	Content string `json:"content" validate:"required"`
}

// SubmissionService records assignment submissions.
type SubmissionService struct {
	repo        submissionRepository
	assignments assignmentStatusRepository
	coordinator *WriteCoordinator
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewSubmissionService constructs the service.
func NewSubmissionService(repo submissionRepository, assignments assignmentStatusRepository, coordinator *WriteCoordinator, validate *validator.Validate, logger *zap.Logger) *SubmissionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if coordinator == nil {
		coordinator = NewWriteCoordinator(nil, nil, nil, nil, logger)
	}
	return &SubmissionService{repo: repo, assignments: assignments, coordinator: coordinator, validator: validate, logger: logger, now: time.Now}
}

// Submit stores the caller's submission and marks the assignment Submitted.
func (s *SubmissionService) Submit(ctx context.Context, caller *models.JWTClaims, assignmentID string, req SubmitAssignmentRequest) (*models.WriteResult, bool, error) {
	if err := requireCaller(caller); err != nil {
		return nil, false, err
	}
	oid, err := parseID(assignmentID, "assignment")
	if err != nil {
		return nil, false, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, false, validationError(err, "invalid submission payload")
	}
	assignment, err := s.assignments.FindByID(ctx, oid)
	if err != nil {
		return nil, false, storeError(err, "assignment not found", "failed to load assignment")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = caller.Name
	}
	submission := &models.AssignmentSubmission{
		AssignmentID: oid.Hex(),
		ClassID:      assignment.ClassID,
		Email:        caller.Email,
		Name:         name,
		Content:      req.Content,
		CreatedAt:    s.now().UTC(),
	}
	result, err := s.coordinator.Execute(ctx, MultiWrite{
		Operation:  "assignment.submit",
		Resource:   "assignments",
		ResourceID: oid.Hex(),
		Actor:      caller.Email,
		Primary: func(ctx context.Context) (*models.WriteResult, error) {
			return s.repo.Insert(ctx, submission)
		},
		FollowUp: func(ctx context.Context) (*models.WriteResult, error) {
			return s.assignments.SetStatus(ctx, oid, models.AssignmentSubmitted)
		},
	})
	if err != nil {
		return nil, false, writeError(err, "failed to submit assignment")
	}
	return result.Primary, result.Partial, nil
}

// ListByAssignment returns the submissions of one assignment.
func (s *SubmissionService) ListByAssignment(ctx context.Context, assignmentID string) ([]models.AssignmentSubmission, error) {
	oid, err := parseID(assignmentID, "assignment")
	if err != nil {
		return nil, err
	}
	submissions, err := s.repo.ListByAssignment(ctx, oid.Hex())
	if err != nil {
		return nil, internalError(err, "failed to list submissions")
	}
	return submissions, nil
}
