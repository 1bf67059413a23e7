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

type assignmentRepository interface {
	Insert(ctx context.Context, assignment *models.Assignment) (*models.WriteResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error)
	ListByClass(ctx context.Context, classID string) ([]models.Assignment, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.AssignmentStatus) (*models.WriteResult, error)
}

type classCounter interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Class, error)
	IncrementCounter(ctx context.Context, id primitive.ObjectID, field string) (*models.WriteResult, error)
}

// CreateAssignmentRequest describes new classwork.
type CreateAssignmentRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

// AssignmentService manages classwork and keeps the class assignment counter.
type AssignmentService struct {
	repo        assignmentRepository
	classes     classCounter
	coordinator *WriteCoordinator
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewAssignmentService constructs the service.
func NewAssignmentService(repo assignmentRepository, classes classCounter, coordinator *WriteCoordinator, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if coordinator == nil {
		coordinator = NewWriteCoordinator(nil, nil, nil, nil, logger)
	}
	return &AssignmentService{repo: repo, classes: classes, coordinator: coordinator, cache: cache, validator: validate, logger: logger, now: time.Now}
}

// Create inserts an assignment for classID and bumps the class assignment counter by one.
func (s *AssignmentService) Create(ctx context.Context, caller *models.JWTClaims, classID string, req CreateAssignmentRequest) (*models.WriteResult, bool, error) {
	if err := requireCaller(caller); err != nil {
		return nil, false, err
	}
	oid, err := parseID(classID, "class")
	if err != nil {
		return nil, false, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, false, validationError(err, "invalid assignment payload")
	}
	if _, err := s.classes.FindByID(ctx, oid); err != nil {
		return nil, false, storeError(err, "class not found", "failed to load class")
	}

	assignment := &models.Assignment{
		ClassID:      oid.Hex(),
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Deadline:     req.Deadline,
		Status:       models.AssignmentPending,
		TeacherEmail: caller.Email,
		CreatedAt:    s.now().UTC(),
	}
	result, err := s.coordinator.Execute(ctx, MultiWrite{
		Operation:  "assignment.create",
		Resource:   "classes",
		ResourceID: oid.Hex(),
		Actor:      caller.Email,
		Primary: func(ctx context.Context) (*models.WriteResult, error) {
			return s.repo.Insert(ctx, assignment)
		},
		FollowUp: func(ctx context.Context) (*models.WriteResult, error) {
			return s.classes.IncrementCounter(ctx, oid, models.ClassCounterAssignment)
		},
	})
	if err != nil {
		return nil, false, writeError(err, "failed to create assignment")
	}
	s.cache.Invalidate(ctx, CacheKeyAcceptedClasses)
	return result.Primary, result.Partial, nil
}

// ListByClass returns the assignments of one class.
func (s *AssignmentService) ListByClass(ctx context.Context, classID string) ([]models.Assignment, error) {
	oid, err := parseID(classID, "class")
	if err != nil {
		return nil, err
	}
	assignments, err := s.repo.ListByClass(ctx, oid.Hex())
	if err != nil {
		return nil, internalError(err, "failed to list assignments")
	}
	return assignments, nil
}
