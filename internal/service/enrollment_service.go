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

type enrollmentRepository interface {
	Insert(ctx context.Context, enrollment *models.Enrollment) (*models.WriteResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Enrollment, error)
	List(ctx context.Context) ([]models.Enrollment, error)
	ListByEmail(ctx context.Context, email string) ([]models.Enrollment, error)
	ListByClass(ctx context.Context, classID string) ([]models.Enrollment, error)
}

// EnrollRequest records a completed checkout.
type EnrollRequest struct {
	Name          string   `json:"name"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	TransactionID string   `json:"transaction_id"`
}

// EnrollmentService records enrollments and keeps the class enrolment counter.
type EnrollmentService struct {
	repo        enrollmentRepository
	classes     classCounter
	coordinator *WriteCoordinator
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewEnrollmentService constructs the service.
func NewEnrollmentService(repo enrollmentRepository, classes classCounter, coordinator *WriteCoordinator, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if coordinator == nil {
		coordinator = NewWriteCoordinator(nil, nil, nil, nil, logger)
	}
	return &EnrollmentService{repo: repo, classes: classes, coordinator: coordinator, cache: cache, validator: validate, logger: logger, now: time.Now}
}

// Enroll inserts an enrollment for the caller and bumps the class enrolment counter by one.
// Repeated enrollments are not deduplicated.
func (s *EnrollmentService) Enroll(ctx context.Context, caller *models.JWTClaims, classID string, req EnrollRequest) (*models.WriteResult, bool, error) {
	if err := requireCaller(caller); err != nil {
		return nil, false, err
	}
	oid, err := parseID(classID, "class")
	if err != nil {
		return nil, false, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, false, validationError(err, "invalid enrollment payload")
	}
	class, err := s.classes.FindByID(ctx, oid)
	if err != nil {
		return nil, false, storeError(err, "class not found", "failed to load class")
	}

	price := class.Price
	if req.Price != nil {
		price = *req.Price
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = caller.Name
	}
	enrollment := &models.Enrollment{
		ClassID:       oid.Hex(),
		ClassTitle:    class.Title,
		TeacherEmail:  class.TeacherEmail,
		Email:         caller.Email,
		Name:          name,
		Price:         price,
		TransactionID: req.TransactionID,
		CreatedAt:     s.now().UTC(),
	}
	result, err := s.coordinator.Execute(ctx, MultiWrite{
		Operation:  "enrollment.create",
		Resource:   "classes",
		ResourceID: oid.Hex(),
		Actor:      caller.Email,
		Primary: func(ctx context.Context) (*models.WriteResult, error) {
			return s.repo.Insert(ctx, enrollment)
		},
		FollowUp: func(ctx context.Context) (*models.WriteResult, error) {
			return s.classes.IncrementCounter(ctx, oid, models.ClassCounterEnrolment)
		},
	})
	if err != nil {
		return nil, false, writeError(err, "failed to enroll")
	}
	s.cache.Invalidate(ctx, CacheKeyPublicStats, CacheKeyAcceptedClasses)
	return result.Primary, result.Partial, nil
}

// ListMine returns the enrollments of email.
func (s *EnrollmentService) ListMine(ctx context.Context, email string) ([]models.Enrollment, error) {
	enrollments, err := s.repo.ListByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, internalError(err, "failed to list enrollments")
	}
	return enrollments, nil
}

// ListAll returns every enrollment.
func (s *EnrollmentService) ListAll(ctx context.Context) ([]models.Enrollment, error) {
	enrollments, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list enrollments")
	}
	return enrollments, nil
}

// Get returns an enrollment by id.
func (s *EnrollmentService) Get(ctx context.Context, id string) (*models.Enrollment, error) {
	oid, err := parseID(id, "enrollment")
	if err != nil {
		return nil, err
	}
	enrollment, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, storeError(err, "enrollment not found", "failed to load enrollment")
	}
	return enrollment, nil
}
