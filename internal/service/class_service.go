package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/noah-isme/studyhive-api/internal/models"
	appErrors "github.com/noah-isme/studyhive-api/pkg/errors"
)

type classRepository interface {
	Insert(ctx context.Context, class *models.Class) (*models.WriteResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Class, error)
	List(ctx context.Context, status *models.ClassStatus) ([]models.Class, error)
	ListByTeacher(ctx context.Context, teacherEmail string) ([]models.Class, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.ClassUpdate, updatedAt time.Time) (*models.WriteResult, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.ClassStatus) (*models.WriteResult, error)
	IncrementCounter(ctx context.Context, id primitive.ObjectID, field string) (*models.WriteResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.WriteResult, error)
	EstimatedCount(ctx context.Context) (int64, error)
}

// CreateClassRequest captures creation payload.
type CreateClassRequest struct {
	Title        string  `json:"title" validate:"required"`
	Name         string  `json:"name"`
	TeacherPhoto string  `json:"teacher_photo"`
	Price        float64 `json:"price" validate:"gte=0"`
	Description  string  `json:"description" validate:"required"`
	Image        string  `json:"image"`
}

// UpdateClassRequest modifies the teacher-editable fields. Omitted fields are kept.
type UpdateClassRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
}

// ClassService coordinates class operations.
type ClassService struct {
	repo      classRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewClassService constructs ClassService.
func NewClassService(repo classRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, cache: cache, validator: validate, logger: logger, now: time.Now}
}

// Create stores a Pending class owned by the caller.
func (s *ClassService) Create(ctx context.Context, caller *models.JWTClaims, req CreateClassRequest) (*models.WriteResult, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid class payload")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = caller.Name
	}
	now := s.now().UTC()
	class := &models.Class{
		Title:        strings.TrimSpace(req.Title),
		Name:         name,
		TeacherEmail: caller.Email,
		TeacherPhoto: req.TeacherPhoto,
		Price:        req.Price,
		Description:  req.Description,
		Image:        req.Image,
		Status:       models.ClassStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	res, err := s.repo.Insert(ctx, class)
	if err != nil {
		return nil, internalError(err, "failed to create class")
	}
	s.cache.Invalidate(ctx, CacheKeyPublicStats)
	return res, nil
}

// ListAccepted returns only classes approved for the public catalogue.
func (s *ClassService) ListAccepted(ctx context.Context) ([]models.Class, error) {
	var cached []models.Class
	if hit, _ := s.cache.Get(ctx, CacheKeyAcceptedClasses, &cached); hit {
		return cached, nil
	}

	status := models.ClassStatusAccepted
	classes, err := s.repo.List(ctx, &status)
	if err != nil {
		return nil, internalError(err, "failed to list classes")
	}
	_ = s.cache.Set(ctx, CacheKeyAcceptedClasses, classes, 0)
	return classes, nil
}

// ListAll returns every class regardless of status.
func (s *ClassService) ListAll(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repo.List(ctx, nil)
	if err != nil {
		return nil, internalError(err, "failed to list classes")
	}
	return classes, nil
}

// ListByTeacher returns the classes authored by teacherEmail.
func (s *ClassService) ListByTeacher(ctx context.Context, teacherEmail string) ([]models.Class, error) {
	classes, err := s.repo.ListByTeacher(ctx, strings.TrimSpace(teacherEmail))
	if err != nil {
		return nil, internalError(err, "failed to list classes")
	}
	return classes, nil
}

// Get returns a class by id.
func (s *ClassService) Get(ctx context.Context, id string) (*models.Class, error) {
	oid, err := parseID(id, "class")
	if err != nil {
		return nil, err
	}
	class, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, storeError(err, "class not found", "failed to load class")
	}
	return class, nil
}

// Update applies the provided fields.
func (s *ClassService) Update(ctx context.Context, id string, req UpdateClassRequest) (*models.WriteResult, error) {
	oid, err := parseID(id, "class")
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid class payload")
	}
	update := models.ClassUpdate{Title: req.Title, Price: req.Price, Description: req.Description, Image: req.Image}
	if update.IsEmpty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no class fields to update")
	}

	res, err := requireMatch(func(ctx context.Context) (*models.WriteResult, error) {
		return s.repo.Update(ctx, oid, update, s.now().UTC())
	}, "class not found")(ctx)
	if err != nil {
		return nil, writeError(err, "failed to update class")
	}
	s.cache.Invalidate(ctx, CacheKeyAcceptedClasses)
	return res, nil
}

// Accept publishes a class.
func (s *ClassService) Accept(ctx context.Context, id string) (*models.WriteResult, error) {
	return s.setStatus(ctx, id, models.ClassStatusAccepted)
}

// Reject hides a class from the catalogue.
func (s *ClassService) Reject(ctx context.Context, id string) (*models.WriteResult, error) {
	return s.setStatus(ctx, id, models.ClassStatusRejected)
}

func (s *ClassService) setStatus(ctx context.Context, id string, status models.ClassStatus) (*models.WriteResult, error) {
	oid, err := parseID(id, "class")
	if err != nil {
		return nil, err
	}
	res, err := requireMatch(func(ctx context.Context) (*models.WriteResult, error) {
		return s.repo.SetStatus(ctx, oid, status)
	}, "class not found")(ctx)
	if err != nil {
		return nil, writeError(err, "failed to update class status")
	}
	s.cache.Invalidate(ctx, CacheKeyAcceptedClasses)
	s.logger.Info("class status changed", zap.String("class_id", oid.Hex()), zap.String("status", string(status)))
	return res, nil
}

// Delete removes a class.
func (s *ClassService) Delete(ctx context.Context, id string) (*models.WriteResult, error) {
	oid, err := parseID(id, "class")
	if err != nil {
		return nil, err
	}
	res, err := requireMatch(func(ctx context.Context) (*models.WriteResult, error) {
		return s.repo.Delete(ctx, oid)
	}, "class not found")(ctx)
	if err != nil {
		return nil, writeError(err, "failed to delete class")
	}
	s.cache.Invalidate(ctx, CacheKeyAcceptedClasses, CacheKeyPublicStats)
	return res, nil
}
