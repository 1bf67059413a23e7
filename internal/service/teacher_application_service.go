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

type teacherApplicationRepository interface {
	Insert(ctx context.Context, app *models.TeacherApplication) (*models.WriteResult, error)
	FindByEmail(ctx context.Context, email string) (*models.TeacherApplication, error)
	List(ctx context.Context) ([]models.TeacherApplication, error)
	SetDecision(ctx context.Context, id primitive.ObjectID, role *models.UserRole, status models.ApplicationStatus) (*models.WriteResult, error)
}

type applicantRepository interface {
	SetStatusByEmail(ctx context.Context, email string, role *models.UserRole, status string) (*models.WriteResult, error)
}

// ApplyTeachRequest is the teach-on-StudyHive form.
type ApplyTeachRequest struct {
	Name       string `json:"name"`
	Photo      string `json:"photo"`
	Title      string `json:"title" validate:"required"`
	Experience string `json:"experience" validate:"required"`
	Category   string `json:"category" validate:"required"`
}

// TeacherApplicationService handles teacher onboarding.
type TeacherApplicationService struct {
	repo        teacherApplicationRepository
	users       applicantRepository
	coordinator *WriteCoordinator
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewTeacherApplicationService constructs the service.
func NewTeacherApplicationService(repo teacherApplicationRepository, users applicantRepository, coordinator *WriteCoordinator, validate *validator.Validate, logger *zap.Logger) *TeacherApplicationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if coordinator == nil {
		coordinator = NewWriteCoordinator(nil, nil, nil, nil, logger)
	}
	return &TeacherApplicationService{repo: repo, users: users, coordinator: coordinator, validator: validate, logger: logger, now: time.Now}
}

func (s *TeacherApplicationService) build(caller *models.JWTClaims, req ApplyTeachRequest) (*models.TeacherApplication, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid application payload")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = caller.Name
	}
	return &models.TeacherApplication{
		Name:       name,
		Email:      caller.Email,
		Photo:      req.Photo,
		Title:      req.Title,
		Experience: req.Experience,
		Category:   req.Category,
		Status:     models.ApplicationPending,
		CreatedAt:  s.now().UTC(),
	}, nil
}

// Apply stores a new application for the caller.
func (s *TeacherApplicationService) Apply(ctx context.Context, caller *models.JWTClaims, req ApplyTeachRequest) (*models.WriteResult, error) {
	app, err := s.build(caller, req)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.Insert(ctx, app)
	if err != nil {
		return nil, internalError(err, "failed to submit application")
	}
	return res, nil
}

// Save stores the caller's application once; a repeated submission returns the stored one unchanged.
func (s *TeacherApplicationService) Save(ctx context.Context, caller *models.JWTClaims, req ApplyTeachRequest) (*UpsertOutcome, error) {
	app, err := s.build(caller, req)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, app.Email)
	if err == nil {
		return &UpsertOutcome{Existing: existing}, nil
	}
	if err = storeError(err, "application not found", "failed to load application"); !isNotFound(err) {
		return nil, err
	}

	res, err := s.repo.Insert(ctx, app)
	if err != nil {
		return nil, internalError(err, "failed to submit application")
	}
	return &UpsertOutcome{Result: res}, nil
}

// List returns every application.
func (s *TeacherApplicationService) List(ctx context.Context) ([]models.TeacherApplication, error) {
	apps, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list applications")
	}
	return apps, nil
}

// Approve accepts the application and makes the applicant a Teacher.
func (s *TeacherApplicationService) Approve(ctx context.Context, actor, id, teacherEmail string) (*models.ApplicationDecision, bool, error) {
	role := models.RoleTeacher
	return s.decide(ctx, actor, id, teacherEmail, &role, models.ApplicationAccepted, "application.approve")
}

// Reject marks both the application and the applicant Rejected. Roles are left untouched.
func (s *TeacherApplicationService) Reject(ctx context.Context, actor, id, teacherEmail string) (*models.ApplicationDecision, bool, error) {
	return s.decide(ctx, actor, id, teacherEmail, nil, models.ApplicationRejected, "application.reject")
}

func (s *TeacherApplicationService) decide(ctx context.Context, actor, id, teacherEmail string, role *models.UserRole, status models.ApplicationStatus, operation string) (*models.ApplicationDecision, bool, error) {
	oid, err := parseID(id, "application")
	if err != nil {
		return nil, false, err
	}
	teacherEmail = strings.TrimSpace(teacherEmail)
	if err := s.validator.Var(teacherEmail, "required,email"); err != nil {
		return nil, false, validationError(err, "invalid teacher email")
	}

	result, err := s.coordinator.Execute(ctx, MultiWrite{
		Operation:  operation,
		Resource:   "teacherApplications",
		ResourceID: oid.Hex(),
		Actor:      actor,
		Primary: requireMatch(func(ctx context.Context) (*models.WriteResult, error) {
			return s.repo.SetDecision(ctx, oid, role, status)
		}, "application not found"),
		FollowUp: func(ctx context.Context) (*models.WriteResult, error) {
			return s.users.SetStatusByEmail(ctx, teacherEmail, role, string(status))
		},
	})
	if err != nil {
		return nil, false, writeError(err, "failed to record decision")
	}

	s.logger.Info("teacher application decided",
		zap.String("application_id", oid.Hex()),
		zap.String("status", string(status)),
		zap.Bool("partial", result.Partial),
	)
	return &models.ApplicationDecision{Application: result.Primary, User: result.FollowUp}, result.Partial, nil
}
