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

type userRepository interface {
	List(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.WriteResult, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role models.UserRole) (*models.WriteResult, error)
	SetStatusByEmail(ctx context.Context, email string, role *models.UserRole, status string) (*models.WriteResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.WriteResult, error)
	EstimatedCount(ctx context.Context) (int64, error)
}

// SaveUserRequest is the profile sent on first sign-in. Role and status are never client supplied.
type SaveUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
	Photo string `json:"photo"`
}

// UpsertOutcome reports either the stored document or the insert acknowledgement.
type UpsertOutcome struct {
	Existing interface{}
	Result   *models.WriteResult
}

// Created reports whether a new document was written.
func (o *UpsertOutcome) Created() bool {
	return o != nil && o.Result != nil
}

// UserService manages marketplace accounts.
type UserService struct {
	repo      userRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewUserService constructs a UserService.
func NewUserService(repo userRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, cache: cache, validator: validate, logger: logger, now: time.Now}
}

// List returns users; search matches name or email case-insensitively.
func (s *UserService) List(ctx context.Context, search string) ([]models.User, error) {
	users, err := s.repo.List(ctx, models.UserFilter{Search: strings.TrimSpace(search)})
	if err != nil {
		return nil, internalError(err, "failed to list users")
	}
	return users, nil
}

// GetByEmail returns one user.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, storeError(err, "user not found", "failed to load user")
	}
	return user, nil
}

// Save inserts the user on first sign-in. A known email returns the stored document unchanged.
func (s *UserService) Save(ctx context.Context, req SaveUserRequest) (*UpsertOutcome, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid user payload")
	}

	existing, err := s.GetByEmail(ctx, req.Email)
	if err == nil {
		return &UpsertOutcome{Existing: existing}, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	user := &models.User{
		Name:      req.Name,
		Email:     req.Email,
		Photo:     req.Photo,
		CreatedAt: s.now().UTC(),
	}
	res, err := s.repo.Insert(ctx, user)
	if err != nil {
		return nil, internalError(err, "failed to create user")
	}
	s.cache.Invalidate(ctx, CacheKeyPublicStats)
	s.logger.Info("user registered", zap.String("email", user.Email))
	return &UpsertOutcome{Result: res}, nil
}

// PromoteToAdmin grants the Admin role.
func (s *UserService) PromoteToAdmin(ctx context.Context, id string) (*models.WriteResult, error) {
	oid, err := parseID(id, "user")
	if err != nil {
		return nil, err
	}
	res, err := requireMatch(func(ctx context.Context) (*models.WriteResult, error) {
		return s.repo.SetRole(ctx, oid, models.RoleAdmin)
	}, "user not found")(ctx)
	if err != nil {
		return nil, writeError(err, "failed to promote user")
	}
	return res, nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id string) (*models.WriteResult, error) {
	oid, err := parseID(id, "user")
	if err != nil {
		return nil, err
	}
	res, err := requireMatch(func(ctx context.Context) (*models.WriteResult, error) {
		return s.repo.Delete(ctx, oid)
	}, "user not found")(ctx)
	if err != nil {
		return nil, writeError(err, "failed to delete user")
	}
	s.cache.Invalidate(ctx, CacheKeyPublicStats)
	return res, nil
}
