package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studyhive-api/internal/models"
)

type reviewRepository interface {
	Insert(ctx context.Context, review *models.Review) (*models.WriteResult, error)
	List(ctx context.Context) ([]models.Review, error)
	ListByClass(ctx context.Context, classID string) ([]models.Review, error)
}

// CreateReviewRequest is a student's rating of a class.
type CreateReviewRequest struct {
	ClassID    string  `json:"classId" validate:"required"`
	ClassTitle string  `json:"class_title"`
	Name       string  `json:"name"`
	Photo      string  `json:"photo"`
	Rating     float64 `json:"rating" validate:"gte=0,lte=5"`
	Content    string  `json:"content" validate:"required"`
}

// ReviewService manages class feedback.
type ReviewService struct {
	repo      reviewRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewReviewService constructs the service.
func NewReviewService(repo reviewRepository, validate *validator.Validate, logger *zap.Logger) *ReviewService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// Create stores a review authored by the caller.
func (s *ReviewService) Create(ctx context.Context, caller *models.JWTClaims, req CreateReviewRequest) (*models.WriteResult, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid review payload")
	}
	classID, err := parseID(req.ClassID, "class")
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = caller.Name
	}
	res, err := s.repo.Insert(ctx, &models.Review{
		ClassID:    classID.Hex(),
		ClassTitle: req.ClassTitle,
		Name:       name,
		Email:      caller.Email,
		Photo:      req.Photo,
		Rating:     req.Rating,
		Content:    req.Content,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		return nil, internalError(err, "failed to save review")
	}
	return res, nil
}

// List returns all reviews.
func (s *ReviewService) List(ctx context.Context) ([]models.Review, error) {
	reviews, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list reviews")
	}
	return reviews, nil
}

// ListByClass returns the reviews of one class.
func (s *ReviewService) ListByClass(ctx context.Context, classID string) ([]models.Review, error) {
	oid, err := parseID(classID, "class")
	if err != nil {
		return nil, err
	}
	reviews, err := s.repo.ListByClass(ctx, oid.Hex())
	if err != nil {
		return nil, internalError(err, "failed to list reviews")
	}
	return reviews, nil
}
