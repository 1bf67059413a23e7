package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/studyhive-api/internal/models"
)

// ReviewRepository stores class reviews.
type ReviewRepository struct {
	store
}

// NewReviewRepository constructs the repository.
func NewReviewRepository(db *mongo.Database, timeout time.Duration) *ReviewRepository {
	return &ReviewRepository{store: newStore(db, CollectionReviews, timeout)}
}

// Insert stores a review.
func (r *ReviewRepository) Insert(ctx context.Context, review *models.Review) (*models.WriteResult, error) {
	ensureID(&review.ID)
	return r.insert(ctx, review)
}

// List returns all reviews.
func (r *ReviewRepository) List(ctx context.Context) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	if err := r.find(ctx, bson.M{}, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListByClass returns the reviews of one class.
func (r *ReviewRepository) ListByClass(ctx context.Context, classID string) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	if err := r.find(ctx, bson.M{"classId": classID}, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
