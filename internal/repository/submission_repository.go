package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/studyhive-api/internal/models"
)

// SubmissionRepository stores assignment submissions.
type SubmissionRepository struct {
	store
}

// NewSubmissionRepository constructs the repository.
func NewSubmissionRepository(db *mongo.Database, timeout time.Duration) *SubmissionRepository {
	return &SubmissionRepository{store: newStore(db, CollectionSubmissions, timeout)}
}

// Insert stores a submission.
func (r *SubmissionRepository) Insert(ctx context.Context, submission *models.AssignmentSubmission) (*models.WriteResult, error) {
	ensureID(&submission.ID)
	return r.insert(ctx, submission)
}

// ListByAssignment returns the submissions of one assignment.
func (r *SubmissionRepository) ListByAssignment(ctx context.Context, assignmentID string) ([]models.AssignmentSubmission, error) {
	submissions := make([]models.AssignmentSubmission, 0)
	if err := r.find(ctx, bson.M{"assignmentId": assignmentID}, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}
