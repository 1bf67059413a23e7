package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/studyhive-api/internal/models"
)

// EnrollmentRepository manages class enrollments.
type EnrollmentRepository struct {
	store
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *mongo.Database, timeout time.Duration) *EnrollmentRepository {
	return &EnrollmentRepository{store: newStore(db, CollectionEnrollments, timeout)}
}

// Insert stores an enrollment.
func (r *EnrollmentRepository) Insert(ctx context.Context, enrollment *models.Enrollment) (*models.WriteResult, error) {
	ensureID(&enrollment.ID)
	return r.insert(ctx, enrollment)
}

// FindByID returns an enrollment by id.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.findOne(ctx, bson.M{"_id": id}, &enrollment); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// List returns every enrollment.
func (r *EnrollmentRepository) List(ctx context.Context) ([]models.Enrollment, error) {
	return r.list(ctx, bson.M{})
}

// ListByEmail returns the enrollments of one student.
func (r *EnrollmentRepository) ListByEmail(ctx context.Context, email string) ([]models.Enrollment, error) {
	return r.list(ctx, bson.M{"email": email})
}

// ListByClass returns the enrollments of one class.
func (r *EnrollmentRepository) ListByClass(ctx context.Context, classID string) ([]models.Enrollment, error) {
	return r.list(ctx, bson.M{"classId": classID})
}

// EstimatedCount returns the approximate number of enrollments.
func (r *EnrollmentRepository) EstimatedCount(ctx context.Context) (int64, error) {
	return r.estimatedCount(ctx)
}

func (r *EnrollmentRepository) list(ctx context.Context, filter bson.M) ([]models.Enrollment, error) {
	enrollments := make([]models.Enrollment, 0)
	if err := r.find(ctx, filter, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}
