package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/studyhive-api/internal/models"
)

// AssignmentRepository stores class assignments.
type AssignmentRepository struct {
	store
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *mongo.Database, timeout time.Duration) *AssignmentRepository {
	return &AssignmentRepository{store: newStore(db, CollectionAssignments, timeout)}
}

// Insert stores an assignment.
func (r *AssignmentRepository) Insert(ctx context.Context, assignment *models.Assignment) (*models.WriteResult, error) {
	ensureID(&assignment.ID)
	return r.insert(ctx, assignment)
}

// FindByID returns an assignment by id.
func (r *AssignmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := r.findOne(ctx, bson.M{"_id": id}, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ListByClass returns the assignments of one class.
func (r *AssignmentRepository) ListByClass(ctx context.Context, classID string) ([]models.Assignment, error) {
	assignments := make([]models.Assignment, 0)
	if err := r.find(ctx, bson.M{"classId": classID}, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// SetStatus updates the status of an assignment.
func (r *AssignmentRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.AssignmentStatus) (*models.WriteResult, error) {
	return r.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
}
