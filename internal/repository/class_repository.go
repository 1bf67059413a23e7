package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/studyhive-api/internal/models"
)

// ClassRepository handles persistence for classes.
type ClassRepository struct {
	store
}

// NewClassRepository creates a new repository.
func NewClassRepository(db *mongo.Database, timeout time.Duration) *ClassRepository {
	return &ClassRepository{store: newStore(db, CollectionClasses, timeout)}
}

// Insert stores a class.
func (r *ClassRepository) Insert(ctx context.Context, class *models.Class) (*models.WriteResult, error) {
	ensureID(&class.ID)
	return r.insert(ctx, class)
}

// FindByID returns a class by id.
func (r *ClassRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Class, error) {
	var class models.Class
	if err := r.findOne(ctx, bson.M{"_id": id}, &class); err != nil {
		return nil, err
	}
	return &class, nil
}

// List returns classes, restricted to one status when provided.
func (r *ClassRepository) List(ctx context.Context, status *models.ClassStatus) ([]models.Class, error) {
	filter := bson.M{}
	if status != nil {
		filter["status"] = *status
	}
	classes := make([]models.Class, 0)
	if err := r.find(ctx, filter, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// ListByTeacher returns the classes authored by teacherEmail.
func (r *ClassRepository) ListByTeacher(ctx context.Context, teacherEmail string) ([]models.Class, error) {
	classes := make([]models.Class, 0)
	if err := r.find(ctx, bson.M{"teacher_email": teacherEmail}, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// Update applies the teacher-editable fields.
func (r *ClassRepository) Update(ctx context.Context, id primitive.ObjectID, update models.ClassUpdate, updatedAt time.Time) (*models.WriteResult, error) {
	set := bson.M{"updated_at": updatedAt}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}
	return r.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

// SetStatus updates the review status of a class.
func (r *ClassRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ClassStatus) (*models.WriteResult, error) {
	return r.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
}

// IncrementCounter atomically adds one to a counter field.
func (r *ClassRepository) IncrementCounter(ctx context.Context, id primitive.ObjectID, field string) (*models.WriteResult, error) {
	return r.updateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: 1}})
}

// Delete removes a class.
func (r *ClassRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.WriteResult, error) {
	return r.deleteOne(ctx, bson.M{"_id": id})
}

// EstimatedCount returns the approximate number of classes.
func (r *ClassRepository) EstimatedCount(ctx context.Context) (int64, error) {
	return r.estimatedCount(ctx)
}
