package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/studyhive-api/internal/models"
)

// TeacherApplicationRepository persists teach-on-StudyHive requests.
type TeacherApplicationRepository struct {
	store
}

// NewTeacherApplicationRepository constructs the repository.
func NewTeacherApplicationRepository(db *mongo.Database, timeout time.Duration) *TeacherApplicationRepository {
	return &TeacherApplicationRepository{store: newStore(db, CollectionTeacherApplications, timeout)}
}

// Insert stores an application.
func (r *TeacherApplicationRepository) Insert(ctx context.Context, app *models.TeacherApplication) (*models.WriteResult, error) {
	ensureID(&app.ID)
	return r.insert(ctx, app)
}

// FindByEmail returns the application submitted by email.
func (r *TeacherApplicationRepository) FindByEmail(ctx context.Context, email string) (*models.TeacherApplication, error) {
	var app models.TeacherApplication
	if err := r.findOne(ctx, bson.M{"email": email}, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// List returns every application.
func (r *TeacherApplicationRepository) List(ctx context.Context) ([]models.TeacherApplication, error) {
	apps := make([]models.TeacherApplication, 0)
	if err := r.find(ctx, bson.M{}, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// SetDecision writes the review outcome. A nil role leaves the stored role untouched.
func (r *TeacherApplicationRepository) SetDecision(ctx context.Context, id primitive.ObjectID, role *models.UserRole, status models.ApplicationStatus) (*models.WriteResult, error) {
	set := bson.M{"status": status}
	if role != nil {
		set["role"] = *role
	}
	return r.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}
