package repository

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/studyhive-api/internal/models"
)

// UserRepository provides document store access for user accounts.
type UserRepository struct {
	store
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database, timeout time.Duration) *UserRepository {
	return &UserRepository{store: newStore(db, CollectionUsers, timeout)}
}

// List returns users, optionally filtered by a case-insensitive name or email search.
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	query := bson.M{}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"email": pattern},
		}
	}

	users := make([]models.User, 0)
	if err := r.find(ctx, query, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.findOne(ctx, bson.M{"email": email}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Insert stores a new user document.
func (r *UserRepository) Insert(ctx context.Context, user *models.User) (*models.WriteResult, error) {
	ensureID(&user.ID)
	return r.insert(ctx, user)
}

// SetRole updates the role of the user with the given id.
func (r *UserRepository) SetRole(ctx context.Context, id primitive.ObjectID, role models.UserRole) (*models.WriteResult, error) {
	return r.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
}

// SetStatusByEmail writes status, and role when provided, onto the user with the given email.
func (r *UserRepository) SetStatusByEmail(ctx context.Context, email string, role *models.UserRole, status string) (*models.WriteResult, error) {
	set := bson.M{"status": status}
	if role != nil {
		set["role"] = *role
	}
	return r.updateOne(ctx, bson.M{"email": email}, bson.M{"$set": set})
}

// Delete removes the user with the given id.
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.WriteResult, error) {
	return r.deleteOne(ctx, bson.M{"_id": id})
}

// EstimatedCount returns the approximate number of users.
func (r *UserRepository) EstimatedCount(ctx context.Context) (int64, error) {
	return r.estimatedCount(ctx)
}
