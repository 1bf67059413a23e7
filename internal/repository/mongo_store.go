package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/studyhive-api/internal/models"
)

// Collection names.
const (
	CollectionUsers               = "users"
	CollectionClasses             = "classes"
	CollectionReviews             = "reviews"
	CollectionTeacherApplications = "teacherApplications"
	CollectionEnrollments         = "enrollments"
	CollectionAssignments         = "assignments"
	CollectionSubmissions         = "assignmentSubmissions"
)

const defaultOpTimeout = 5 * time.Second

// store wraps one collection with the per-operation timeout.
type store struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func newStore(db *mongo.Database, name string, timeout time.Duration) store {
	if timeout <= 0 {
		timeout = defaultOpTimeout
	}
	return store{coll: db.Collection(name), timeout: timeout}
}

func (s store) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s store) insert(ctx context.Context, doc interface{}) (*models.WriteResult, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", s.coll.Name(), err)
	}
	return insertResult(res), nil
}

func (s store) updateOne(ctx context.Context, filter, update interface{}) (*models.WriteResult, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	res, err := s.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", s.coll.Name(), err)
	}
	return updateResult(res), nil
}

func (s store) deleteOne(ctx context.Context, filter interface{}) (*models.WriteResult, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("delete from %s: %w", s.coll.Name(), err)
	}
	return &models.WriteResult{Acknowledged: true, Deleted: res.DeletedCount}, nil
}

func (s store) findOne(ctx context.Context, filter interface{}, dest interface{}) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if err := s.coll.FindOne(ctx, filter).Decode(dest); err != nil {
		if err == mongo.ErrNoDocuments {
			return err
		}
		return fmt.Errorf("find one in %s: %w", s.coll.Name(), err)
	}
	return nil
}

func (s store) find(ctx context.Context, filter interface{}, dest interface{}) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return fmt.Errorf("find in %s: %w", s.coll.Name(), err)
	}
	if err := cursor.All(ctx, dest); err != nil {
		return fmt.Errorf("decode %s: %w", s.coll.Name(), err)
	}
	return nil
}

func (s store) estimatedCount(ctx context.Context) (int64, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	n, err := s.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.coll.Name(), err)
	}
	return n, nil
}

func insertResult(res *mongo.InsertOneResult) *models.WriteResult {
	out := &models.WriteResult{Acknowledged: true}
	if res != nil {
		out.InsertedID = idString(res.InsertedID)
	}
	return out
}

func updateResult(res *mongo.UpdateResult) *models.WriteResult {
	out := &models.WriteResult{Acknowledged: true}
	if res == nil {
		return out
	}
	out.Matched = res.MatchedCount
	out.Modified = res.ModifiedCount
	if res.UpsertedID != nil {
		out.UpsertedID = idString(res.UpsertedID)
	}
	return out
}

func idString(id interface{}) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// ensureID assigns a fresh ObjectID to documents inserted without one.
func ensureID(id *primitive.ObjectID) {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
}
