package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/noah-isme/studyhive-api/internal/models"
)

func newMockDeployment(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestUserRepositoryFindByEmail(t *testing.T) {
	mt := newMockDeployment(t)

	mt.Run("found", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, time.Second)
		id := primitive.NewObjectID()
		ns := mt.DB.Name() + "." + CollectionUsers
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "admin@studyhive.io"},
			{Key: "role", Value: "Admin"},
		}))

		user, err := repo.FindByEmail(context.Background(), "admin@studyhive.io")
		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, models.RoleAdmin, user.Role)
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, time.Second)
		ns := mt.DB.Name() + "." + CollectionUsers
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.FindByEmail(context.Background(), "ghost@studyhive.io")
		assert.ErrorIs(mt, err, mongo.ErrNoDocuments)
	})
}

func TestUserRepositoryInsertAssignsID(t *testing.T) {
	mt := newMockDeployment(t)

	mt.Run("insert", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &models.User{Email: "new@studyhive.io"}
		res, err := repo.Insert(context.Background(), user)
		require.NoError(mt, err)
		assert.False(mt, user.ID.IsZero())
		assert.Equal(mt, user.ID.Hex(), res.InsertedID)
		assert.True(mt, res.Acknowledged)
	})

	mt.Run("duplicate key", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		_, err := repo.Insert(context.Background(), &models.User{Email: "dup@studyhive.io"})
		require.Error(mt, err)
		assert.True(mt, mongo.IsDuplicateKeyError(err))
	})
}

func TestUserRepositoryListAndCount(t *testing.T) {
	mt := newMockDeployment(t)

	mt.Run("list", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, time.Second)
		ns := mt.DB.Name() + "." + CollectionUsers
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "email", Value: "a@studyhive.io"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "email", Value: "b@studyhive.io"}},
		))

		users, err := repo.List(context.Background(), models.UserFilter{Search: "studyhive"})
		require.NoError(mt, err)
		assert.Len(mt, users, 2)
	})

	mt.Run("empty list is not nil", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, time.Second)
		ns := mt.DB.Name() + "." + CollectionUsers
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		users, err := repo.List(context.Background(), models.UserFilter{})
		require.NoError(mt, err)
		assert.NotNil(mt, users)
		assert.Empty(mt, users)
	})

	mt.Run("estimated count", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int64(42)}))

		n, err := repo.EstimatedCount(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(42), n)
	})
}

func TestUserRepositorySetRoleAndDelete(t *testing.T) {
	mt := newMockDeployment(t)

	mt.Run("set role", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		res, err := repo.SetRole(context.Background(), primitive.NewObjectID(), models.RoleAdmin)
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), res.Matched)
		assert.Equal(mt, int64(1), res.Modified)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		res, err := repo.Delete(context.Background(), primitive.NewObjectID())
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), res.Deleted)
	})
}
