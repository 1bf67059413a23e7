package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/noah-isme/studyhive-api/internal/models"
	appErrors "github.com/noah-isme/studyhive-api/pkg/errors"
)

func TestUserServiceSaveIsIdempotent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil, nil, nil)

	first, err := svc.Save(context.Background(), SaveUserRequest{Name: "Ana", Email: "ana@studyhive.io"})
	require.NoError(t, err)
	assert.True(t, first.Created())
	assert.NotEmpty(t, first.Result.InsertedID)

	second, err := svc.Save(context.Background(), SaveUserRequest{Name: "Ana Changed", Email: "ana@studyhive.io"})
	require.NoError(t, err)
	assert.False(t, second.Created())
	stored, ok := second.Existing.(*models.User)
	require.True(t, ok)
	assert.Equal(t, "Ana", stored.Name)
	assert.Equal(t, 1, repo.inserts)
}

func TestUserServiceSaveNeverAcceptsRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil, nil, nil)

	_, err := svc.Save(context.Background(), SaveUserRequest{Email: "eve@studyhive.io"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleNone, repo.users["eve@studyhive.io"].Role)
}

func TestUserServiceSaveValidatesEmail(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), nil, nil, nil)
	_, err := svc.Save(context.Background(), SaveUserRequest{Email: "nope"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestUserServiceSaveStoreFailure(t *testing.T) {
	repo := newFakeUserRepo()
	repo.findErr = errStoreDown
	svc := NewUserService(repo, nil, nil, nil)

	_, err := svc.Save(context.Background(), SaveUserRequest{Email: "ana@studyhive.io"})
	assert.True(t, appErrors.Is(err, appErrors.ErrInternal))
	assert.Equal(t, 0, repo.inserts)
}

func TestUserServiceGetByEmailNotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), nil, nil, nil)
	_, err := svc.GetByEmail(context.Background(), "ghost@studyhive.io")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestUserServicePromoteToAdmin(t *testing.T) {
	id := primitive.NewObjectID()
	repo := newFakeUserRepo(models.User{ID: id, Email: "t@studyhive.io"})
	svc := NewUserService(repo, nil, nil, nil)

	res, err := svc.PromoteToAdmin(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Modified)
	assert.Equal(t, models.RoleAdmin, repo.users["t@studyhive.io"].Role)

	_, err = svc.PromoteToAdmin(context.Background(), "not-an-id")
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidID))

	_, err = svc.PromoteToAdmin(context.Background(), primitive.NewObjectID().Hex())
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestUserServiceDeleteAndSearch(t *testing.T) {
	id := primitive.NewObjectID()
	repo := newFakeUserRepo(
		models.User{ID: id, Email: "drop@studyhive.io", Name: "Drop"},
		models.User{Email: "keep@studyhive.io", Name: "Keeper"},
	)
	svc := NewUserService(repo, nil, nil, nil)

	found, err := svc.List(context.Background(), "KEEP")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "keep@studyhive.io", found[0].Email)

	res, err := svc.Delete(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Deleted)
	_, ok := repo.users["drop@studyhive.io"]
	assert.False(t, ok)
}

func TestUserServiceWritesInvalidatePublicStats(t *testing.T) {
	id := primitive.NewObjectID()
	repo := newFakeUserRepo(models.User{ID: id, Email: "old@studyhive.io"})
	store := newMemoryCache()
	svc := NewUserService(repo, NewCacheService(store, nil, time.Minute, nil, true), nil, nil)

	store.items[CacheKeyPublicStats] = []byte(`{"users":1}`)
	_, err := svc.Save(context.Background(), SaveUserRequest{Email: "new@studyhive.io"})
	require.NoError(t, err)
	assert.NotContains(t, store.items, CacheKeyPublicStats)

	store.items[CacheKeyPublicStats] = []byte(`{"users":2}`)
	_, err = svc.Save(context.Background(), SaveUserRequest{Email: "new@studyhive.io"})
	require.NoError(t, err)
	assert.Contains(t, store.items, CacheKeyPublicStats)

	_, err = svc.Delete(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.NotContains(t, store.items, CacheKeyPublicStats)
}
