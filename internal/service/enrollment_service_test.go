package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/noah-isme/studyhive-api/internal/models"
	appErrors "github.com/noah-isme/studyhive-api/pkg/errors"
)

func TestEnrollIncrementsCounterEachTime(t *testing.T) {
	classID := primitive.NewObjectID()
	classes := newFakeClassRepo(models.Class{ID: classID, Title: "Go", TeacherEmail: "t@studyhive.io", Price: 20})
	repo := &fakeEnrollmentRepo{}
	svc := NewEnrollmentService(repo, classes, nil, nil, nil, nil)

	for i := 0; i < 3; i++ {
		res, partial, err := svc.Enroll(context.Background(), caller("s@studyhive.io"), classID.Hex(), EnrollRequest{TransactionID: "pi_1"})
		require.NoError(t, err)
		assert.False(t, partial)
		assert.NotEmpty(t, res.InsertedID)
	}

	assert.Equal(t, int64(3), classes.counter(classID, models.ClassCounterEnrolment))
	require.Len(t, repo.enrollments, 3)
	first := repo.enrollments[0]
	assert.Equal(t, "s@studyhive.io", first.Email)
	assert.Equal(t, "Go", first.ClassTitle)
	assert.Equal(t, "t@studyhive.io", first.TeacherEmail)
	assert.Equal(t, float64(20), first.Price)
}

func TestEnrollUnknownClass(t *testing.T) {
	repo := &fakeEnrollmentRepo{}
	svc := NewEnrollmentService(repo, newFakeClassRepo(), nil, nil, nil, nil)

	_, _, err := svc.Enroll(context.Background(), caller("s@studyhive.io"), primitive.NewObjectID().Hex(), EnrollRequest{})
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	assert.Empty(t, repo.enrollments)

	_, _, err = svc.Enroll(context.Background(), caller("s@studyhive.io"), "123", EnrollRequest{})
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidID))
}

func TestEnrollPrimaryFailureSkipsCounter(t *testing.T) {
	classID := primitive.NewObjectID()
	classes := newFakeClassRepo(models.Class{ID: classID})
	repo := &fakeEnrollmentRepo{insertErr: errStoreDown}
	svc := NewEnrollmentService(repo, classes, nil, nil, nil, nil)

	_, _, err := svc.Enroll(context.Background(), caller("s@studyhive.io"), classID.Hex(), EnrollRequest{})
	assert.True(t, appErrors.Is(err, appErrors.ErrInternal))
	assert.Zero(t, classes.counter(classID, models.ClassCounterEnrolment))
}

func TestEnrollInTransactionFailsAtomically(t *testing.T) {
	classID := primitive.NewObjectID()
	classes := newFakeClassRepo(models.Class{ID: classID})
	classes.incErr = errStoreDown
	tx := &fakeTransactor{}
	queue := &fakeRepairQueue{}
	coordinator := NewWriteCoordinator(tx, queue, nil, nil, nil)
	svc := NewEnrollmentService(&fakeEnrollmentRepo{}, classes, coordinator, nil, nil, nil)

	_, partial, err := svc.Enroll(context.Background(), caller("s@studyhive.io"), classID.Hex(), EnrollRequest{})
	assert.True(t, appErrors.Is(err, appErrors.ErrInternal))
	assert.False(t, partial)
	assert.Equal(t, 1, tx.calls)
	assert.Empty(t, queue.tasks)
}

func TestEnrollSequentialFollowUpFailureIsPartial(t *testing.T) {
	classID := primitive.NewObjectID()
	classes := newFakeClassRepo(models.Class{ID: classID})
	classes.incErr = errStoreDown
	queue := &fakeRepairQueue{}
	coordinator := NewWriteCoordinator(nil, queue, nil, nil, nil)
	repo := &fakeEnrollmentRepo{}
	svc := NewEnrollmentService(repo, classes, coordinator, nil, nil, nil)

	res, partial, err := svc.Enroll(context.Background(), caller("s@studyhive.io"), classID.Hex(), EnrollRequest{})
	require.NoError(t, err)
	assert.True(t, partial)
	assert.NotEmpty(t, res.InsertedID)
	assert.Len(t, repo.enrollments, 1)
	require.Len(t, queue.tasks, 1)

	classes.incErr = nil
	_, err = queue.tasks[0].Step(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), classes.counter(classID, models.ClassCounterEnrolment))
}

func TestEnrollmentQueries(t *testing.T) {
	classID := primitive.NewObjectID()
	classes := newFakeClassRepo(models.Class{ID: classID})
	repo := &fakeEnrollmentRepo{}
	svc := NewEnrollmentService(repo, classes, nil, nil, nil, nil)

	res, _, err := svc.Enroll(context.Background(), caller("a@studyhive.io"), classID.Hex(), EnrollRequest{})
	require.NoError(t, err)
	_, _, err = svc.Enroll(context.Background(), caller("b@studyhive.io"), classID.Hex(), EnrollRequest{})
	require.NoError(t, err)

	mine, err := svc.ListMine(context.Background(), "a@studyhive.io")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := svc.Get(context.Background(), res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, "a@studyhive.io", got.Email)

	_, err = svc.Get(context.Background(), primitive.NewObjectID().Hex())
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
