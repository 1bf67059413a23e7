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

func TestAssignmentCreateIncrementsClassCounter(t *testing.T) {
	classID := primitive.NewObjectID()
	classes := newFakeClassRepo(models.Class{ID: classID})
	repo := newFakeAssignmentRepo()
	svc := NewAssignmentService(repo, classes, nil, nil, nil, nil)

	for i := 0; i < 2; i++ {
		_, partial, err := svc.Create(context.Background(), caller("t@studyhive.io"), classID.Hex(), CreateAssignmentRequest{Title: "Homework"})
		require.NoError(t, err)
		assert.False(t, partial)
	}

	assert.Equal(t, int64(2), classes.counter(classID, models.ClassCounterAssignment))
	list, err := svc.ListByClass(context.Background(), classID.Hex())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.AssignmentPending, list[0].Status)
	assert.Equal(t, "t@studyhive.io", list[0].TeacherEmail)
}

func TestAssignmentCreateInvalidatesAcceptedClasses(t *testing.T) {
	classID := primitive.NewObjectID()
	store := newMemoryCache()
	store.items[CacheKeyAcceptedClasses] = []byte(`[]`)
	cache := NewCacheService(store, nil, time.Minute, nil, true)
	svc := NewAssignmentService(newFakeAssignmentRepo(), newFakeClassRepo(models.Class{ID: classID}), nil, cache, nil, nil)

	_, _, err := svc.Create(context.Background(), caller("t@studyhive.io"), classID.Hex(), CreateAssignmentRequest{Title: "Quiz"})
	require.NoError(t, err)
	assert.NotContains(t, store.items, CacheKeyAcceptedClasses)
}

func TestAssignmentCreateRequiresTitleAndClass(t *testing.T) {
	classID := primitive.NewObjectID()
	svc := NewAssignmentService(newFakeAssignmentRepo(), newFakeClassRepo(models.Class{ID: classID}), nil, nil, nil, nil)

	_, _, err := svc.Create(context.Background(), caller("t@studyhive.io"), classID.Hex(), CreateAssignmentRequest{})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, _, err = svc.Create(context.Background(), caller("t@studyhive.io"), primitive.NewObjectID().Hex(), CreateAssignmentRequest{Title: "x"})
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestSubmitMarksAssignmentSubmitted(t *testing.T) {
	assignmentID := primitive.NewObjectID()
	assignments := newFakeAssignmentRepo(models.Assignment{ID: assignmentID, ClassID: "c1", Status: models.AssignmentPending})
	repo := &fakeSubmissionRepo{}
	svc := NewSubmissionService(repo, assignments, nil, nil, nil)

	res, partial, err := svc.Submit(context.Background(), caller("s@studyhive.io"), assignmentID.Hex(), SubmitAssignmentRequest{Content: "answer"})
	require.NoError(t, err)
	assert.False(t, partial)
	assert.NotEmpty(t, res.InsertedID)
	assert.Equal(t, models.AssignmentSubmitted, assignments.assignments[assignmentID].Status)

	subs, err := svc.ListByAssignment(context.Background(), assignmentID.Hex())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "c1", subs[0].ClassID)
	assert.Equal(t, "s@studyhive.io", subs[0].Email)
}

func TestSubmitPartialWhenStatusUpdateFails(t *testing.T) {
	assignmentID := primitive.NewObjectID()
	assignments := newFakeAssignmentRepo(models.Assignment{ID: assignmentID, Status: models.AssignmentPending})
	assignments.statusErr = errStoreDown
	audit := &fakeAuditRepo{}
	coordinator := NewWriteCoordinator(nil, &fakeRepairQueue{}, NewAuditService(audit, nil), NewMetricsService(), nil)
	svc := NewSubmissionService(&fakeSubmissionRepo{}, assignments, coordinator, nil, nil)

	_, partial, err := svc.Submit(context.Background(), caller("s@studyhive.io"), assignmentID.Hex(), SubmitAssignmentRequest{Content: "answer"})
	require.NoError(t, err)
	assert.True(t, partial)
	assert.Equal(t, []string{models.AuditActionPartialWrite}, audit.actions())
}

func TestSubmitUnknownAssignment(t *testing.T) {
	repo := &fakeSubmissionRepo{}
	svc := NewSubmissionService(repo, newFakeAssignmentRepo(), nil, nil, nil)

	_, _, err := svc.Submit(context.Background(), caller("s@studyhive.io"), primitive.NewObjectID().Hex(), SubmitAssignmentRequest{Content: "x"})
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	assert.Empty(t, repo.submissions)
}
