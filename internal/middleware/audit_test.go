package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studyhive-api/internal/models"
	"github.com/noah-isme/studyhive-api/internal/service"
)

type recordingAuditRepo struct {
	entries []*models.AuditLog
}

func (r *recordingAuditRepo) Create(_ context.Context, entry *models.AuditLog) error {
	r.entries = append(r.entries, entry)
	return nil
}

func newAuditEngine(repo *recordingAuditRepo, status int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/users/:id", func(c *gin.Context) {
		c.Set(ContextUserKey, &models.JWTClaims{Email: "admin@x.io"})
		c.Next()
	}, Audit(service.NewAuditService(repo, nil), models.AuditActionUserDelete, "user"), func(c *gin.Context) {
		c.Status(status)
	})
	return r
}

func TestAuditRecordsSuccessfulMutation(t *testing.T) {
	repo := &recordingAuditRepo{}
	r := newAuditEngine(repo, http.StatusOK)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/users/65f0c0ffee0000000000abcd", nil))

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, models.AuditActionUserDelete, entry.Action)
	assert.Equal(t, "user", entry.Resource)
	require.NotNil(t, entry.ActorEmail)
	assert.Equal(t, "admin@x.io", *entry.ActorEmail)
	require.NotNil(t, entry.ResourceID)
	assert.Equal(t, "65f0c0ffee0000000000abcd", *entry.ResourceID)
}

func TestAuditSkipsFailedRequests(t *testing.T) {
	repo := &recordingAuditRepo{}
	r := newAuditEngine(repo, http.StatusNotFound)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/users/65f0c0ffee0000000000abcd", nil))

	assert.Empty(t, repo.entries)
}
