package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studyhive-api/internal/models"
)

func TestAuditServiceRecord(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(repo, nil)

	err := svc.Record(context.Background(), AuditEntry{
		Actor:      "admin@studyhive.io",
		Action:     models.AuditActionClassAccept,
		Resource:   "classes",
		ResourceID: "c1",
		Payload:    map[string]string{"status": "Accepted"},
	})
	require.NoError(t, err)
	require.Len(t, repo.logs, 1)

	log := repo.logs[0]
	assert.NotEmpty(t, log.ID)
	require.NotNil(t, log.ActorEmail)
	assert.Equal(t, "admin@studyhive.io", *log.ActorEmail)
	require.NotNil(t, log.ResourceID)
	assert.Equal(t, "c1", *log.ResourceID)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(log.Payload, &payload))
	assert.Equal(t, "Accepted", payload["status"])
}

func TestAuditServiceWithoutJournal(t *testing.T) {
	assert.NoError(t, NewAuditService(nil, nil).Record(context.Background(), AuditEntry{Action: "X"}))

	var svc *AuditService
	assert.NoError(t, svc.Record(context.Background(), AuditEntry{Action: "X"}))
}
