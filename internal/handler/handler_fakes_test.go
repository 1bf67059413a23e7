package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studyhive-api/internal/middleware"
	"github.com/noah-isme/studyhive-api/internal/models"
	"github.com/noah-isme/studyhive-api/internal/service"
)

type envelope struct {
	Success bool                   `json:"success"`
	Data    json.RawMessage        `json:"data"`
	Error   *struct{ Code string } `json:"error"`
	Meta    map[string]interface{} `json:"meta"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func newContext(rec *httptest.ResponseRecorder, email string, params ...gin.Param) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(rec)
	if email != "" {
		c.Set(middleware.ContextUserKey, &models.JWTClaims{Email: email})
	}
	c.Params = params
	return c
}

type userServiceMock struct {
	users      []models.User
	lastSearch string
	saveResp   *service.UpsertOutcome
	saveErr    error
	writeResp  *models.WriteResult
	writeErr   error
	getErr     error
}

func (m *userServiceMock) List(_ context.Context, search string) ([]models.User, error) {
	m.lastSearch = search
	return m.users, nil
}

func (m *userServiceMock) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return &models.User{Email: email}, nil
}

func (m *userServiceMock) Save(context.Context, service.SaveUserRequest) (*service.UpsertOutcome, error) {
	return m.saveResp, m.saveErr
}

func (m *userServiceMock) PromoteToAdmin(context.Context, string) (*models.WriteResult, error) {
	return m.writeResp, m.writeErr
}

func (m *userServiceMock) Delete(context.Context, string) (*models.WriteResult, error) {
	return m.writeResp, m.writeErr
}

type applicationServiceMock struct {
	decision *models.ApplicationDecision
	partial  bool
	err      error
	actor    string
	id       string
	email    string
}

func (m *applicationServiceMock) Apply(context.Context, *models.JWTClaims, service.ApplyTeachRequest) (*models.WriteResult, error) {
	return &models.WriteResult{Acknowledged: true, InsertedID: "app-1"}, m.err
}

func (m *applicationServiceMock) Save(context.Context, *models.JWTClaims, service.ApplyTeachRequest) (*service.UpsertOutcome, error) {
	return &service.UpsertOutcome{Existing: models.TeacherApplication{Email: "t@x.io"}}, m.err
}

func (m *applicationServiceMock) List(context.Context) ([]models.TeacherApplication, error) {
	return nil, m.err
}

func (m *applicationServiceMock) Approve(_ context.Context, actor, id, email string) (*models.ApplicationDecision, bool, error) {
	m.actor, m.id, m.email = actor, id, email
	return m.decision, m.partial, m.err
}

func (m *applicationServiceMock) Reject(_ context.Context, actor, id, email string) (*models.ApplicationDecision, bool, error) {
	m.actor, m.id, m.email = actor, id, email
	return m.decision, m.partial, m.err
}

type enrollmentServiceMock struct {
	partial   bool
	err       error
	lastClass string
	lastReq   service.EnrollRequest
	called    bool
}

func (m *enrollmentServiceMock) Enroll(_ context.Context, _ *models.JWTClaims, classID string, req service.EnrollRequest) (*models.WriteResult, bool, error) {
	m.called = true
	m.lastClass = classID
	m.lastReq = req
	if m.err != nil {
		return nil, false, m.err
	}
	return &models.WriteResult{Acknowledged: true, InsertedID: "enr-1"}, m.partial, nil
}

func (m *enrollmentServiceMock) ListMine(context.Context, string) ([]models.Enrollment, error) {
	return []models.Enrollment{}, m.err
}

func (m *enrollmentServiceMock) ListAll(context.Context) ([]models.Enrollment, error) {
	return []models.Enrollment{}, m.err
}

func (m *enrollmentServiceMock) Get(context.Context, string) (*models.Enrollment, error) {
	return &models.Enrollment{}, m.err
}

type rosterMock struct {
	file   *service.ExportFile
	err    error
	format string
	email  string
}

func (m *rosterMock) Roster(_ context.Context, email, _ string, format string) (*service.ExportFile, error) {
	m.email = email
	m.format = format
	return m.file, m.err
}
