package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/studyhive-api/internal/models"
	"github.com/noah-isme/studyhive-api/pkg/payment"
)

var errStoreDown = errors.New("store unavailable")

func caller(email string) *models.JWTClaims {
	return &models.JWTClaims{Email: email, Name: strings.Split(email, "@")[0]}
}

type fakeUserRepo struct {
	users     map[string]*models.User
	inserts   int
	findErr   error
	statusErr error
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*models.User{}}
	for i := range users {
		u := users[i]
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		repo.users[u.Email] = &u
	}
	return repo
}

func (m *fakeUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		if filter.Search != "" && !strings.Contains(strings.ToLower(u.Email+" "+u.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (m *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if u, ok := m.users[email]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *fakeUserRepo) Insert(ctx context.Context, user *models.User) (*models.WriteResult, error) {
	m.inserts++
	user.ID = primitive.NewObjectID()
	copy := *user
	m.users[user.Email] = &copy
	return &models.WriteResult{Acknowledged: true, InsertedID: user.ID.Hex()}, nil
}

func (m *fakeUserRepo) byID(id primitive.ObjectID) *models.User {
	for _, u := range m.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (m *fakeUserRepo) SetRole(ctx context.Context, id primitive.ObjectID, role models.UserRole) (*models.WriteResult, error) {
	u := m.byID(id)
	if u == nil {
		return &models.WriteResult{Acknowledged: true}, nil
	}
	u.Role = role
	return &models.WriteResult{Acknowledged: true, Matched: 1, Modified: 1}, nil
}

func (m *fakeUserRepo) SetStatusByEmail(ctx context.Context, email string, role *models.UserRole, status string) (*models.WriteResult, error) {
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	u, ok := m.users[email]
	if !ok {
		return &models.WriteResult{Acknowledged: true}, nil
	}
	u.Status = status
	if role != nil {
		u.Role = *role
	}
	return &models.WriteResult{Acknowledged: true, Matched: 1, Modified: 1}, nil
}

func (m *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.WriteResult, error) {
	u := m.byID(id)
	if u == nil {
		return &models.WriteResult{Acknowledged: true}, nil
	}
	delete(m.users, u.Email)
	return &models.WriteResult{Acknowledged: true, Deleted: 1}, nil
}

func (m *fakeUserRepo) EstimatedCount(ctx context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

type fakeClassRepo struct {
	mu      sync.Mutex
	classes map[primitive.ObjectID]*models.Class
	incErr  error
	lists   int
}

func newFakeClassRepo(classes ...models.Class) *fakeClassRepo {
	repo := &fakeClassRepo{classes: map[primitive.ObjectID]*models.Class{}}
	for i := range classes {
		c := classes[i]
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		repo.classes[c.ID] = &c
	}
	return repo
}

func (m *fakeClassRepo) first() *models.Class {
	for _, c := range m.classes {
		return c
	}
	return nil
}

func (m *fakeClassRepo) Insert(ctx context.Context, class *models.Class) (*models.WriteResult, error) {
	class.ID = primitive.NewObjectID()
	copy := *class
	m.classes[class.ID] = &copy
	return &models.WriteResult{Acknowledged: true, InsertedID: class.ID.Hex()}, nil
}

func (m *fakeClassRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Class, error) {
	if c, ok := m.classes[id]; ok {
		copy := *c
		return &copy, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *fakeClassRepo) List(ctx context.Context, status *models.ClassStatus) ([]models.Class, error) {
	m.lists++
	out := make([]models.Class, 0)
	for _, c := range m.classes {
		if status != nil && c.Status != *status {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (m *fakeClassRepo) ListByTeacher(ctx context.Context, teacherEmail string) ([]models.Class, error) {
	out := make([]models.Class, 0)
	for _, c := range m.classes {
		if c.TeacherEmail == teacherEmail {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *fakeClassRepo) Update(ctx context.Context, id primitive.ObjectID, update models.ClassUpdate, updatedAt time.Time) (*models.WriteResult, error) {
	c, ok := m.classes[id]
	if !ok {
		return &models.WriteResult{Acknowledged: true}, nil
	}
	if update.Title != nil {
		c.Title = *update.Title
	}
	if update.Price != nil {
		c.Price = *update.Price
	}
	if update.Description != nil {
		c.Description = *update.Description
	}
	if update.Image != nil {
		c.Image = *update.Image
	}
	c.UpdatedAt = updatedAt
	return &models.WriteResult{Acknowledged: true, Matched: 1, Modified: 1}, nil
}

func (m *fakeClassRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ClassStatus) (*models.WriteResult, error) {
	c, ok := m.classes[id]
	if !ok {
		return &models.WriteResult{Acknowledged: true}, nil
	}
	c.Status = status
	return &models.WriteResult{Acknowledged: true, Matched: 1, Modified: 1}, nil
}

func (m *fakeClassRepo) IncrementCounter(ctx context.Context, id primitive.ObjectID, field string) (*models.WriteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.incErr != nil {
		return nil, m.incErr
	}
	c, ok := m.classes[id]
	if !ok {
		return &models.WriteResult{Acknowledged: true}, nil
	}
	switch field {
	case models.ClassCounterEnrolment:
		c.Enrolment++
	case models.ClassCounterAssignment:
		c.Assignment++
	}
	return &models.WriteResult{Acknowledged: true, Matched: 1, Modified: 1}, nil
}

func (m *fakeClassRepo) counter(id primitive.ObjectID, field string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if field == models.ClassCounterAssignment {
		return m.classes[id].Assignment
	}
	return m.classes[id].Enrolment
}

func (m *fakeClassRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.WriteResult, error) {
	if _, ok := m.classes[id]; !ok {
		return &models.WriteResult{Acknowledged: true}, nil
	}
	delete(m.classes, id)
	return &models.WriteResult{Acknowledged: true, Deleted: 1}, nil
}

func (m *fakeClassRepo) EstimatedCount(ctx context.Context) (int64, error) {
	return int64(len(m.classes)), nil
}

type fakeApplicationRepo struct {
	apps    map[primitive.ObjectID]*models.TeacherApplication
	inserts int
}

func newFakeApplicationRepo(apps ...models.TeacherApplication) *fakeApplicationRepo {
	repo := &fakeApplicationRepo{apps: map[primitive.ObjectID]*models.TeacherApplication{}}
	for i := range apps {
		a := apps[i]
		if a.ID.IsZero() {
			a.ID = primitive.NewObjectID()
		}
		repo.apps[a.ID] = &a
	}
	return repo
}

func (m *fakeApplicationRepo) Insert(ctx context.Context, app *models.TeacherApplication) (*models.WriteResult, error) {
	m.inserts++
	app.ID = primitive.NewObjectID()
	copy := *app
	m.apps[app.ID] = &copy
	return &models.WriteResult{Acknowledged: true, InsertedID: app.ID.Hex()}, nil
}

func (m *fakeApplicationRepo) FindByEmail(ctx context.Context, email string) (*models.TeacherApplication, error) {
	for _, a := range m.apps {
		if a.Email == email {
			copy := *a
			return &copy, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *fakeApplicationRepo) List(ctx context.Context) ([]models.TeacherApplication, error) {
	out := make([]models.TeacherApplication, 0)
	for _, a := range m.apps {
		out = append(out, *a)
	}
	return out, nil
}

func (m *fakeApplicationRepo) SetDecision(ctx context.Context, id primitive.ObjectID, role *models.UserRole, status models.ApplicationStatus) (*models.WriteResult, error) {
	a, ok := m.apps[id]
	if !ok {
		return &models.WriteResult{Acknowledged: true}, nil
	}
	a.Status = status
	if role != nil {
		a.Role = *role
	}
	return &models.WriteResult{Acknowledged: true, Matched: 1, Modified: 1}, nil
}

type fakeEnrollmentRepo struct {
	enrollments []models.Enrollment
	insertErr   error
}

func (m *fakeEnrollmentRepo) Insert(ctx context.Context, enrollment *models.Enrollment) (*models.WriteResult, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	enrollment.ID = primitive.NewObjectID()
	m.enrollments = append(m.enrollments, *enrollment)
	return &models.WriteResult{Acknowledged: true, InsertedID: enrollment.ID.Hex()}, nil
}

func (m *fakeEnrollmentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.ID == id {
			copy := e
			return &copy, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *fakeEnrollmentRepo) List(ctx context.Context) ([]models.Enrollment, error) {
	return append([]models.Enrollment{}, m.enrollments...), nil
}

func (m *fakeEnrollmentRepo) ListByEmail(ctx context.Context, email string) ([]models.Enrollment, error) {
	out := make([]models.Enrollment, 0)
	for _, e := range m.enrollments {
		if e.Email == email {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *fakeEnrollmentRepo) ListByClass(ctx context.Context, classID string) ([]models.Enrollment, error) {
	out := make([]models.Enrollment, 0)
	for _, e := range m.enrollments {
		if e.ClassID == classID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *fakeEnrollmentRepo) EstimatedCount(ctx context.Context) (int64, error) {
	return int64(len(m.enrollments)), nil
}

type fakeAssignmentRepo struct {
	assignments map[primitive.ObjectID]*models.Assignment
	statusErr   error
}

func newFakeAssignmentRepo(assignments ...models.Assignment) *fakeAssignmentRepo {
	repo := &fakeAssignmentRepo{assignments: map[primitive.ObjectID]*models.Assignment{}}
	for i := range assignments {
		a := assignments[i]
		if a.ID.IsZero() {
			a.ID = primitive.NewObjectID()
		}
		repo.assignments[a.ID] = &a
	}
	return repo
}

func (m *fakeAssignmentRepo) Insert(ctx context.Context, assignment *models.Assignment) (*models.WriteResult, error) {
	assignment.ID = primitive.NewObjectID()
	copy := *assignment
	m.assignments[assignment.ID] = &copy
	return &models.WriteResult{Acknowledged: true, InsertedID: assignment.ID.Hex()}, nil
}

func (m *fakeAssignmentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		copy := *a
		return &copy, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *fakeAssignmentRepo) ListByClass(ctx context.Context, classID string) ([]models.Assignment, error) {
	out := make([]models.Assignment, 0)
	for _, a := range m.assignments {
		if a.ClassID == classID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *fakeAssignmentRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status models.AssignmentStatus) (*models.WriteResult, error) {
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	a, ok := m.assignments[id]
	if !ok {
		return &models.WriteResult{Acknowledged: true}, nil
	}
	a.Status = status
	return &models.WriteResult{Acknowledged: true, Matched: 1, Modified: 1}, nil
}

type fakeSubmissionRepo struct {
	submissions []models.AssignmentSubmission
}

func (m *fakeSubmissionRepo) Insert(ctx context.Context, submission *models.AssignmentSubmission) (*models.WriteResult, error) {
	submission.ID = primitive.NewObjectID()
	m.submissions = append(m.submissions, *submission)
	return &models.WriteResult{Acknowledged: true, InsertedID: submission.ID.Hex()}, nil
}

func (m *fakeSubmissionRepo) ListByAssignment(ctx context.Context, assignmentID string) ([]models.AssignmentSubmission, error) {
	out := make([]models.AssignmentSubmission, 0)
	for _, s := range m.submissions {
		if s.AssignmentID == assignmentID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeReviewRepo struct {
	reviews []models.Review
}

func (m *fakeReviewRepo) Insert(ctx context.Context, review *models.Review) (*models.WriteResult, error) {
	review.ID = primitive.NewObjectID()
	m.reviews = append(m.reviews, *review)
	return &models.WriteResult{Acknowledged: true, InsertedID: review.ID.Hex()}, nil
}

func (m *fakeReviewRepo) List(ctx context.Context) ([]models.Review, error) {
	return append([]models.Review{}, m.reviews...), nil
}

func (m *fakeReviewRepo) ListByClass(ctx context.Context, classID string) ([]models.Review, error) {
	out := make([]models.Review, 0)
	for _, r := range m.reviews {
		if r.ClassID == classID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	mu   sync.Mutex
	logs []*models.AuditLog
}

func (m *fakeAuditRepo) Create(ctx context.Context, log *models.AuditLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *fakeAuditRepo) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.logs))
	for _, l := range m.logs {
		out = append(out, l.Action)
	}
	return out
}

type fakeRepairQueue struct {
	tasks []RepairTask
	err   error
}

func (m *fakeRepairQueue) Enqueue(task RepairTask) error {
	if m.err != nil {
		return m.err
	}
	m.tasks = append(m.tasks, task)
	return nil
}

// fakeTransactor stages nothing; it reports the error so callers see a rolled back write.
type fakeTransactor struct {
	calls int
}

func (m *fakeTransactor) Enabled() bool { return true }

func (m *fakeTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeProvider struct {
	last payment.IntentRequest
	err  error
}

func (m *fakeProvider) Name() string { return "fake" }

func (m *fakeProvider) CreateIntent(ctx context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	return &payment.Intent{Provider: "fake", ClientSecret: "pi_secret_" + req.OrderID, OrderID: req.OrderID}, nil
}
