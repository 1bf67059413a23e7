package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyhive-api/internal/handler"
	"github.com/noah-isme/studyhive-api/internal/middleware"
	"github.com/noah-isme/studyhive-api/internal/models"
	"github.com/noah-isme/studyhive-api/internal/service"
)

// Route binds one method and path to its access policy and handler.
type Route struct {
	Method  string
	Path    string
	Policy  middleware.Policy
	Handler gin.HandlerFunc

	// AuditAction, when set, journals successful calls under AuditResource.
	AuditAction   string
	AuditResource string
}

// Handlers groups the HTTP handlers referenced by the route table.
type Handlers struct {
	System       *handler.SystemHandler
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Applications *handler.TeacherApplicationHandler
	Reviews      *handler.ReviewHandler
	Classes      *handler.ClassHandler
	Assignments  *handler.AssignmentHandler
	Enrollments  *handler.EnrollmentHandler
	Payments     *handler.PaymentHandler
	Stats        *handler.StatsHandler
	Exports      *handler.ExportHandler
}

// Routes returns the full route table.
func Routes(h Handlers) []Route {
	public := middleware.Public()
	authenticated := middleware.Authenticated()
	admin := middleware.AdminOnly()
	teacher := middleware.TeacherOnly()

	return []Route{
		{Method: http.MethodGet, Path: "/", Policy: public, Handler: h.System.Root},
		{Method: http.MethodGet, Path: "/health", Policy: public, Handler: h.System.Health},
		{Method: http.MethodGet, Path: "/ready", Policy: public, Handler: h.System.Ready},
		{Method: http.MethodGet, Path: "/metrics", Policy: public, Handler: h.System.Prometheus},

		{Method: http.MethodPost, Path: "/jwt", Policy: public, Handler: h.Auth.Token},

		{Method: http.MethodGet, Path: "/users", Policy: authenticated, Handler: h.Users.List},
		{Method: http.MethodGet, Path: "/users-admin", Policy: admin, Handler: h.Users.Search},
		{Method: http.MethodGet, Path: "/user/:email", Policy: authenticated, Handler: h.Users.GetByEmail},
		{Method: http.MethodPut, Path: "/user", Policy: public, Handler: h.Users.Save},
		{Method: http.MethodPatch, Path: "/users/admin/:id", Policy: admin, Handler: h.Users.PromoteToAdmin,
			AuditAction: models.AuditActionUserPromote, AuditResource: "user"},
		{Method: http.MethodDelete, Path: "/users/:id", Policy: admin, Handler: h.Users.Delete,
			AuditAction: models.AuditActionUserDelete, AuditResource: "user"},

		{Method: http.MethodPost, Path: "/apply-teach", Policy: authenticated, Handler: h.Applications.Apply},
		{Method: http.MethodPut, Path: "/apply-teach", Policy: authenticated, Handler: h.Applications.Save},
		{Method: http.MethodGet, Path: "/apply-teach", Policy: admin, Handler: h.Applications.List},
		{Method: http.MethodPatch, Path: "/apply-teach/:id/:teacherEmail", Policy: admin, Handler: h.Applications.Approve,
			AuditAction: models.AuditActionApplicationAccept, AuditResource: "teacher_application"},
		{Method: http.MethodPatch, Path: "/reject-teach/:id/:teacherEmail", Policy: admin, Handler: h.Applications.Reject,
			AuditAction: models.AuditActionApplicationReject, AuditResource: "teacher_application"},

		{Method: http.MethodGet, Path: "/reviews", Policy: public, Handler: h.Reviews.List},
		{Method: http.MethodPost, Path: "/review", Policy: authenticated, Handler: h.Reviews.Create},
		{Method: http.MethodGet, Path: "/review/:classId", Policy: admin, Handler: h.Reviews.ListByClass},

		{Method: http.MethodPost, Path: "/classes", Policy: teacher, Handler: h.Classes.Create},
		{Method: http.MethodGet, Path: "/all-classes/accepted", Policy: public, Handler: h.Classes.ListAccepted},
		{Method: http.MethodGet, Path: "/all-classes", Policy: admin, Handler: h.Classes.ListAll},
		{Method: http.MethodGet, Path: "/classes/:id", Policy: authenticated, Handler: h.Classes.Get},
		{Method: http.MethodPatch, Path: "/update-classes/:id", Policy: teacher, Handler: h.Classes.Update},
		{Method: http.MethodGet, Path: "/classes-update/:id", Policy: teacher, Handler: h.Classes.Get},
		{Method: http.MethodDelete, Path: "/my-classes/:id", Policy: teacher, Handler: h.Classes.Delete,
			AuditAction: models.AuditActionClassDelete, AuditResource: "class"},
		{Method: http.MethodGet, Path: "/my-classes/:email", Policy: middleware.TeacherOwner("email"), Handler: h.Classes.ListByTeacher},
		{Method: http.MethodGet, Path: "/my-classes/:email/roster/:id", Policy: middleware.TeacherOwner("email"), Handler: h.Exports.Roster},
		{Method: http.MethodPatch, Path: "/classes-accept/:id", Policy: admin, Handler: h.Classes.Accept,
			AuditAction: models.AuditActionClassAccept, AuditResource: "class"},
		{Method: http.MethodPatch, Path: "/classes-reject/:id", Policy: admin, Handler: h.Classes.Reject,
			AuditAction: models.AuditActionClassReject, AuditResource: "class"},

		{Method: http.MethodPut, Path: "/add-assignment/:id", Policy: teacher, Handler: h.Assignments.Create},
		{Method: http.MethodGet, Path: "/assignment/:classId", Policy: public, Handler: h.Assignments.ListByClass},
		{Method: http.MethodGet, Path: "/assignment-submissions/:assignmentId", Policy: teacher, Handler: h.Assignments.Submissions},
		{Method: http.MethodPut, Path: "/submit-assignment/:id", Policy: authenticated, Handler: h.Assignments.Submit},

		{Method: http.MethodPost, Path: "/create-payment-intent", Policy: authenticated, Handler: h.Payments.CreateIntent},
		{Method: http.MethodPut, Path: "/enroll-class/:id", Policy: authenticated, Handler: h.Enrollments.Enroll},
		{Method: http.MethodGet, Path: "/my-enroll-class/:email", Policy: middleware.Owner("email"), Handler: h.Enrollments.ListMine},
		{Method: http.MethodGet, Path: "/enroll-class", Policy: admin, Handler: h.Enrollments.ListAll},
		{Method: http.MethodGet, Path: "/enroll-class/:id", Policy: authenticated, Handler: h.Enrollments.Get},

		{Method: http.MethodGet, Path: "/public-stat", Policy: public, Handler: h.Stats.PublicStats},
	}
}

// Register mounts routes on r. Every route passes the gate before any audit hook or handler.
func Register(r gin.IRoutes, gate *middleware.Gate, audit *service.AuditService, routes []Route) {
	for _, route := range routes {
		chain := []gin.HandlerFunc{gate.Enforce(route.Policy)}
		if route.AuditAction != "" {
			chain = append(chain, middleware.Audit(audit, route.AuditAction, route.AuditResource))
		}
		chain = append(chain, route.Handler)
		r.Handle(route.Method, route.Path, chain...)
	}
}
