package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyhive-api/internal/models"
	"github.com/noah-isme/studyhive-api/internal/service"
)

// Audit records successful admin mutations in the journal.
func Audit(auditSvc *service.AuditService, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if auditSvc == nil || c.Writer.Status() >= 400 {
			return
		}

		var actor string
		if claims, ok := c.Get(ContextUserKey); ok {
			if typed, ok := claims.(*models.JWTClaims); ok {
				actor = typed.Email
			}
		}

		payload := map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
		}
		if email := c.Param("teacherEmail"); email != "" {
			payload["teacher_email"] = email
		}

		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 3*time.Second)
		defer cancel()
		_ = auditSvc.Record(ctx, service.AuditEntry{
			Actor:      actor,
			Action:     action,
			Resource:   resource,
			ResourceID: c.Param("id"),
			Payload:    payload,
			IPAddress:  c.ClientIP(),
			UserAgent:  c.GetHeader("User-Agent"),
		})
	}
}
