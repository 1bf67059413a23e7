package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/studyhive-api/internal/models"
	appErrors "github.com/noah-isme/studyhive-api/pkg/errors"
	"github.com/noah-isme/studyhive-api/pkg/logger"
	"github.com/noah-isme/studyhive-api/pkg/response"
)

// Context keys set by the gate.
const (
	ContextUserKey    = "currentUser"
	ContextAccountKey = "currentAccount"
)

// Policy declares what a route requires from the caller.
type Policy struct {
	Authenticated bool
	Roles         []models.UserRole
	OwnerParam    string
}

// Public allows anonymous access.
func Public() Policy { return Policy{} }

// Authenticated requires a valid token.
func Authenticated() Policy { return Policy{Authenticated: true} }

// AdminOnly requires the Admin role.
func AdminOnly() Policy {
	return Policy{Authenticated: true, Roles: []models.UserRole{models.RoleAdmin}}
}

// TeacherOnly requires the Teacher role.
func TeacherOnly() Policy {
	return Policy{Authenticated: true, Roles: []models.UserRole{models.RoleTeacher}}
}

// TeacherOwner requires the Teacher role and param to equal the token email.
func TeacherOwner(param string) Policy {
	return Policy{Authenticated: true, Roles: []models.UserRole{models.RoleTeacher}, OwnerParam: param}
}

// Owner requires param to equal the token email.
func Owner(param string) Policy {
	return Policy{Authenticated: true, OwnerParam: param}
}

// IsPublic reports whether the policy admits anonymous callers.
func (p Policy) IsPublic() bool {
	return !p.Authenticated && len(p.Roles) == 0 && p.OwnerParam == ""
}

// String renders the policy for logs and docs.
func (p Policy) String() string {
	if p.IsPublic() {
		return "public"
	}
	parts := []string{"authenticated"}
	for _, r := range p.Roles {
		parts = append(parts, "role="+string(r))
	}
	if p.OwnerParam != "" {
		parts = append(parts, "owner="+p.OwnerParam)
	}
	return strings.Join(parts, ",")
}

// TokenValidator verifies bearer tokens.
type TokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// AccountLookup resolves the stored account of a verified email.
type AccountLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Gate evaluates route policies. Every denial aborts the chain.
type Gate struct {
	tokens   TokenValidator
	accounts AccountLookup
	logger   *zap.Logger
}

// NewGate constructs a gate.
func NewGate(tokens TokenValidator, accounts AccountLookup, log *zap.Logger) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{tokens: tokens, accounts: accounts, logger: log}
}

// Enforce returns the middleware for p.
func (g *Gate) Enforce(p Policy) gin.HandlerFunc {
	if p.IsPublic() {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		claims, err := g.authenticate(c)
		if err != nil {
			response.Abort(c, err)
			return
		}
		c.Set(ContextUserKey, claims)
		c.Set(logger.CallerKey, claims.Email)

		if p.OwnerParam != "" && c.Param(p.OwnerParam) != claims.Email {
			response.Abort(c, appErrors.Clone(appErrors.ErrForbidden, "path identity does not match token"))
			return
		}

		if len(p.Roles) > 0 {
			account, err := g.accounts.GetByEmail(c.Request.Context(), claims.Email)
			if err != nil {
				if appErrors.Is(err, appErrors.ErrNotFound) {
					response.Abort(c, appErrors.Clone(appErrors.ErrForbidden, "account not found"))
					return
				}
				g.logger.Error("role lookup failed", zap.String("email", claims.Email), zap.Error(err))
				response.Abort(c, appErrors.Clone(appErrors.ErrInternal, "failed to resolve role"))
				return
			}
			if !hasAnyRole(account, p.Roles) {
				response.Abort(c, appErrors.Clone(appErrors.ErrForbidden, "insufficient role"))
				return
			}
			c.Set(ContextAccountKey, account)
		}

		c.Next()
	}
}

func (g *Gate) authenticate(c *gin.Context) (*models.JWTClaims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header")
	}
	claims, err := g.tokens.ValidateToken(parts[1])
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func hasAnyRole(user *models.User, roles []models.UserRole) bool {
	for _, r := range roles {
		if user.HasRole(r) {
			return true
		}
	}
	return false
}
