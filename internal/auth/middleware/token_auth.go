package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/liminal-studio/liminal-backend/internal/api/http/respond"
	"github.com/liminal-studio/liminal-backend/internal/apperr"
	"github.com/liminal-studio/liminal-backend/internal/auth"
	"github.com/liminal-studio/liminal-backend/internal/auth/token"
)

const DefaultTokenHeader = "Authorization"

// Verifier turns a raw token into an identity.
type Verifier interface {
	Verify(raw string) (*token.Identity, error)
}

// RoleChecker reports whether the stored user for email holds the admin role.
type RoleChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// VerifyToken validates the raw token carried in header and stores the
// identity in context.
func VerifyToken(v Verifier, header string) gin.HandlerFunc {
	if header == "" {
		header = DefaultTokenHeader
	}
	return func(c *gin.Context) {
		raw := extractToken(c, header)
		if raw == "" {
			respond.Abort(c, apperr.Unauthorized("Unauthorize Access", nil))
			return
		}

		id, err := v.Verify(raw)
		if err != nil {
			respond.Abort(c, apperr.Unauthorized("Unauthorize Access", err))
			return
		}

		auth.SetIdentity(c, id)
		c.Next()
	}
}

// RequireSelf rejects requests whose path parameter differs from the token
// email. Must run after VerifyToken.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := auth.UserEmail(c)
		if email == "" || c.Param(param) != email {
			respond.Abort(c, apperr.Forbidden("Forbidden Access", nil))
			return
		}
		c.Next()
	}
}

// RequireAdmin looks up the stored role of the token email. Must run after
// VerifyToken.
func RequireAdmin(rc RoleChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := auth.UserEmail(c)
		if email == "" {
			respond.Abort(c, apperr.Forbidden("Forbidden Access", nil))
			return
		}

		admin, err := rc.IsAdmin(c.Request.Context(), email)
		if err != nil {
			respond.Abort(c, apperr.Internal("failed to verify role", err))
			return
		}
		if !admin {
			respond.Abort(c, apperr.Forbidden("Forbidden Access", nil))
			return
		}
		c.Next()
	}
}

// Admin is the full guard chain for privileged routes.
func Admin(v Verifier, header string, rc RoleChecker) []gin.HandlerFunc {
	return []gin.HandlerFunc{VerifyToken(v, header), RequireAdmin(rc)}
}

// extractToken reads the raw token; a "Bearer " prefix is tolerated.
func extractToken(c *gin.Context, header string) string {
	raw := strings.TrimSpace(c.GetHeader(header))
	if len(raw) > 7 && strings.EqualFold(raw[:7], "Bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	return raw
}
