package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/liminal-studio/liminal-backend/internal/auth/token"
)

const CtxIdentity = "identity"

// SetIdentity stores a verified token identity on the Gin context.
func SetIdentity(c *gin.Context, id *token.Identity) {
	c.Set(CtxIdentity, id)
}

// IdentityFrom returns the identity set by the token guard, if any.
func IdentityFrom(c *gin.Context) (*token.Identity, bool) {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return nil, false
	}
	id, ok := v.(*token.Identity)
	return id, ok && id != nil
}

// UserEmail extracts the verified email from the Gin context.
func UserEmail(c *gin.Context) string {
	id, ok := IdentityFrom(c)
	if !ok {
		return ""
	}
	return strings.TrimSpace(id.Email)
}
