package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/liminal-studio/liminal-backend/internal/auth"
)

// TokenIssuer signs an identity payload into an access token.
type TokenIssuer interface {
	Issue(payload map[string]interface{}) (string, error)
}

type RoleChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

type Handler struct {
	issuer TokenIssuer
	roles  RoleChecker
	prover auth.IdentityProver
}

func New(issuer TokenIssuer, roles RoleChecker) *Handler {
	return &Handler{
		issuer: issuer,
		roles:  roles,
	}
}

// WithProver requires a proven identity before a token is issued.
func (h *Handler) WithProver(p auth.IdentityProver) *Handler {
	h.prover = p
	return h
}

// Guards are the middlewares Register attaches to the auth routes.
type Guards struct {
	// Verify authenticates the access token. Required.
	Verify gin.HandlerFunc
	// Limit throttles token issuance. Optional.
	Limit gin.HandlerFunc
}
