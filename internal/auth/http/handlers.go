package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/liminal-studio/liminal-backend/internal/api/http/respond"
	"github.com/liminal-studio/liminal-backend/internal/apperr"
	"github.com/liminal-studio/liminal-backend/internal/auth"
)

// IssueToken signs the posted identity payload. The payload must be a JSON
// object carrying an email; every other field is signed as is.
func (h *Handler) IssueToken(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil || payload == nil {
		respond.Abort(c, apperr.BadRequest("invalid body", err))
		return
	}

	email, _ := payload["email"].(string)
	email = strings.TrimSpace(email)
	if email == "" {
		respond.Abort(c, apperr.BadRequest("email is required", nil))
		return
	}
	payload["email"] = email

	if h.prover != nil {
		proven, err := h.prover.ProveEmail(c.Request.Context(), c.GetHeader(auth.FirebaseTokenHeader))
		if err != nil {
			respond.Abort(c, apperr.Unauthorized("Unauthorize Access", err))
			return
		}
		if !strings.EqualFold(proven, email) {
			zerolog.Ctx(c.Request.Context()).Warn().Str("email", email).Msg("token requested for another identity")
			respond.Abort(c, apperr.Unauthorized("Unauthorize Access", nil))
			return
		}
	}

	signed, err := h.issuer.Issue(payload)
	if err != nil {
		respond.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed})
}

// UserRole reports whether the caller is an admin. The route guards ensure
// the path email is the caller's own.
func (h *Handler) UserRole(c *gin.Context) {
	admin, err := h.roles.IsAdmin(c.Request.Context(), c.Param("email"))
	if err != nil {
		respond.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": admin})
}
