// Package respond writes error bodies in the shapes the frontend expects.
package respond

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/liminal-studio/liminal-backend/internal/apperr"
)

const genericMessage = "Internal Server Error"

// Abort maps err to its status and writes {"message": ...}. Internal causes
// are logged and never sent to the client.
func Abort(c *gin.Context, err error) {
	abort(c, err, "message")
}

// AbortError is Abort with the {"error": ...} body used by the upload routes.
func AbortError(c *gin.Context, err error) {
	abort(c, err, "error")
}

func abort(c *gin.Context, err error, field string) {
	kind := apperr.KindOf(err)
	msg := apperr.MessageOf(err, genericMessage)

	logger := zerolog.Ctx(c.Request.Context())
	if kind == apperr.KindInternal {
		logger.Error().Err(err).Str("method", c.Request.Method).Str("route", c.FullPath()).Msg("request failed")
	} else {
		logger.Debug().Err(err).Str("kind", kind.String()).Str("route", c.FullPath()).Msg("request rejected")
	}

	c.AbortWithStatusJSON(kind.HTTPStatus(), gin.H{field: msg})
}
