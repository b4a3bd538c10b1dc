package bootstrap

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GinMode maps APP_ENV onto a gin mode. Unknown environments run in debug.
func GinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func SetGinMode(env string) {
	gin.SetMode(GinMode(env))
}
