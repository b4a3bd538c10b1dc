package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the listed origins with credentials. The token header is
// custom, so it has to be allowed explicitly.
func CORS(origins []string, tokenHeader string) gin.HandlerFunc {
	headers := []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader}
	if tokenHeader != "" && tokenHeader != "Authorization" {
		headers = append(headers, tokenHeader)
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     headers,
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
