package http

import (
	"github.com/gin-gonic/gin"

	"github.com/liminal-studio/liminal-backend/internal/auth/middleware"
)

func (h *Handler) Register(rg *gin.RouterGroup, g Guards) {
	issue := []gin.HandlerFunc{h.IssueToken}
	if g.Limit != nil {
		issue = append([]gin.HandlerFunc{g.Limit}, issue...)
	}
	rg.POST("/jwt", issue...)

	rg.GET("/userRole/:email", g.Verify, middleware.RequireSelf("email"), h.UserRole)
}
