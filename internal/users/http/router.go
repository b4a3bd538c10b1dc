package http

import "github.com/gin-gonic/gin"

// Register mounts the user routes. admin is the guard chain applied to the
// management routes.
func (h *Handler) Register(rg *gin.RouterGroup, admin ...gin.HandlerFunc) {
	rg.POST("/users", h.CreateUser)

	guarded := rg.Group("", admin...)
	guarded.GET("/manageUsers", h.ListUsers)
	guarded.PATCH("/updateUserRole/:id", h.UpdateUserRole)
	guarded.DELETE("/deleteUser/:id", h.DeleteUser)
}
