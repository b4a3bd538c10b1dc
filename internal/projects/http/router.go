package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group. admin guards
// the management routes.
func (h *Handler) Register(rg *gin.RouterGroup, admin ...gin.HandlerFunc) {
	rg.GET("/projects", h.list)
	rg.GET("/projectDetails/:id", h.details)
	rg.GET("/upcomingProjects", h.upcoming)
	rg.GET("/latestProjects", h.latest)

	guarded := rg.Group("", admin...)
	guarded.GET("/manageProjects", h.list)
	guarded.POST("/addProject", h.create)
	guarded.PATCH("/updateProject/:id", h.update)
	guarded.DELETE("/deleteProject/:id", h.delete)
}
