package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/liminal-studio/liminal-backend/internal/api/http/respond"
	"github.com/liminal-studio/liminal-backend/internal/apperr"
	"github.com/liminal-studio/liminal-backend/internal/projects/domain"
	"github.com/liminal-studio/liminal-backend/internal/storage/mongodb"
)

func (h *Handler) list(c *gin.Context) {
	items, err := h.projects.All(c.Request.Context())
	if err != nil {
		respond.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// details answers null for an unknown id; the frontend renders that as an
// empty page rather than an error.
func (h *Handler) details(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		respond.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) upcoming(c *gin.Context) {
	items, err := h.projects.Upcoming(c.Request.Context())
	if err != nil {
		respond.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) latest(c *gin.Context) {
	items, err := h.projects.Latest(c.Request.Context())
	if err != nil {
		respond.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) create(c *gin.Context) {
	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Abort(c, apperr.BadRequest("invalid body", err))
		return
	}

	res, err := h.projects.Create(c.Request.Context(), req.project())
	if err != nil {
		respond.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var patch domain.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.Abort(c, apperr.BadRequest("invalid body", err))
		return
	}

	res, err := h.projects.Update(c.Request.Context(), id, patch)
	if err != nil {
		respond.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.projects.Delete(c.Request.Context(), id)
	if err != nil {
		respond.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func pathID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := mongodb.ParseID(c.Param("id"))
	if err != nil {
		respond.Abort(c, apperr.BadRequest("invalid id", err))
		return id, false
	}
	return id, true
}
