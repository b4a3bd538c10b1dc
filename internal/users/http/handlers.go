package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/liminal-studio/liminal-backend/internal/api/http/respond"
	"github.com/liminal-studio/liminal-backend/internal/apperr"
	"github.com/liminal-studio/liminal-backend/internal/storage/mongodb"
	"github.com/liminal-studio/liminal-backend/internal/users/domain"
)

// CreateUser registers the caller after sign-in. An existing email is not an
// error: the frontend calls this on every login.
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Abort(c, apperr.BadRequest("invalid body", err))
		return
	}

	res, err := h.users.Create(c.Request.Context(), domain.User{
		Name:  req.Name,
		Email: req.Email,
		Photo: req.Photo,
		Role:  req.Role,
	})
	switch {
	case errors.Is(err, domain.ErrUserExists):
		c.JSON(http.StatusOK, gin.H{"message": "User Already Exist", "insertedId": nil})
	case errors.Is(err, domain.ErrEmailMissing):
		respond.Abort(c, apperr.BadRequest("email is required", err))
	case err != nil:
		respond.Abort(c, err)
	default:
		c.JSON(http.StatusOK, res)
	}
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respond.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) UpdateUserRole(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Abort(c, apperr.BadRequest("invalid body", err))
		return
	}

	res, err := h.users.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		respond.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.users.Delete(c.Request.Context(), id)
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
