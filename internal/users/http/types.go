package http

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/liminal-studio/liminal-backend/internal/storage/mongodb"
	"github.com/liminal-studio/liminal-backend/internal/users/domain"
)

// Service is the part of the user service the handlers need.
type Service interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, u domain.User) (mongodb.InsertResult, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role string) (mongodb.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (mongodb.DeleteResult, error)
}

type Handler struct {
	users Service
}

func New(users Service) *Handler {
	return &Handler{users: users}
}

type createUserReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
	Role  string `json:"role"`
}

type updateRoleReq struct {
	Role string `json:"role"`
}
