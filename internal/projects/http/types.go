package http

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/liminal-studio/liminal-backend/internal/projects/domain"
	"github.com/liminal-studio/liminal-backend/internal/storage/mongodb"
)

type Service interface {
	All(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Project, error)
	Upcoming(ctx context.Context) ([]domain.Project, error)
	Latest(ctx context.Context) ([]domain.Project, error)
	Create(ctx context.Context, p domain.Project) (mongodb.InsertResult, error)
	Update(ctx context.Context, id primitive.ObjectID, patch domain.ProjectPatch) (mongodb.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (mongodb.DeleteResult, error)
}

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	projects Service
}

func New(projects Service) *Handler {
	return &Handler{projects: projects}
}

type createProjectReq struct {
	Title            string   `json:"title"`
	Category         string   `json:"category"`
	Status           string   `json:"status"`
	Description      string   `json:"description"`
	BannerImage      string   `json:"bannerImage"`
	AdditionalImages []string `json:"additionalImages"`
}

func (r createProjectReq) project() domain.Project {
	return domain.Project{
		Title:            r.Title,
		Category:         r.Category,
		Status:           r.Status,
		Description:      r.Description,
		BannerImage:      r.BannerImage,
		AdditionalImages: r.AdditionalImages,
	}
}
