package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/liminal-studio/liminal-backend/internal/projects/domain"
	"github.com/liminal-studio/liminal-backend/internal/storage/mongodb"
)

// FeedSize is the number of entries in the upcoming and latest feeds.
const FeedSize = 5

type Repository interface {
	List(ctx context.Context, filter bson.M) ([]domain.Project, error)
	Recent(ctx context.Context, filter bson.M, limit int64) ([]domain.Project, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Project, error)
	Insert(ctx context.Context, p *domain.Project) (mongodb.InsertResult, error)
	Update(ctx context.Context, id primitive.ObjectID, patch domain.ProjectPatch) (mongodb.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (mongodb.DeleteResult, error)
}

// ProjectService handles project-related business logic
type ProjectService struct {
	repo Repository
}

// NewProjectService creates a new project service
func NewProjectService(repo Repository) *ProjectService {
	return &ProjectService{repo: repo}
}

// All returns every project.
func (s *ProjectService) All(ctx context.Context) ([]domain.Project, error) {
	return s.repo.List(ctx, nil)
}

// Get returns the project with id, or nil when it does not exist.
func (s *ProjectService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

// Upcoming returns the most recently added ongoing projects.
func (s *ProjectService) Upcoming(ctx context.Context) ([]domain.Project, error) {
	return s.repo.Recent(ctx, bson.M{"status": domain.StatusOngoing}, FeedSize)
}

// Latest returns the most recently added projects regardless of status.
func (s *ProjectService) Latest(ctx context.Context) ([]domain.Project, error) {
	return s.repo.Recent(ctx, nil, FeedSize)
}

func (s *ProjectService) Create(ctx context.Context, p domain.Project) (mongodb.InsertResult, error) {
	p.ID = primitive.NilObjectID
	if p.AdditionalImages == nil {
		p.AdditionalImages = []string{}
	}
	return s.repo.Insert(ctx, &p)
}

func (s *ProjectService) Update(ctx context.Context, id primitive.ObjectID, patch domain.ProjectPatch) (mongodb.UpdateResult, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *ProjectService) Delete(ctx context.Context, id primitive.ObjectID) (mongodb.DeleteResult, error) {
	return s.repo.Delete(ctx, id)
}
