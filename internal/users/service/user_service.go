package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/liminal-studio/liminal-backend/internal/storage/mongodb"
	"github.com/liminal-studio/liminal-backend/internal/users/domain"
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Insert(ctx context.Context, u *domain.User) (mongodb.InsertResult, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role string) (mongodb.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (mongodb.DeleteResult, error)
}

// RoleCache is an optional email -> role lookaside cache. SetIfVersion must
// refuse the write when Invalidate ran after Version was read.
type RoleCache interface {
	Get(ctx context.Context, email string) (string, bool, error)
	Version(ctx context.Context, email string) (int64, error)
	SetIfVersion(ctx context.Context, email, role string, version int64) (bool, error)
	Invalidate(ctx context.Context, emails ...string) error
}

type UserService struct {
	repo  Repository
	cache RoleCache
}

func NewUserService(repo Repository) *UserService {
	return &UserService{repo: repo}
}

// WithRoleCache enables role caching for IsAdmin.
func (s *UserService) WithRoleCache(c RoleCache) *UserService {
	s.cache = c
	return s
}

// IsAdmin reports whether the stored user for email holds the admin role.
// Unknown emails are not admins.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	cacheable := false
	var version int64
	if s.cache != nil {
		role, ok, err := s.cache.Get(ctx, email)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("role cache read failed")
		} else if ok {
			return role == domain.RoleAdmin, nil
		} else if version, err = s.cache.Version(ctx, email); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("role version read failed")
		} else {
			cacheable = true
		}
	}

	u, err := s.repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		u = &domain.User{Email: email}
	case err != nil:
		return false, err
	}

	if cacheable {
		stored, err := s.cache.SetIfVersion(ctx, email, u.Role, version)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("role cache write failed")
		} else if !stored {
			zerolog.Ctx(ctx).Debug().Str("email", email).Msg("role changed during lookup, not cached")
		}
	}
	return u.IsAdmin(), nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Create registers a user unless one with the same email already exists.
// Any role in the input is dropped; roles are granted through UpdateRole.
func (s *UserService) Create(ctx context.Context, u domain.User) (mongodb.InsertResult, error) {
	u.Email = strings.TrimSpace(u.Email)
	if u.Email == "" {
		return mongodb.InsertResult{}, domain.ErrEmailMissing
	}

	_, err := s.repo.FindByEmail(ctx, u.Email)
	if err == nil {
		return mongodb.InsertResult{}, domain.ErrUserExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return mongodb.InsertResult{}, err
	}

	u.ID = primitive.NilObjectID
	u.Role = ""
	return s.repo.Insert(ctx, &u)
}

func (s *UserService) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) (mongodb.UpdateResult, error) {
	email := s.emailForInvalidation(ctx, id)

	res, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return res, err
	}
	s.invalidate(ctx, email)
	return res, nil
}

func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) (mongodb.DeleteResult, error) {
	email := s.emailForInvalidation(ctx, id)

	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return res, err
	}
	s.invalidate(ctx, email)
	return res, nil
}

func (s *UserService) emailForInvalidation(ctx context.Context, id primitive.ObjectID) string {
	if s.cache == nil {
		return ""
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			zerolog.Ctx(ctx).Warn().Err(err).Str("user_id", id.Hex()).Msg("lookup before cache invalidation failed")
		}
		return ""
	}
	return u.Email
}

func (s *UserService) invalidate(ctx context.Context, email string) {
	if s.cache == nil || email == "" {
		return
	}
	if err := s.cache.Invalidate(ctx, email); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("email", email).Msg("role cache invalidation failed")
	}
}
