package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/liminal-studio/liminal-backend/internal/projects/domain"
	"github.com/liminal-studio/liminal-backend/internal/storage/mongodb"
)

// memRepo keeps projects in insertion order.
type memRepo struct {
	items   []domain.Project
	lastSet domain.ProjectPatch
}

func (m *memRepo) matches(p domain.Project, filter bson.M) bool {
	if status, ok := filter["status"]; ok && p.Status != status {
		return false
	}
	return true
}

func (m *memRepo) List(_ context.Context, filter bson.M) ([]domain.Project, error) {
	out := []domain.Project{}
	for _, p := range m.items {
		if m.matches(p, filter) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memRepo) Recent(_ context.Context, filter bson.M, limit int64) ([]domain.Project, error) {
	out := []domain.Project{}
	for i := len(m.items) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if m.matches(m.items[i], filter) {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

func (m *memRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Project, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			p := m.items[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (m *memRepo) Insert(_ context.Context, p *domain.Project) (mongodb.InsertResult, error) {
	p.ID = primitive.NewObjectID()
	m.items = append(m.items, *p)
	return mongodb.InsertResult{Acknowledged: true, InsertedID: p.ID}, nil
}

func (m *memRepo) Update(_ context.Context, id primitive.ObjectID, patch domain.ProjectPatch) (mongodb.UpdateResult, error) {
	m.lastSet = patch
	for i := range m.items {
		if m.items[i].ID == id {
			if patch.Status != nil {
				m.items[i].Status = *patch.Status
			}
			return mongodb.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return mongodb.UpdateResult{Acknowledged: true}, nil
}

func (m *memRepo) Delete(_ context.Context, id primitive.ObjectID) (mongodb.DeleteResult, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return mongodb.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return mongodb.DeleteResult{Acknowledged: true}, nil
}

func seed(t *testing.T, svc *ProjectService, statuses ...string) {
	t.Helper()
	for i, st := range statuses {
		_, err := svc.Create(context.Background(), domain.Project{Title: string(rune('A' + i)), Status: st})
		require.NoError(t, err)
	}
}

func titles(ps []domain.Project) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Title)
	}
	return out
}

func TestProjectService_Feeds(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(&memRepo{})
	seed(t, svc,
		domain.StatusOngoing,   // A
		domain.StatusCompleted, // B
		domain.StatusOngoing,   // C
		domain.StatusOngoing,   // D
		domain.StatusCompleted, // E
		domain.StatusOngoing,   // F
		domain.StatusOngoing,   // G
		domain.StatusOngoing,   // H
	)

	t.Run("latest is newest five", func(t *testing.T) {
		got, err := svc.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"H", "G", "F", "E", "D"}, titles(got))
	})

	t.Run("upcoming is newest five ongoing", func(t *testing.T) {
		got, err := svc.Upcoming(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"H", "G", "F", "D", "C"}, titles(got))
	})

	t.Run("all keeps store order", func(t *testing.T) {
		got, err := svc.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G", "H"}, titles(got))
	})
}

func TestProjectService_FeedsShortCollection(t *testing.T) {
	svc := NewProjectService(&memRepo{})
	seed(t, svc, domain.StatusCompleted, domain.StatusCompleted)

	upcoming, err := svc.Upcoming(context.Background())
	require.NoError(t, err)
	assert.Empty(t, upcoming)

	latest, err := svc.Latest(context.Background())
	require.NoError(t, err)
	assert.Len(t, latest, 2)
}

func TestProjectService_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{}
	svc := NewProjectService(repo)

	res, err := svc.Create(ctx, domain.Project{ID: primitive.NewObjectID(), Title: "Courtyard House", Status: domain.StatusOngoing})
	require.NoError(t, err)
	id, ok := res.InsertedID.(primitive.ObjectID)
	require.True(t, ok)
	assert.NotNil(t, repo.items[0].AdditionalImages)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Courtyard House", got.Title)

	status := domain.StatusCompleted
	upd, err := svc.Update(ctx, id, domain.ProjectPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), upd.ModifiedCount)

	got, err = svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.Equal(t, "Courtyard House", got.Title)

	del, err := svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)

	got, err = svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}
