package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/liminal-studio/liminal-backend/internal/projects/domain"
	"github.com/liminal-studio/liminal-backend/internal/storage/mongodb"
)

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	coll *mongo.Collection
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *mongo.Database, collection string) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(collection)}
}

// List returns the projects matching filter in store order. A nil filter
// matches everything.
func (r *ProjectRepository) List(ctx context.Context, filter bson.M) ([]domain.Project, error) {
	return r.find(ctx, filter, options.Find())
}

// Recent returns up to limit projects matching filter, newest first. Object
// ids embed their creation time, so descending _id is insertion order
// reversed.
func (r *ProjectRepository) Recent(ctx context.Context, filter bson.M, limit int64) ([]domain.Project, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(limit)
	return r.find(ctx, filter, opts)
}

func (r *ProjectRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Project, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Project, 0, 16)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID returns the project with id, or nil when there is none.
func (r *ProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Project, error) {
	var p domain.Project
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Insert(ctx context.Context, p *domain.Project) (mongodb.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return mongodb.InsertResult{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return mongodb.FromInsert(res), nil
}

// Update sets the fields present in patch. An empty patch writes nothing
// and reports whether the project exists.
func (r *ProjectRepository) Update(ctx context.Context, id primitive.ObjectID, patch domain.ProjectPatch) (mongodb.UpdateResult, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
		if err != nil {
			return mongodb.UpdateResult{}, err
		}
		return mongodb.UpdateResult{Acknowledged: true, MatchedCount: n}, nil
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return mongodb.UpdateResult{}, err
	}
	return mongodb.FromUpdate(res), nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) (mongodb.DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mongodb.DeleteResult{}, err
	}
	return mongodb.FromDelete(res), nil
}
