// Package mongodb holds helpers shared by the Mongo-backed repositories.
package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrInvalidID = errors.New("invalid object id")

// InsertResult mirrors the insertOne acknowledgement the frontend reads.
type InsertResult struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   interface{} `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool        `json:"acknowledged"`
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	UpsertedCount int64       `json:"upsertedCount"`
	UpsertedID    interface{} `json:"upsertedId"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

func FromInsert(r *mongo.InsertOneResult) InsertResult {
	if r == nil {
		return InsertResult{}
	}
	return InsertResult{Acknowledged: true, InsertedID: r.InsertedID}
}

func FromUpdate(r *mongo.UpdateResult) UpdateResult {
	if r == nil {
		return UpdateResult{}
	}
	return UpdateResult{
		Acknowledged:  true,
		MatchedCount:  r.MatchedCount,
		ModifiedCount: r.ModifiedCount,
		UpsertedCount: r.UpsertedCount,
		UpsertedID:    r.UpsertedID,
	}
}

func FromDelete(r *mongo.DeleteResult) DeleteResult {
	if r == nil {
		return DeleteResult{}
	}
	return DeleteResult{Acknowledged: true, DeletedCount: r.DeletedCount}
}

// ParseID parses a 24-character hex ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
