package mongodb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestParseID(t *testing.T) {
	id := primitive.NewObjectID()

	got, err := ParseID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseID("not-an-id")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = ParseID("")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestFromResults(t *testing.T) {
	id := primitive.NewObjectID()

	ins := FromInsert(&mongo.InsertOneResult{InsertedID: id})
	assert.True(t, ins.Acknowledged)
	assert.Equal(t, id, ins.InsertedID)

	upd := FromUpdate(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1})
	assert.Equal(t, UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, upd)

	del := FromDelete(&mongo.DeleteResult{DeletedCount: 0})
	assert.Equal(t, DeleteResult{Acknowledged: true, DeletedCount: 0}, del)

	assert.Equal(t, DeleteResult{}, FromDelete(nil))
}

func TestInsertResult_JSON(t *testing.T) {
	id := primitive.NewObjectID()
	body, err := json.Marshal(FromInsert(&mongo.InsertOneResult{InsertedID: id}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"acknowledged":true,"insertedId":"`+id.Hex()+`"}`, string(body))

	body, err = json.Marshal(InsertResult{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"acknowledged":false,"insertedId":null}`, string(body))
}
