package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestNewEventLogDocument(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("EAT", 3*3600))
	doc := NewEventLogDocument("SaleCreated", ts, []byte(`{"sale_id":"abc"}`))

	assert.Equal(t, "SaleCreated", doc.EventName)
	assert.Equal(t, time.UTC, doc.Timestamp.Location())
	assert.True(t, doc.Timestamp.Equal(ts))

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var decoded bson.M
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	assert.Equal(t, "SaleCreated", decoded["event_name"])
	assert.Equal(t, `{"sale_id":"abc"}`, decoded["data"])
	_, hasID := decoded["_id"]
	assert.False(t, hasID)
}

func TestEventLogRepository_Log(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserts into the event collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		sink := NewEventLogRepository(mt.DB, "")
		ts := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

		err := sink.Log(context.Background(), "SaleCancelled", ts, []byte(`{"sale_number":"SALE-1"}`))
		require.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "insert", started.CommandName)
		assert.Equal(mt, DefaultEventCollection, started.Command.Lookup("insert").StringValue())

		docs, err := started.Command.Lookup("documents").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, docs, 1)
		doc := docs[0].Document()
		assert.Equal(mt, "SaleCancelled", doc.Lookup("event_name").StringValue())
		assert.Equal(mt, `{"sale_number":"SALE-1"}`, doc.Lookup("data").StringValue())
		assert.True(mt, ts.Equal(doc.Lookup("timestamp").Time()))
	})

	mt.Run("returns write errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		sink := NewEventLogRepository(mt.DB, "AuditTrail")

		err := sink.Log(context.Background(), "SaleCreated", time.Now(), []byte(`{}`))
		require.Error(mt, err)
		assert.True(mt, mongo.IsDuplicateKeyError(err))
	})
}
