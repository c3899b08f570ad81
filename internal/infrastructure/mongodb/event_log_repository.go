package mongodb

import (
	"context"
	"time"

	domainRepo "github.com/sangkips/developerstore-sales/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultEventCollection is the collection sale events are appended to
const DefaultEventCollection = "EventLogs"

// EventLogDocument is the stored shape of one audit record
type EventLogDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	EventName string             `bson:"event_name" json:"event_name"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Data      string             `bson:"data" json:"data"`
}

// NewEventLogDocument builds the document stored for an event
func NewEventLogDocument(eventName string, timestamp time.Time, payload []byte) EventLogDocument {
	return EventLogDocument{
		EventName: eventName,
		Timestamp: timestamp.UTC(),
		Data:      string(payload),
	}
}

type eventLogRepository struct {
	collection *mongo.Collection
}

// NewEventLogRepository creates an audit sink writing to the given collection
func NewEventLogRepository(db *mongo.Database, collection string) domainRepo.AuditSink {
	if collection == "" {
		collection = DefaultEventCollection
	}
	return &eventLogRepository{collection: db.Collection(collection)}
}

func (r *eventLogRepository) Log(ctx context.Context, eventName string, timestamp time.Time, payload []byte) error {
	_, err := r.collection.InsertOne(ctx, NewEventLogDocument(eventName, timestamp, payload))
	return err
}
